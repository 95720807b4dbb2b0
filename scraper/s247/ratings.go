package s247

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recruit-scraper/models"
)

// extractRatings reads the composite and single-analyst rating sections of a
// profile page. A profile with no rankings sections yields nil; sections are
// assigned to the composite or normal slots by their title.
func extractRatings(doc *goquery.Document, position, state string) (*models.Ratings, error) {
	sections := doc.Find("section.rankings-section")
	if sections.Length() == 0 {
		return nil, nil
	}

	ratings := &models.Ratings{}
	var outerErr error
	sections.EachWithBreak(func(_ int, section *goquery.Selection) bool {
		title, err := requireSel(section, "h3.title")
		if err != nil {
			outerErr = err
			return false
		}
		var score *float64
		if block, ok := find(section, "div.ranking div.rank-block"); ok {
			score = parseScore(block.Text())
		}
		national, posRank, stateRank := extractRankList(section, position, state)

		if strings.Contains(strings.ToLower(title.Text()), "composite") {
			ratings.CompositeScore = score
			ratings.NationalCompositeRank = national
			ratings.PositionCompositeRank = posRank
			ratings.StateCompositeRank = stateRank
		} else {
			ratings.NormalScore = score
			ratings.NationalNormalRank = national
			ratings.PositionNormalRank = posRank
			ratings.StateNormalRank = stateRank
		}
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return ratings, nil
}

// extractRankList reads the labelled rank rows of a rating section. Labels
// are matched against the fixed national label and the player's own position
// and state abbreviation.
func extractRankList(section *goquery.Selection, position, state string) (national, posRank, stateRank *int) {
	section.Find("ul.ranks-list li").Each(func(_ int, li *goquery.Selection) {
		label := squash(li.Find("b").First().Text())
		value, ok := find(li, "a strong")
		if !ok {
			return
		}
		rank := parseRank(value.Text())
		if label == "Natl." {
			national = rank
		} else if position != "" && label == position {
			posRank = rank
		} else if state != "" && label == state {
			stateRank = rank
		}
	})
	return national, posRank, stateRank
}
