package s247

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// PlayerScraper scrapes the full profile of one recruit
type PlayerScraper struct {
	nameID  string
	fetcher Fetcher
	log     *zap.SugaredLogger
}

// NewPlayerScraper creates a scraper for the recruit identified by nameID,
// the last path segment of a profile URL
func NewPlayerScraper(nameID string, fetcher Fetcher, log *zap.SugaredLogger) *PlayerScraper {
	return &PlayerScraper{nameID: nameID, fetcher: fetcher, log: log}
}

// Player fetches and assembles the extended profile. Older recruits resolve
// to an "as a prospect" landing page first; the scraper follows the link to
// the recruiting-era profile before extracting.
func (s *PlayerScraper) Player(ctx context.Context) (*models.PlayerExtended, error) {
	url := ProfileURL(s.nameID)
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if prospect, ok := find(doc.Selection, "section.as-a-prospect"); ok {
		link, err := requireSel(prospect, "a.view-profile-link")
		if err != nil {
			return nil, err
		}
		href, _ := link.Attr("href")
		s.log.Debugf("following prospect redirect for %s", s.nameID)
		url = strings.TrimSpace(href)
		doc, err = s.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
	}

	name, err := requireSel(doc.Selection, "h1.name")
	if err != nil {
		return nil, err
	}
	player := &models.PlayerExtended{
		AbstractPlayer: models.AbstractPlayer{
			NameID:      s.nameID,
			RecruitName: squash(name.Text()),
			URL:         url,
		},
	}
	if err := extractProfileMetrics(doc, player); err != nil {
		return nil, err
	}
	if err := extractProfileDetails(doc, player); err != nil {
		return nil, err
	}

	if player.Ratings, err = extractRatings(doc, player.Position, player.State); err != nil {
		return nil, err
	}
	if player.Experts, err = s.extractExperts(ctx, doc); err != nil {
		return nil, err
	}
	if player.CollegeInterest, err = extractCollegeInterest(ctx, s.fetcher, doc); err != nil {
		return nil, err
	}
	player.Accolades = extractAccolades(doc)
	if player.Evaluators, player.Background, player.Skills, err = extractScoutingReport(ctx, s.fetcher, doc); err != nil {
		return nil, err
	}
	if player.Stats, err = extractStats(doc); err != nil {
		return nil, err
	}
	player.Connections = extractConnections(doc)
	return player, nil
}

// extractProfileMetrics reads the labelled position/height/weight list of a
// profile header
func extractProfileMetrics(doc *goquery.Document, player *models.PlayerExtended) error {
	list, err := requireSel(doc.Selection, "ul.metrics-list")
	if err != nil {
		return err
	}
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		spans := li.Find("span")
		if spans.Length() < 2 {
			return
		}
		label := squash(spans.First().Text())
		value := squash(spans.Last().Text())
		switch label {
		case "Pos":
			player.Position = value
		case "Height":
			player.Height = value
		case "Weight":
			if w, err := strconv.Atoi(compact(value)); err == nil {
				player.Weight = &w
			}
		}
	})
	return nil
}

// extractProfileDetails reads the labelled school/location/class list of a
// profile header
func extractProfileDetails(doc *goquery.Document, player *models.PlayerExtended) error {
	list, err := requireSel(doc.Selection, "ul.details")
	if err != nil {
		return err
	}
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		spans := li.Find("span")
		if spans.Length() == 0 {
			return
		}
		label := strings.ToLower(squash(spans.First().Text()))
		switch {
		case strings.Contains(label, "high school"):
			player.HighSchool = squash(li.Find("a").First().Text())
		case strings.Contains(label, "city"):
			value := squash(spans.Last().Text())
			if city, state, ok := strings.Cut(value, ", "); ok {
				player.City = city
				player.State = state
			} else {
				player.City = value
			}
		case strings.Contains(label, "class"):
			if year, err := strconv.Atoi(compact(spans.Last().Text())); err == nil {
				player.ClassYear = &year
			}
		}
	})
	return nil
}

// extractExperts reads the analyst predictions of a profile. A profile with
// many predictions links out to a dedicated page carrying accuracy and
// confidence details; a profile with few renders a short inline list.
func (s *PlayerScraper) extractExperts(ctx context.Context, doc *goquery.Document) ([]models.Expert, error) {
	if _, ok := find(doc.Selection, "ul.prediction-list.long.expert"); !ok {
		return nil, nil
	}
	if link, ok := find(doc.Selection, "ul.link-block a"); ok {
		href, _ := link.Attr("href")
		return s.extractExtendedExperts(ctx, strings.TrimSpace(href))
	}
	return extractShortExperts(doc)
}

// extractExtendedExperts follows the view-all link to the dedicated
// predictions page and reads its lead and remaining expert lists
func (s *PlayerScraper) extractExtendedExperts(ctx context.Context, url string) ([]models.Expert, error) {
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var experts []models.Expert
	var outerErr error
	row := func(_ int, li *goquery.Selection) bool {
		expert, err := extractExpertRow(li)
		if err != nil {
			outerErr = err
			return false
		}
		experts = append(experts, *expert)
		return true
	}
	doc.Find("ul.cb-list.no-border li").EachWithBreak(row)
	if outerErr != nil {
		return nil, outerErr
	}
	doc.Find("ul.cb-list.no-margin li").EachWithBreak(row)
	if outerErr != nil {
		return nil, outerErr
	}
	return experts, nil
}

// extractExpertRow reads one prediction entry of the dedicated page
func extractExpertRow(li *goquery.Selection) (*models.Expert, error) {
	nameBlock, err := requireSel(li, "div.name")
	if err != nil {
		return nil, err
	}
	expert := &models.Expert{
		Name:  squash(nameBlock.Find("a").First().Text()),
		Title: squash(nameBlock.Find("span").Last().Text()),
	}
	if year, ok := find(li, "div.accuracy.year"); ok {
		expert.AccuracyYear = parsePercent(year.Find("span").Last().Text())
	}
	if allTime, ok := find(li, "div.accuracy.all-time"); ok {
		expert.AccuracyAllTime = parsePercent(allTime.Find("span").Last().Text())
	}
	if prediction, ok := find(li, "div.prediction img"); ok {
		expert.Prediction, _ = prediction.Attr("alt")
	}
	if datetime, ok := find(li, "div.date-time"); ok {
		var parts []string
		datetime.Find("span").Each(func(_ int, span *goquery.Selection) {
			parts = append(parts, squash(span.Text()))
		})
		expert.PredictionDatetime = strings.Join(parts, " ")
	}
	if confidence, ok := find(li, "div.confidence div.confidence-wrap b"); ok {
		if score, err := strconv.Atoi(compact(confidence.Text())); err == nil {
			expert.Score = &score
		}
	}
	return expert, nil
}

// extractShortExperts reads the inline prediction list of a profile. The
// predicted team is not named on the expert row itself; it is resolved by
// matching the row's team logo against the page's averages list. A profile
// without an averages list yields no experts.
func extractShortExperts(doc *goquery.Document) ([]models.Expert, error) {
	averages, ok := find(doc.Selection, "ul.prediction-list.long:not(.expert)")
	if !ok {
		return nil, nil
	}
	schools := make(map[string]string)
	averages.Find("li").Each(func(i int, li *goquery.Selection) {
		if i == 0 {
			return
		}
		if img, ok := find(li, "img"); ok {
			src, _ := img.Attr("src")
			alt, _ := img.Attr("alt")
			schools[src] = alt
		}
	})

	list, err := requireSel(doc.Selection, "ul.prediction-list.long.expert")
	if err != nil {
		return nil, err
	}
	var experts []models.Expert
	list.Find("li").Each(func(i int, li *goquery.Selection) {
		if i == 0 {
			return
		}
		link, ok := find(li, "a.expert-link")
		if !ok {
			return
		}
		expert := models.Expert{Name: squash(link.Text())}
		if lock, ok := find(li, "b.confidence-score.lock"); ok {
			if score, err := strconv.Atoi(compact(lock.Text())); err == nil {
				expert.Score = &score
			}
		}
		if img, ok := find(li, "img"); ok {
			src, _ := img.Attr("src")
			expert.Prediction = schools[src]
		}
		experts = append(experts, expert)
	})
	return experts, nil
}

// extractAccolades reads the honors list of a profile
func extractAccolades(doc *goquery.Document) []string {
	var accolades []string
	doc.Find("section.accolades ul li").Each(func(_ int, li *goquery.Selection) {
		if link, ok := find(li, "a.event-link"); ok {
			accolades = append(accolades, squash(link.Text()))
		}
	})
	return accolades
}

// extractStats reads the career statistics block of a profile. The block
// renders as two side-by-side tables sharing row order; they are merged
// column-wise, padding the narrower table with blanks.
func extractStats(doc *goquery.Document) (*models.StatTable, error) {
	section, ok := find(doc.Selection, "section.profile-stats")
	if !ok {
		return nil, nil
	}
	left, err := parseHTMLTable(section, "table.left-table")
	if err != nil {
		return nil, err
	}
	right, err := parseHTMLTable(section, "table.right-table")
	if err != nil {
		return nil, err
	}

	stats := &models.StatTable{Columns: append(append([]string{}, left.Columns...), right.Columns...)}
	rows := len(left.Rows)
	if len(right.Rows) > rows {
		rows = len(right.Rows)
	}
	for i := 0; i < rows; i++ {
		row := append(cellsOrBlank(left, i), cellsOrBlank(right, i)...)
		stats.Rows = append(stats.Rows, row)
	}
	return stats, nil
}

// parseHTMLTable reads a header row and body cells into a StatTable
func parseHTMLTable(s *goquery.Selection, selector string) (*models.StatTable, error) {
	table, err := requireSel(s, selector)
	if err != nil {
		return nil, err
	}
	stats := &models.StatTable{}
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		stats.Columns = append(stats.Columns, squash(th.Text()))
	})
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, squash(td.Text()))
		})
		stats.Rows = append(stats.Rows, row)
	})
	return stats, nil
}

// cellsOrBlank returns row i of the table, or a blank row of matching width
// when the table is shorter
func cellsOrBlank(table *models.StatTable, i int) []string {
	if i < len(table.Rows) {
		return append([]string{}, table.Rows[i]...)
	}
	return make([]string, len(table.Columns))
}
