package s247

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recruit-scraper/models"
)

// extractCollegeInterest reads the colleges actively recruiting a player.
// The profile itself only links to the full list; a profile without the
// view-all link yields nil. Each entry may name the staff members recruiting
// the player, resolved by scraping their coach pages.
func extractCollegeInterest(ctx context.Context, fetcher Fetcher, doc *goquery.Document) ([]models.CollegeInterest, error) {
	link, ok := find(doc.Selection, "a.college-comp__view-all")
	if !ok {
		return nil, nil
	}
	href, _ := link.Attr("href")
	listDoc, err := fetcher.Fetch(ctx, strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	interests, err := requireSel(listDoc.Selection, "ul.recruit-interest-index_lst")
	if err != nil {
		return nil, err
	}

	// Each college renders as a first_blk/secondary_blk pair in document
	// order; the pairs are zipped by index.
	var firsts, seconds []*goquery.Selection
	interests.Find("div.first_blk").Each(func(_ int, s *goquery.Selection) {
		firsts = append(firsts, s)
	})
	interests.Find("div.secondary_blk").Each(func(_ int, s *goquery.Selection) {
		seconds = append(seconds, s)
	})
	n := len(firsts)
	if len(seconds) < n {
		n = len(seconds)
	}

	var schools []models.CollegeInterest
	for i := 0; i < n; i++ {
		entry, err := extractInterestEntry(ctx, fetcher, firsts[i], seconds[i])
		if err != nil {
			return nil, err
		}
		schools = append(schools, *entry)
	}
	return schools, nil
}

// extractInterestEntry reads one college's interest blocks. A greyed status
// span means the player signed; a dash-only visit means none happened.
func extractInterestEntry(ctx context.Context, fetcher Fetcher, first, second *goquery.Selection) (*models.CollegeInterest, error) {
	name, err := requireSel(first, "a")
	if err != nil {
		return nil, err
	}
	entry := &models.CollegeInterest{College: compact(name.Text())}

	status, err := requireSel(first, "span.status")
	if err != nil {
		return nil, err
	}
	if _, signed := find(status, "span.grey"); signed {
		entry.Status = "Signed"
	} else if text, ok := find(status, "span"); ok {
		entry.Status = squash(text.Text())
	}
	if date, ok := find(status, "a"); ok {
		entry.StatusDate = strings.NewReplacer("(", "", ")", "").Replace(squash(date.Text()))
	}

	if visit, ok := find(second, "span.visit"); ok {
		text := squash(visit.Text())
		if !strings.Contains(text, "-") {
			entry.Visit = text
		}
	}
	if offer, ok := find(second, "span.offer"); ok {
		entry.Offered = strings.Contains(strings.ToLower(offer.Text()), "yes")
	}

	if list, ok := find(second, "ul.interest-details_lst"); ok {
		staff := NewStaffScraper(fetcher, nil)
		var outerErr error
		list.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
			if i == 0 {
				return true
			}
			link, ok := find(li, "a")
			if !ok {
				return true
			}
			href, _ := link.Attr("href")
			member, err := staff.MemberFromURL(ctx, strings.TrimSpace(href))
			if err != nil {
				outerErr = err
				return false
			}
			entry.RecruitedBy = append(entry.RecruitedBy, *member)
			return true
		})
		if outerErr != nil {
			return nil, outerErr
		}
	}
	return entry, nil
}

// extractConnections reads the pedigree section naming relatives and other
// associated athletes
func extractConnections(doc *goquery.Document) []models.Connection {
	var connections []models.Connection
	doc.Find("section.pedigree div.body li").Each(func(_ int, li *goquery.Selection) {
		connection := models.Connection{}
		if name, ok := find(li, "a.name"); ok {
			connection.Name = squash(name.Text())
		} else if name, ok := find(li, "b.name"); ok {
			connection.Name = squash(name.Text())
		}
		if connection.Name == "" {
			return
		}
		if relation, ok := find(li, "span.relation"); ok {
			connection.Relation = squash(relation.Text())
		}
		if accolades, ok := find(li, "span.accolades"); ok {
			connection.Accolades = squash(accolades.Text())
		}
		connections = append(connections, connection)
	})
	return connections
}
