package s247

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// StaffScraper scrapes coach pages into StaffMember records
type StaffScraper struct {
	fetcher Fetcher
	log     *zap.SugaredLogger
}

// NewStaffScraper creates a scraper; a nil logger disables logging
func NewStaffScraper(fetcher Fetcher, log *zap.SugaredLogger) *StaffScraper {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &StaffScraper{fetcher: fetcher, log: log}
}

// Member scrapes the coach page identified by nameID
func (s *StaffScraper) Member(ctx context.Context, nameID string) (*models.StaffMember, error) {
	return s.MemberFromURL(ctx, CoachURL(nameID))
}

// MemberFromURL scrapes a coach page by URL; interest entries on player
// profiles link coaches this way
func (s *StaffScraper) MemberFromURL(ctx context.Context, url string) (*models.StaffMember, error) {
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return extractStaffMember(doc)
}

// extractStaffMember assembles one StaffMember from a coach page. The
// recruiting-class aggregates only exist for coaches with a rankings
// section; everyone still gets the header metadata.
func extractStaffMember(doc *goquery.Document) (*models.StaffMember, error) {
	name, err := requireSel(doc.Selection, "h1.name")
	if err != nil {
		return nil, err
	}
	member := &models.StaffMember{Name: squash(name.Text())}

	doc.Find("ul.metrics-list li").Each(func(_ int, li *goquery.Selection) {
		spans := li.Find("span")
		if spans.Length() < 2 {
			return
		}
		if strings.EqualFold(squash(spans.First().Text()), "job") {
			member.Position = squash(spans.Eq(1).Text())
		}
	})

	doc.Find("ul.details.coach li.coach-alma-mater-item").Each(func(_ int, li *goquery.Selection) {
		member.AlmaMater = squash(li.Find("span").Last().Text())
	})

	if team, ok := find(doc.Selection, "section.team-block"); ok {
		member.College = squash(team.Find("h2").First().Text())
		team.Find("ul.vitals li").Each(func(_ int, li *goquery.Selection) {
			spans := li.Find("span")
			if spans.Length() < 2 {
				return
			}
			if squash(spans.First().Text()) == "Age" {
				if age, err := strconv.Atoi(compact(spans.Eq(1).Text())); err == nil {
					member.Age = &age
				}
			}
		})
	}

	extractStaffRankings(doc, member)
	member.TopCommits = extractTopCommits(doc)
	member.CoachHistory = extractCoachHistory(doc)
	return member, nil
}

// normalizeRankLabel canonicalizes a rankings label: lower-cased, separators
// collapsed to underscores, and digit-led star labels flipped so "5-Star"
// becomes "star_5"
func normalizeRankLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.NewReplacer(".", "", " ", "_", "-", "_").Replace(label)
	if label != "" && label[0] >= '0' && label[0] <= '9' {
		if num, rest, ok := strings.Cut(label, "_"); ok {
			label = rest + "_" + num
		}
	}
	return label
}

// extractStaffRankings reads the labelled recruiting-class aggregates. Any
// label outside the known set is the coach's conference rank.
func extractStaffRankings(doc *goquery.Document, member *models.StaffMember) {
	rankings, ok := find(doc.Selection, "section.rankings-section")
	if !ok {
		return
	}
	rankings.Find("li").Each(func(_ int, li *goquery.Selection) {
		label, ok := find(li, "b")
		if !ok {
			return
		}
		value, ok := find(li, "a strong")
		if !ok {
			return
		}
		text := squash(value.Text())
		switch normalizeRankLabel(label.Text()) {
		case "commits":
			member.Commits = parseRank(text)
		case "avg_rtg":
			member.AvgRating = parseScore(text)
		case "natl_rk":
			member.NationalRank = parseRank(text)
		case "star_5":
			member.Star5 = parseRank(text)
		case "star_4":
			member.Star4 = parseRank(text)
		case "star_3":
			member.Star3 = parseRank(text)
		default:
			member.Conference = text
		}
	})
}

// extractTopCommits reads the recruits a coach has landed; each renders as
// its own commits-details list
func extractTopCommits(doc *goquery.Document) []models.TopCommit {
	var commits []models.TopCommit
	doc.Find("ul.commits-details").Each(func(_ int, ul *goquery.Selection) {
		items := ul.ChildrenFiltered("li")
		if items.Length() < 6 {
			return
		}
		commit := models.TopCommit{}

		name := items.Eq(1)
		commit.Name = squash(name.Find("a.player").First().Text())
		var location []string
		name.Find("span").Each(func(_ int, span *goquery.Selection) {
			location = append(location, squash(span.Text()))
		})
		commit.Location = strings.Join(location, " ")

		commit.Position = squash(items.Eq(2).Find("span").First().Text())

		if height, weight, ok := strings.Cut(squash(items.Eq(3).Find("span").First().Text()), " / "); ok {
			commit.Height = height
			commit.Weight = weight
		}

		rating := items.Eq(4)
		commit.Stars = rating.Find("span.icon-starsolid.yellow").Length()
		if r := parseScore(rating.Find("span.rating").First().Text()); r != nil {
			commit.Rating = *r
		}

		commitment := items.Eq(5)
		if img, ok := find(commitment, "a.player-institution img"); ok {
			alt, _ := img.Attr("alt")
			commit.College = strings.TrimSpace(alt)
		}
		commit.CommitmentDate = squash(commitment.Find("span.commit-date").First().Text())

		commits = append(commits, commit)
	})
	return commits
}

// extractCoachHistory reads the prior postings list of a coach page
func extractCoachHistory(doc *goquery.Document) []models.CoachHistory {
	var history []models.CoachHistory
	doc.Find("section.coach-history div.body li").Each(func(_ int, li *goquery.Selection) {
		entry := models.CoachHistory{}
		if img, ok := find(li, "img"); ok {
			entry.College, _ = img.Attr("alt")
		}
		spans := li.Find("span")
		if spans.Length() >= 2 {
			entry.Year = squash(spans.Eq(0).Text())
			entry.Position = squash(spans.Eq(1).Text())
		}
		history = append(history, entry)
	})
	return history
}
