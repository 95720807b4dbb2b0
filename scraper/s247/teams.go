package s247

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// TeamsCollector scrapes the composite team rankings listing
type TeamsCollector struct {
	year    int
	top     int
	fetcher Fetcher
	cache   *Cache
	log     *zap.SugaredLogger
}

// NewTeamsCollector creates a collector for the given recruiting year
func NewTeamsCollector(year, top int, fetcher Fetcher, cache *Cache, log *zap.SugaredLogger) *TeamsCollector {
	return &TeamsCollector{year: year, top: top, fetcher: fetcher, cache: cache, log: log}
}

// Teams collects the team rows into TeamPreview records
func (c *TeamsCollector) Teams(ctx context.Context) ([]models.TeamPreview, error) {
	baseURL := TeamRankingsURL(c.year)
	fragments, ok := c.cache.Get(baseURL, c.top)
	if !ok {
		var err error
		fragments, err = Collect(ctx, c.fetcher, c.log, baseURL, c.top, PageAmp, TeamFragments)
		if err != nil {
			return nil, err
		}
		c.cache.Put(baseURL, c.top, fragments)
	}

	teams := make([]models.TeamPreview, 0, len(fragments))
	for _, fragment := range fragments {
		team, err := extractTeam(fragment)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	c.log.Infof("collected %d teams", len(teams))
	return teams, nil
}

// extractTeam reads one team rankings row. The team id is the path segment
// after "college/" in the team link.
func extractTeam(fragment *goquery.Selection) (*models.TeamPreview, error) {
	team := &models.TeamPreview{}

	rank, err := requireSel(fragment, "div.rank-column")
	if err != nil {
		return nil, err
	}
	if p, ok := find(rank, "div.primary"); ok {
		team.PrimaryRanking = parseRank(p.Text())
	}
	if o, ok := find(rank, "div.other"); ok {
		team.OtherRanking = parseRank(o.Text())
	}

	block, err := requireSel(fragment, "div.team")
	if err != nil {
		return nil, err
	}
	link, err := requireSel(block, "a.rankings-page__name-list")
	if err != nil {
		return nil, err
	}
	team.TeamName = squash(link.Text())
	href, _ := link.Attr("href")
	if _, rest, ok := strings.Cut(href, "college/"); ok {
		team.TeamID, _, _ = strings.Cut(rest, "/")
	}

	if total, ok := find(fragment, "div.total a"); ok {
		team.TotalCommits = parseRank(total.Text())
	}
	if avg, ok := find(fragment, "div.avg"); ok {
		team.AverageRating = parseScore(avg.Text())
	}
	if points, ok := find(fragment, "div.points"); ok {
		team.Points = parseScore(points.Text())
	}

	fragment.Find("ul.star-commits-list li").Each(func(_ int, li *goquery.Selection) {
		label := compact(li.Find("h2").First().Text())
		count, ok := find(li, "div")
		if !ok {
			return
		}
		n := parseRank(count.Text())
		switch {
		case strings.HasPrefix(label, "5"):
			team.FiveStars = n
		case strings.HasPrefix(label, "4"):
			team.FourStars = n
		case strings.HasPrefix(label, "3"):
			team.ThreeStars = n
		}
	})
	return team, nil
}
