package s247

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// PlayersCollector scrapes the player rankings listing into PlayerPreview
// records
type PlayersCollector struct {
	query   PlayersQuery
	fetcher Fetcher
	cache   *Cache
	log     *zap.SugaredLogger
}

// NewPlayersCollector validates the query and creates a collector. An
// invalid position filter fails here, before any network activity.
func NewPlayersCollector(query PlayersQuery, fetcher Fetcher, cache *Cache, log *zap.SugaredLogger) (*PlayersCollector, error) {
	if query.Position != "" {
		pos, err := CheckPosition(query.Position)
		if err != nil {
			return nil, err
		}
		query.Position = pos
	}
	return &PlayersCollector{query: query, fetcher: fetcher, cache: cache, log: log}, nil
}

// Players collects the listing pages and assembles one PlayerPreview per
// row. A row missing a structurally required block aborts the whole batch;
// callers needing per-item resilience must wrap per item.
func (c *PlayersCollector) Players(ctx context.Context) ([]models.PlayerPreview, error) {
	baseURL := c.query.URL()
	fragments, ok := c.cache.Get(baseURL, c.query.Top)
	if !ok {
		var err error
		fragments, err = Collect(ctx, c.fetcher, c.log, baseURL, c.query.Top, PageAmp, RegularPlayerFragments)
		if err != nil {
			return nil, err
		}
		c.cache.Put(baseURL, c.query.Top, fragments)
	}

	players := make([]models.PlayerPreview, 0, len(fragments))
	for _, fragment := range fragments {
		player, err := c.extractPreview(fragment)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	c.log.Infof("collected %d players", len(players))
	return players, nil
}

// extractPreview assembles one PlayerPreview from a listing row. Each
// extractor owns disjoint fields; missing optional markup leaves the
// corresponding fields absent.
func (c *PlayersCollector) extractPreview(fragment *goquery.Selection) (*models.PlayerPreview, error) {
	primary, other, err := extractRanking(fragment)
	if err != nil {
		return nil, err
	}
	identity, err := extractRecruit(fragment)
	if err != nil {
		return nil, err
	}
	position, err := extractPosition(fragment)
	if err != nil {
		return nil, err
	}
	height, weight, err := extractMetrics(fragment)
	if err != nil {
		return nil, err
	}
	national, posRank, stateRank, err := extractRanks(fragment)
	if err != nil {
		return nil, err
	}
	status, err := extractStatus(fragment)
	if err != nil {
		return nil, err
	}

	player := &models.PlayerPreview{
		AbstractPlayer: models.AbstractPlayer{
			NameID:      identity.nameID,
			RecruitName: identity.name,
			URL:         identity.url,
			Position:    position,
			Height:      height,
			Weight:      weight,
			HighSchool:  identity.highSchool,
			City:        identity.city,
			State:       identity.state,
		},
		PrimaryRanking: primary,
		OtherRanking:   other,
		NationalRank:   national,
		PositionRank:   posRank,
		StateRank:      stateRank,
		Commitment1:    status.team1,
		CommitmentPct1: status.pct1,
		Commitment2:    status.team2,
		CommitmentPct2: status.pct2,
		Status:         status.state,
	}
	if c.query.Year != 0 {
		year := c.query.Year
		player.ClassYear = &year
	}
	return player, nil
}

// extractRanking reads the rank column of a listing row. The column itself
// is structurally required; either rank inside it may be absent.
func extractRanking(fragment *goquery.Selection) (primary, other *int, err error) {
	rank, err := requireSel(fragment, "div.rank-column")
	if err != nil {
		return nil, nil, err
	}
	if p, ok := find(rank, "div.primary"); ok {
		primary = parseRank(p.Text())
	}
	if o, ok := find(rank, "div.other"); ok {
		other = parseRank(o.Text())
	}
	return primary, other, nil
}

type recruitIdentity struct {
	nameID     string
	url        string
	name       string
	highSchool string
	city       string
	state      string
}

// extractRecruit reads the identity block of a listing row. The name id is
// the last path segment of the profile link. High school, city and state
// come from one free-text field of the form "<school> (<city>, <state>)".
func extractRecruit(fragment *goquery.Selection) (*recruitIdentity, error) {
	recruit, err := requireSel(fragment, "div.recruit")
	if err != nil {
		return nil, err
	}
	meta, err := requireSel(recruit, "a.rankings-page__name-link")
	if err != nil {
		return nil, err
	}
	href, _ := meta.Attr("href")
	identity := &recruitIdentity{
		url:    strings.TrimSpace(href),
		name:   squash(meta.Text()),
		nameID: lastPathSegment(href),
	}

	location, err := requireSel(recruit, "span.meta")
	if err != nil {
		return nil, err
	}
	text := squash(location.Text())
	if school, rest, ok := strings.Cut(text, "("); ok {
		identity.highSchool = strings.TrimSpace(school)
		rest = strings.TrimSuffix(strings.TrimSpace(rest), ")")
		if city, state, ok := strings.Cut(rest, ", "); ok {
			identity.city = city
			identity.state = state
		}
	} else {
		identity.highSchool = text
	}
	return identity, nil
}

// extractPosition reads the position cell of a listing row
func extractPosition(fragment *goquery.Selection) (string, error) {
	position, err := requireSel(fragment, "div.position")
	if err != nil {
		return "", err
	}
	return compact(position.Text()), nil
}

// extractMetrics splits the metrics text on its slash separator into height
// and an integer weight. A non-numeric weight is an extraction failure,
// never a silent zero; a missing weight is simply absent.
func extractMetrics(fragment *goquery.Selection) (string, *int, error) {
	metrics, err := requireSel(fragment, "div.metrics")
	if err != nil {
		return "", nil, err
	}
	text := squash(metrics.Text())
	heightText, weightText, found := strings.Cut(text, "/")
	if !found {
		return "", nil, &ExtractionError{Selector: "div.metrics", Detail: fmt.Sprintf("malformed metrics %q", text)}
	}
	height := strings.TrimSpace(heightText)
	weightText = strings.TrimSpace(weightText)
	if weightText == "" {
		return height, nil, nil
	}
	weight, convErr := strconv.Atoi(weightText)
	if convErr != nil {
		return "", nil, &ExtractionError{Selector: "div.metrics", Detail: fmt.Sprintf("non-numeric weight %q", weightText)}
	}
	return height, &weight, nil
}

// extractRanks reads the national/position/state ranks of the rating block
func extractRanks(fragment *goquery.Selection) (national, position, state *int, err error) {
	rating, err := requireSel(fragment, "div.rating")
	if err != nil {
		return nil, nil, nil, err
	}
	rank, err := requireSel(rating, "div.rank")
	if err != nil {
		return nil, nil, nil, err
	}
	if a, ok := find(rank, "a.natrank"); ok {
		national = parseRank(a.Text())
	}
	if a, ok := find(rank, "a.posrank"); ok {
		position = parseRank(a.Text())
	}
	if a, ok := find(rank, "a.sttrank"); ok {
		state = parseRank(a.Text())
	}
	return national, position, state, nil
}

type commitmentStatus struct {
	team1 string
	pct1  *float64
	team2 string
	pct2  *float64
	state string
}

// extractStatus reads the commitment block of a listing row. Exactly one of
// three states results: Committed (team logo link present), Predicted
// (crystal-ball block with one or two team/percentage pairs), or
// Undeclared. The second prediction is only read when its block element is
// structurally present.
func extractStatus(fragment *goquery.Selection) (*commitmentStatus, error) {
	status, err := requireSel(fragment, "div.status")
	if err != nil {
		return nil, err
	}

	if link, ok := find(status, "a.img-link"); ok {
		img, err := requireSel(link, "img")
		if err != nil {
			return nil, err
		}
		team, _ := img.Attr("alt")
		return &commitmentStatus{team1: team, state: models.StatusCommitted}, nil
	}

	ball, ok := find(status, "div.rankings-page__crystal-ball")
	if !ok {
		return &commitmentStatus{state: models.StatusUndeclared}, nil
	}
	block, ok := find(ball, "div.cb-block")
	if !ok {
		return &commitmentStatus{state: models.StatusUndeclared}, nil
	}
	img, ok := find(block, "img")
	if !ok {
		return &commitmentStatus{state: models.StatusUndeclared}, nil
	}
	team, _ := img.Attr("alt")
	st := &commitmentStatus{team1: team, state: models.StatusPredicted}
	if pct, ok := find(block, "span.percentage"); ok {
		st.pct1 = parsePercent(pct.Text())
	}

	if block2, ok := find(ball, "div.cb-block.cb-block--bottom"); ok {
		if img2, ok := find(block2, "img"); ok {
			st.team2, _ = img2.Attr("alt")
			if pct, ok := find(block2, "span.percentage"); ok {
				st.pct2 = parsePercent(pct.Text())
			}
		}
	}
	return st, nil
}
