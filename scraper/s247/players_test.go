package s247

import (
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-scraper/models"
)

const committedRow = `
	<div class="rank-column"><div class="primary"> 1 </div><div class="other"> 2 </div></div>
	<div class="recruit">
		<a class="rankings-page__name-link" href="https://247sports.com/Player/Travis-Hunter-46084728/">
			Travis
			Hunter
		</a>
		<span class="meta">Collins Hill (Suwanee, GA)</span>
	</div>
	<div class="position"> CB </div>
	<div class="metrics">6-1 / 165</div>
	<div class="rating"><div class="rank">
		<a class="natrank">1</a><a class="posrank">1</a><a class="sttrank">1</a>
	</div></div>
	<div class="status"><a class="img-link"><img alt="Florida State"></a></div>`

const predictedRow = `
	<div class="rank-column"><div class="primary">14</div><div class="other">N/A</div></div>
	<div class="recruit">
		<a class="rankings-page__name-link" href="/Player/Keon-Keeley-46083733/">Keon Keeley</a>
		<span class="meta">Berkeley Prep (Tampa, FL)</span>
	</div>
	<div class="position">EDGE</div>
	<div class="metrics">6-5 / 242</div>
	<div class="rating"><div class="rank"><a class="natrank">14</a><a class="posrank">2</a><a class="sttrank">3</a></div></div>
	<div class="status"><div class="rankings-page__crystal-ball">
		<div class="cb-block"><img alt="Alabama"><span class="percentage">(72%)</span></div>
		<div class="cb-block cb-block--bottom"><img alt="Notre Dame"><span class="percentage">(28%)</span></div>
	</div></div>`

const undeclaredRow = `
	<div class="rank-column"><div class="primary">30</div></div>
	<div class="recruit">
		<a class="rankings-page__name-link" href="/Player/Some-Recruit-123/">Some Recruit</a>
		<span class="meta">IMG Academy</span>
	</div>
	<div class="position">ATH</div>
	<div class="metrics">6-0 / </div>
	<div class="rating"><div class="rank"><a class="natrank">N/A</a></div></div>
	<div class="status"></div>`

func fragmentForRow(t *testing.T, row string) *goquery.Selection {
	t.Helper()
	doc := mustDoc(t, listingPage(row))
	fragments := RegularPlayerFragments(doc)
	require.Len(t, fragments, 1)
	return fragments[0]
}

func TestExtractPreviewCommitted(t *testing.T) {
	collector, err := NewPlayersCollector(PlayersQuery{Year: 2022, Top: 1}, nil, nil, testLogger())
	require.NoError(t, err)

	player, err := collector.extractPreview(fragmentForRow(t, committedRow))
	require.NoError(t, err)

	assert.Equal(t, "Travis-Hunter-46084728", player.NameID)
	assert.Equal(t, "Travis Hunter", player.RecruitName)
	assert.Equal(t, "CB", player.Position)
	assert.Equal(t, "6-1", player.Height)
	require.NotNil(t, player.Weight)
	assert.Equal(t, 165, *player.Weight)
	assert.Equal(t, "Collins Hill", player.HighSchool)
	assert.Equal(t, "Suwanee", player.City)
	assert.Equal(t, "GA", player.State)
	require.NotNil(t, player.ClassYear)
	assert.Equal(t, 2022, *player.ClassYear)
	require.NotNil(t, player.PrimaryRanking)
	assert.Equal(t, 1, *player.PrimaryRanking)
	require.NotNil(t, player.OtherRanking)
	assert.Equal(t, 2, *player.OtherRanking)
	assert.Equal(t, "Florida State", player.Commitment1)
	assert.Nil(t, player.CommitmentPct1)
	assert.Equal(t, models.StatusCommitted, player.Status)
}

func TestExtractPreviewPredicted(t *testing.T) {
	collector, err := NewPlayersCollector(PlayersQuery{Year: 2023, Top: 1}, nil, nil, testLogger())
	require.NoError(t, err)

	player, err := collector.extractPreview(fragmentForRow(t, predictedRow))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPredicted, player.Status)
	assert.Equal(t, "Alabama", player.Commitment1)
	require.NotNil(t, player.CommitmentPct1)
	assert.InDelta(t, 0.72, *player.CommitmentPct1, 1e-9)
	assert.Equal(t, "Notre Dame", player.Commitment2)
	require.NotNil(t, player.CommitmentPct2)
	assert.InDelta(t, 0.28, *player.CommitmentPct2, 1e-9)

	// "N/A" is absent, never zero
	assert.Nil(t, player.OtherRanking)
}

func TestExtractPreviewUndeclared(t *testing.T) {
	collector, err := NewPlayersCollector(PlayersQuery{Year: 2023, Top: 1}, nil, nil, testLogger())
	require.NoError(t, err)

	player, err := collector.extractPreview(fragmentForRow(t, undeclaredRow))
	require.NoError(t, err)

	assert.Equal(t, models.StatusUndeclared, player.Status)
	assert.Empty(t, player.Commitment1)
	assert.Nil(t, player.CommitmentPct1)

	// Location without the "(City, ST)" suffix keeps only the school
	assert.Equal(t, "IMG Academy", player.HighSchool)
	assert.Empty(t, player.City)
	assert.Empty(t, player.State)

	// Trailing empty weight is absent, not an error
	assert.Nil(t, player.Weight)
	assert.Nil(t, player.NationalRank)
}

func TestExtractMetricsErrors(t *testing.T) {
	fragment := fragmentForRow(t, `<div class="metrics">6-1 and 165</div>`)
	_, _, err := extractMetrics(fragment)
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "div.metrics", extractErr.Selector)

	fragment = fragmentForRow(t, `<div class="metrics">6-1 / heavy</div>`)
	_, _, err = extractMetrics(fragment)
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, extractErr.Detail, "heavy")
}

func TestExtractPreviewMissingRequiredBlock(t *testing.T) {
	collector, err := NewPlayersCollector(PlayersQuery{Year: 2023, Top: 1}, nil, nil, testLogger())
	require.NoError(t, err)

	_, err = collector.extractPreview(fragmentForRow(t, `<div class="recruit"></div>`))
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "div.rank-column", extractErr.Selector)
}

func TestPlayersCollectorInvalidPosition(t *testing.T) {
	_, err := NewPlayersCollector(PlayersQuery{Position: "XYZ"}, nil, nil, testLogger())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPlayersEndToEndWithCache(t *testing.T) {
	query := PlayersQuery{Year: 2022, Institution: "HighSchool", Composite: true, Top: 2}
	base := query.URL()
	fetcher := &stubFetcher{pages: map[string]string{
		base + "&Page=1": listingPage(committedRow, predictedRow),
	}}
	cache := NewCache()

	collector, err := NewPlayersCollector(query, fetcher, cache, testLogger())
	require.NoError(t, err)

	players, err := collector.Players(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Travis Hunter", players[0].RecruitName)
	assert.Equal(t, "Keon Keeley", players[1].RecruitName)
	// A first page already holding the target issues exactly one fetch
	assert.Len(t, fetcher.calls, 1)
	fetches := len(fetcher.calls)

	// Second run with the same cache stays off the network
	players, err = collector.Players(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 2)
	assert.Equal(t, fetches, len(fetcher.calls))
}
