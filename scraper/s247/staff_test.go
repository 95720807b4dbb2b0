package s247

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRankLabel(t *testing.T) {
	cases := map[string]string{
		"Commits":  "commits",
		"Avg. Rtg": "avg_rtg",
		"Natl. Rk": "natl_rk",
		"5-Star":   "star_5",
		"4-Star":   "star_4",
		"3-Star":   "star_3",
		"SEC":      "sec",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeRankLabel(in), in)
	}
}

const coachPage = `<html><body>
<h1 class="name">Kirby Smart</h1>
<ul class="metrics-list">
	<li><span>Job</span><span>Head Coach</span></li>
</ul>
<ul class="details coach">
	<li class="coach-alma-mater-item"><span>Alma Mater</span><span>Georgia</span></li>
</ul>
<section class="team-block">
	<h2>Georgia Bulldogs</h2>
	<ul class="vitals">
		<li><span>Age</span><span>48</span></li>
	</ul>
</section>
<section class="rankings-section"><ul>
	<li><b>Commits</b><a><strong>26</strong></a></li>
	<li><b>Avg. Rtg</b><a><strong>94.37</strong></a></li>
	<li><b>Natl. Rk</b><a><strong>1</strong></a></li>
	<li><b>5-Star</b><a><strong>5</strong></a></li>
	<li><b>4-Star</b><a><strong>15</strong></a></li>
	<li><b>3-Star</b><a><strong>6</strong></a></li>
	<li><b>SEC</b><a><strong>1</strong></a></li>
</ul></section>
<ul class="commits-details">
	<li class="avatar"></li>
	<li><a class="player">KJ Bolden</a><span>Buford,</span><span>GA</span></li>
	<li><span>S</span></li>
	<li><span>6-1 / 190</span></li>
	<li>
		<span class="icon-starsolid yellow"></span>
		<span class="icon-starsolid yellow"></span>
		<span class="icon-starsolid yellow"></span>
		<span class="icon-starsolid yellow"></span>
		<span class="icon-starsolid yellow"></span>
		<span class="rating">0.9921</span>
	</li>
	<li><a class="player-institution"><img alt="Georgia "></a><span class="commit-date">12/20/23</span></li>
</ul>
<section class="coach-history"><div class="body"><ul>
	<li><img alt="Alabama"><span>2008-2015</span><span>Defensive Coordinator</span></li>
</ul></div></section>
</body></html>`

func TestStaffMember(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		CoachURL("Kirby-Smart-789"): coachPage,
	}}

	member, err := NewStaffScraper(fetcher, testLogger()).Member(context.Background(), "Kirby-Smart-789")
	require.NoError(t, err)

	assert.Equal(t, "Kirby Smart", member.Name)
	assert.Equal(t, "Head Coach", member.Position)
	assert.Equal(t, "Georgia", member.AlmaMater)
	assert.Equal(t, "Georgia Bulldogs", member.College)
	require.NotNil(t, member.Age)
	assert.Equal(t, 48, *member.Age)

	require.NotNil(t, member.Commits)
	assert.Equal(t, 26, *member.Commits)
	require.NotNil(t, member.AvgRating)
	assert.InDelta(t, 94.37, *member.AvgRating, 1e-9)
	require.NotNil(t, member.NationalRank)
	assert.Equal(t, 1, *member.NationalRank)
	require.NotNil(t, member.Star5)
	assert.Equal(t, 5, *member.Star5)
	require.NotNil(t, member.Star4)
	assert.Equal(t, 15, *member.Star4)
	require.NotNil(t, member.Star3)
	assert.Equal(t, 6, *member.Star3)
	assert.Equal(t, "1", member.Conference)

	require.Len(t, member.TopCommits, 1)
	commit := member.TopCommits[0]
	assert.Equal(t, "KJ Bolden", commit.Name)
	assert.Equal(t, "Buford, GA", commit.Location)
	assert.Equal(t, "S", commit.Position)
	assert.Equal(t, "6-1", commit.Height)
	assert.Equal(t, "190", commit.Weight)
	assert.Equal(t, 5, commit.Stars)
	assert.InDelta(t, 0.9921, commit.Rating, 1e-9)
	assert.Equal(t, "Georgia", commit.College)
	assert.Equal(t, "12/20/23", commit.CommitmentDate)

	require.Len(t, member.CoachHistory, 1)
	assert.Equal(t, "Alabama", member.CoachHistory[0].College)
	assert.Equal(t, "2008-2015", member.CoachHistory[0].Year)
	assert.Equal(t, "Defensive Coordinator", member.CoachHistory[0].Position)
}

func TestStaffMemberWithoutRankings(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		CoachURL("Position-Coach-1"): `<html><body>
			<h1 class="name">Some Assistant</h1>
			<ul class="metrics-list"><li><span>Job</span><span>Analyst</span></li></ul>
		</body></html>`,
	}}

	member, err := NewStaffScraper(fetcher, nil).Member(context.Background(), "Position-Coach-1")
	require.NoError(t, err)
	assert.Equal(t, "Some Assistant", member.Name)
	assert.Equal(t, "Analyst", member.Position)
	assert.Nil(t, member.Commits)
	assert.Nil(t, member.Age)
	assert.Empty(t, member.Conference)
	assert.Empty(t, member.TopCommits)
}
