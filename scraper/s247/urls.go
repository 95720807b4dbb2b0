package s247

import (
	"fmt"
	"strings"
)

// ValidPositions is the fixed set of football position filters the rankings
// listing accepts
var ValidPositions = []string{
	"QB", "RB", "WR", "TE", "OT", "IOL", "EDGE", "DL", "LB", "CB", "S", "ATH", "K", "P", "LS", "RET",
}

// teamRankingsView is the fixed view-path query the team rankings listing
// requires
const teamRankingsView = `?ViewPath=~%2FViews%2FSkyNet%2FInstitutionRanking%2F_SimpleSetForSeason.ascx`

// CheckPosition validates a position filter against ValidPositions and
// returns it upper-cased
func CheckPosition(pos string) (string, error) {
	pos = strings.ToUpper(pos)
	for _, p := range ValidPositions {
		if p == pos {
			return pos, nil
		}
	}
	return "", &ValidationError{Field: "position", Value: pos, Allowed: ValidPositions}
}

// PlayersQuery holds the parameters of a player rankings listing
type PlayersQuery struct {
	Year        int
	Institution string // "HighSchool" or "JuniorCollege"
	Position    string
	State       string
	Composite   bool
	Top         int // item count, or TopAll
}

// URL builds the listing URL for the query
func (q PlayersQuery) URL() string {
	rankings := "RecruitRankings"
	if q.Composite {
		rankings = "CompositeRecruitRankings"
	}
	url := fmt.Sprintf("https://247sports.com/Season/%d-Football/%s/?InstitutionGroup=%s",
		q.Year, rankings, q.Institution)
	if q.Position != "" {
		url += "&PositionGroup=" + q.Position
	}
	if q.State != "" {
		url += "&State=" + q.State
	}
	return url
}

// CrystalBallURL builds the current-target-predictions listing URL for a
// recruiting class year
func CrystalBallURL(year int) string {
	return fmt.Sprintf("https://247sports.com/Season/%d-Football/CurrentTargetPredictions/", year)
}

// TeamRankingsURL builds the composite team rankings listing URL
func TeamRankingsURL(year int) string {
	return fmt.Sprintf("https://247sports.com/Season/%d-Football/CompositeTeamRankings/%s", year, teamRankingsView)
}

// ProfileURL builds a recruit profile URL from a name id like
// "Travis-Hunter-46084728"
func ProfileURL(nameID string) string {
	return fmt.Sprintf("https://247sports.com/Player/%s/", nameID)
}

// CoachURL builds a coach page URL from a name id
func CoachURL(nameID string) string {
	return fmt.Sprintf("https://247sports.com/Coach/%s/", nameID)
}
