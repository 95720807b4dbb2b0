package models

// Commitment status values produced for a listing row. Exactly one of the
// three applies to any recruit.
const (
	StatusCommitted  = "Committed"
	StatusPredicted  = "Predicted"
	StatusUndeclared = "Undeclared"
)

// AbstractPlayer holds the identity fields shared by every player-shaped
// record. NameID is the last path segment of the profile URL and is unique
// per recruit.
type AbstractPlayer struct {
	NameID      string
	RecruitName string
	URL         string
	Position    string
	Height      string
	Weight      *int
	HighSchool  string
	ClassYear   *int
	City        string
	State       string
}

// PlayerPreview is one row of a rankings listing page
type PlayerPreview struct {
	AbstractPlayer
	PrimaryRanking *int
	OtherRanking   *int
	NationalRank   *int
	PositionRank   *int
	StateRank      *int

	// Commitment1/2 hold the committed team or up to two crystal-ball
	// predicted teams; the percentages are 0-1 fractions and stay nil for
	// an outright commitment.
	Commitment1    string
	CommitmentPct1 *float64
	Commitment2    string
	CommitmentPct2 *float64
	Status         string
}

// CommitmentState reports which of the three commitment states the row is in
func (p *PlayerPreview) CommitmentState() string {
	switch p.Status {
	case StatusCommitted:
		return StatusCommitted
	case StatusPredicted:
		return StatusPredicted
	default:
		return StatusUndeclared
	}
}

// Ratings holds the composite and single-analyst scores and ranks from a
// profile page. Any field may be absent.
type Ratings struct {
	CompositeScore        *float64
	NationalCompositeRank *int
	PositionCompositeRank *int
	StateCompositeRank    *int
	NormalScore           *float64
	NationalNormalRank    *int
	PositionNormalRank    *int
	StateNormalRank       *int
}

// Expert is one analyst prediction on a profile page
type Expert struct {
	Name               string
	Title              string
	Score              *int
	Prediction         string
	PredictionDatetime string
	AccuracyYear       *float64
	AccuracyAllTime    *float64
}

// CoachHistory is one prior posting of a staff member
type CoachHistory struct {
	College  string
	Year     string
	Position string
}

// TopCommit is a recruit a staff member has landed
type TopCommit struct {
	Name           string
	Location       string
	Position       string
	Height         string
	Weight         string
	Stars          int
	Rating         float64
	College        string
	CommitmentDate string
}

// StaffMember is a coach/recruiter scraped from a coach page. The aggregate
// recruiting-class fields are only present when the page carries a rankings
// section.
type StaffMember struct {
	Name         string
	Position     string
	AlmaMater    string
	College      string
	Age          *int
	TopCommits   []TopCommit
	CoachHistory []CoachHistory
	Commits      *int
	AvgRating    *float64
	NationalRank *int
	Star5        *int
	Star4        *int
	Star3        *int
	Conference   string
}

// CollegeInterest is one college actively recruiting a player
type CollegeInterest struct {
	College     string
	Status      string
	StatusDate  string
	Visit       string
	Offered     bool
	RecruitedBy []StaffMember
}

// Evaluator is one scouting evaluation of a recruit
type Evaluator struct {
	ID             *int
	Name           string
	Region         string
	Projection     string
	Comparison     string
	ComparisonTeam string
	EvaluationDate string
	Evaluation     string
}

// Connection is a familial or associative tie to another known athlete
type Connection struct {
	Name      string
	Relation  string
	Accolades string
}

// StatTable is a career-statistics block; its shape varies by sport and
// position so it stays a plain column/row grid
type StatTable struct {
	Columns []string
	Rows    [][]string
}

// PlayerExtended is the full profile of a recruit
type PlayerExtended struct {
	AbstractPlayer
	Ratings         *Ratings
	Experts         []Expert
	CollegeInterest []CollegeInterest
	Accolades       []string
	Evaluators      []Evaluator
	Background      string
	Skills          map[string]int
	Stats           *StatTable
	Connections     []Connection
}

// PlayerCrystalBall is one analyst prediction row from the crystal-ball
// listing
type PlayerCrystalBall struct {
	AbstractPlayer
	Stars                *int
	Rating               *float64
	PredictorID          string
	PredictorName        string
	PredictorLink        string
	PredictorAffiliation string
	PredictorAccuracy    *float64
	PredictionTeam       string
	PredictionDate       string
	ConfidenceScore      int
	ConfidenceText       string
	VIPScoop             bool
}

// TeamPreview is one row of the team rankings listing
type TeamPreview struct {
	TeamID         string
	TeamName       string
	PrimaryRanking *int
	OtherRanking   *int
	TotalCommits   *int
	AverageRating  *float64
	Points         *float64
	FiveStars      *int
	FourStars      *int
	ThreeStars     *int
}

// InsightReport holds computed analytics from a collected player batch
type InsightReport struct {
	TotalPlayers      int
	Committed         int
	Predicted         int
	Undeclared        int
	TopRanked         *PlayerPreview
	PlayersByState    map[string]int
	PlayersByPosition map[string]int
	CommitsByTeam     map[string]int
}
