package services

import (
	"go.uber.org/zap"

	"recruit-scraper/models"
)

// InsightService computes analytics from a collected player batch
type InsightService struct {
	log *zap.SugaredLogger
}

// NewInsightService creates a new InsightService
func NewInsightService(log *zap.SugaredLogger) *InsightService {
	return &InsightService{log: log}
}

// Generate computes all required insights from a slice of player previews
func (s *InsightService) Generate(players []models.PlayerPreview) *models.InsightReport {
	report := &models.InsightReport{
		PlayersByState:    make(map[string]int),
		PlayersByPosition: make(map[string]int),
		CommitsByTeam:     make(map[string]int),
	}
	if len(players) == 0 {
		s.log.Warn("no players to generate insights from")
		return report
	}

	for i := range players {
		p := &players[i]
		report.TotalPlayers++

		switch p.CommitmentState() {
		case models.StatusCommitted:
			report.Committed++
			if p.Commitment1 != "" {
				report.CommitsByTeam[p.Commitment1]++
			}
		case models.StatusPredicted:
			report.Predicted++
		default:
			report.Undeclared++
		}

		if p.State != "" {
			report.PlayersByState[p.State]++
		}
		if p.Position != "" {
			report.PlayersByPosition[p.Position]++
		}

		if p.PrimaryRanking != nil {
			if report.TopRanked == nil || report.TopRanked.PrimaryRanking == nil ||
				*p.PrimaryRanking < *report.TopRanked.PrimaryRanking {
				report.TopRanked = p
			}
		}
	}

	// All rows unranked: fall back to listing order
	if report.TopRanked == nil {
		report.TopRanked = &players[0]
	}
	return report
}
