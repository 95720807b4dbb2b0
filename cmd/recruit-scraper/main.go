package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recruit-scraper/config"
	"recruit-scraper/export"
	"recruit-scraper/models"
	"recruit-scraper/scraper/s247"
	"recruit-scraper/services"
	"recruit-scraper/storage"
)

var (
	flagYear  int
	flagTop   int
	flagAll   bool
	flagStore bool
	flagShow  int
)

func main() {
	root := &cobra.Command{
		Use:           "recruit-scraper",
		Short:         "Scrape college football recruiting data from 247Sports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&flagYear, "year", 0, "recruiting class year (default: current year)")
	root.PersistentFlags().IntVar(&flagTop, "top", 100, "number of rows to collect")
	root.PersistentFlags().BoolVar(&flagAll, "all", false, "collect every row, overriding --top")
	root.PersistentFlags().BoolVar(&flagStore, "store", false, "also store results in PostgreSQL")
	root.PersistentFlags().IntVar(&flagShow, "show", 10, "rows to print to the terminal, 0 for all")

	root.AddCommand(playersCmd(), playerCmd(), crystalballCmd(), teamsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to create logger:", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

// top resolves the --top/--all pair into a target count
func top() int {
	if flagAll {
		return s247.TopAll
	}
	return flagTop
}

// year resolves --year, offset years ahead of the current one by default
func year(offset int) int {
	if flagYear != 0 {
		return flagYear
	}
	return time.Now().Year() + offset
}

func playersCmd() *cobra.Command {
	var (
		position    string
		state       string
		institution string
		normal      bool
	)
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Collect the player rankings listing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := newLogger()
			defer log.Sync()

			query := s247.PlayersQuery{
				Year:        year(0),
				Institution: institution,
				Position:    position,
				State:       state,
				Composite:   !normal,
				Top:         top(),
			}
			collector, err := s247.NewPlayersCollector(query, s247.NewHTTPFetcher(cfg), s247.NewCache(), log)
			if err != nil {
				return err
			}
			players, err := collector.Players(cmd.Context())
			if err != nil {
				return err
			}

			report := services.NewInsightService(log).Generate(players)
			services.PrintInsightReport(report)
			return persist(cfg, log, "players", export.Flatten(players))
		},
	}
	cmd.Flags().StringVar(&position, "position", "", "position filter, e.g. QB")
	cmd.Flags().StringVar(&state, "state", "", "state filter, e.g. TX")
	cmd.Flags().StringVar(&institution, "institution", "HighSchool", "institution group: HighSchool or JuniorCollege")
	cmd.Flags().BoolVar(&normal, "normal", false, "use the site's own rankings instead of the composite")
	return cmd
}

func playerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <name-id>",
		Short: "Scrape one recruit's full profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger()
			defer log.Sync()

			scraper := s247.NewPlayerScraper(args[0], s247.NewHTTPFetcher(cfg), log)
			player, err := scraper.Player(cmd.Context())
			if err != nil {
				return err
			}
			return persist(cfg, log, "player", export.Flatten([]models.PlayerExtended{*player}))
		},
	}
}

func crystalballCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crystalball",
		Short: "Collect analyst commitment predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := newLogger()
			defer log.Sync()

			// Predictions target the class signing next year
			collector := s247.NewCrystalBallCollector(year(1), top(), s247.NewHTTPFetcher(cfg), s247.NewCache(), log)
			players, err := collector.Players(cmd.Context())
			if err != nil {
				return err
			}
			return persist(cfg, log, "crystalball", export.Flatten(players))
		},
	}
}

func teamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Collect the composite team rankings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := newLogger()
			defer log.Sync()

			collector := s247.NewTeamsCollector(year(0), top(), s247.NewHTTPFetcher(cfg), s247.NewCache(), log)
			teams, err := collector.Teams(cmd.Context())
			if err != nil {
				return err
			}
			return persist(cfg, log, "teams", export.Flatten(teams))
		},
	}
}

// persist renders the batch to the terminal, writes it to CSV, and
// optionally stores it in PostgreSQL
func persist(cfg *config.Config, log *zap.SugaredLogger, name string, flat *export.Table) error {
	services.RenderTable(flat, flagShow)

	csv := storage.NewCSVWriter(cfg.CSVFilePath, log)
	if err := csv.SaveTable(name, flat); err != nil {
		return err
	}

	if flagStore {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--store requires DATABASE_URL to be set")
		}
		pg, err := storage.NewPostgresWriter(cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.SaveTable(name, flat); err != nil {
			return err
		}
	}
	return nil
}
