package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/ranking"
	"github.com/JustinTDCT/CineCurator/internal/search"
	"github.com/JustinTDCT/CineCurator/internal/tagging"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			database, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(ctx); err != nil {
				return err
			}
			logging.Info().Msg("schema applied")
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var (
		page int
		year int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search TMDB and print ranked, franchise-grouped results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc := search.NewService(newProvider(cfg, nil), cfg.Search.MinQueryLength)
			if year > 0 {
				svc.SetClock(func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) })
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.TMDB.Timeout+5*time.Second)
			defer cancel()
			res, err := svc.Search(ctx, strings.Join(args, " "), page)
			if err != nil {
				return err
			}

			fmt.Printf("%q: page %d of %d (%d results)\n", res.Query, res.Page, res.TotalPages, res.TotalResults)
			for _, g := range res.Franchises {
				fmt.Printf("\n%s (%d)\n", g.Name, len(g.Members))
				for _, m := range g.Members {
					printCandidate("  ", m)
				}
			}
			if len(res.Standalone) > 0 {
				fmt.Println()
				for _, m := range res.Standalone {
					printCandidate("", m)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&year, "year", 0, "reference year for recency scoring (default: current year)")
	return cmd
}

func printCandidate(indent string, c ranking.ScoredCandidate) {
	year := "----"
	if y, ok := c.ReleaseYear(); ok {
		year = strconv.Itoa(y)
	}
	fmt.Printf("%s%-8d %s  %s  score=%.3f\n", indent, c.ID, year, c.Title, c.RelevanceScore)
}

func tagsCmd() *cobra.Command {
	var selected []string

	cmd := &cobra.Command{
		Use:   "tags [tmdb-id]",
		Short: "Fetch a movie and print its suggested tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid tmdb id %q", args[0])
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.TMDB.Timeout+5*time.Second)
			defer cancel()
			details, err := newProvider(cfg, nil).MovieDetails(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", details.Title, details.ReleaseDate)
			for _, t := range tagging.Infer(details.Candidate(), selected, time.Now().Year()) {
				mark := " "
				if t.Selected {
					mark = "*"
				}
				fmt.Printf(" %s %-28s %-10s %s\n", mark, t.Label, t.Category, t.Source)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&selected, "select", nil, "labels already selected (repeatable)")
	return cmd
}
