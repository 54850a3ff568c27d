package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/coordinator"
	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/internal/ranker"
	"github.com/foodsearch/fuzzyrank/internal/scoring"
	"github.com/foodsearch/fuzzyrank/internal/store"
	"github.com/foodsearch/fuzzyrank/internal/store/seed"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

func newSearchCmd() *cobra.Command {
	var (
		dbPath     string
		index      string
		jsonOutput bool
		limit      int
		userIDFlag string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "run a query against the demo store and print ranked hits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := config.Default()
			dist := distance.New()
			syn := synonym.NewIndex(cfg.Synonyms)
			ev := evaluator.New(cfg.MaxLevenshteinDistance, syn, dist)
			composer := scoring.NewComposer(cfg, ev)
			phon := scoring.NewPhoneticScorer(dist)
			final := scoring.NewFinalScorer()
			r := ranker.New(cfg, composer, phon, final)
			coord := coordinator.New(s, nil, r, cfg, nil)

			opts := models.DefaultSearchOptions()
			opts.Limit = limit

			var userID *int
			if userIDFlag != "" {
				if n, ok := coordinator.ParseUserID(userIDFlag); ok {
					userID = &n
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring invalid --user-id %q\n", userIDFlag)
				}
			}

			resp, err := coord.Search(context.Background(), index, seed.Query(text), opts, userID)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			printTable(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "./rankctl-data", "path to the Badger data directory")
	cmd.Flags().StringVar(&index, "index", "restaurants", "index name to search")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw JSON response instead of a table")
	cmd.Flags().IntVar(&limit, "limit", 200, "retrieval limit passed to each strategy")
	cmd.Flags().StringVar(&userIDFlag, "user-id", "", "positive user id to run per-user enrichment for")
	return cmd
}

func printTable(cmd *cobra.Command, resp models.SearchResponse) {
	out := cmd.OutOrStdout()
	if len(resp.Hits) == 0 {
		fmt.Fprintln(out, "no hits")
		return
	}

	nameWidth := runewidth.StringWidth("NAME")
	for _, h := range resp.Hits {
		if w := runewidth.StringWidth(h.Document.Name()); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Fprintf(out, "%s  %6s  %-20s  %-16s\n", padTo("NAME", nameWidth), "SCORE", "MATCH_TYPE", "DISCOVERY")
	for _, h := range resp.Hits {
		fmt.Fprintf(out, "%s  %6.2f  %-20s  %-16s\n",
			padTo(h.Document.Name(), nameWidth),
			h.Score,
			h.MatchType,
			h.DiscoveryStrategy,
		)
	}

	fmt.Fprintf(out, "\ntotal=%d has_exact_results=%v exact_count=%d query_time_ms=%.2f\n",
		resp.Total, resp.HasExactResults, resp.ExactCount, resp.QueryTimeMs)
}

// padTo right-pads s with spaces to reach the given display width,
// accounting for wide/accented runes rather than byte length.
func padTo(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
