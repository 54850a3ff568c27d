package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodsearch/fuzzyrank/internal/config"
	"github.com/foodsearch/fuzzyrank/internal/coordinator"
	"github.com/foodsearch/fuzzyrank/internal/distance"
	"github.com/foodsearch/fuzzyrank/internal/evaluator"
	"github.com/foodsearch/fuzzyrank/internal/logging"
	"github.com/foodsearch/fuzzyrank/internal/ranker"
	"github.com/foodsearch/fuzzyrank/internal/scoring"
	"github.com/foodsearch/fuzzyrank/internal/store"
	"github.com/foodsearch/fuzzyrank/internal/synonym"
	"github.com/foodsearch/fuzzyrank/internal/transporthttp"
)

func newServeCmd() *cobra.Command {
	var (
		dbPath     string
		index      string
		addr       string
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve POST /search over HTTP against the demo Badger store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logCfg := logging.DefaultConfig()
			logCfg.Level = logLevel
			log, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			enrichment := store.NewEnrichmentClient(s, index)

			dist := distance.New()
			syn := synonym.NewIndex(cfg.Synonyms)
			ev := evaluator.New(cfg.MaxLevenshteinDistance, syn, dist)
			composer := scoring.NewComposer(cfg, ev)
			phon := scoring.NewPhoneticScorer(dist)
			final := scoring.NewFinalScorer()
			r := ranker.New(cfg, composer, phon, final)
			coord := coordinator.New(s, enrichment, r, cfg, log)

			srv := transporthttp.New(coord, cfg, log)

			fmt.Fprintf(cmd.OutOrStdout(), "rankctl serve: listening on %s (index=%s)\n", addr, index)
			return srv.Serve(addr)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "./rankctl-data", "path to the Badger data directory")
	cmd.Flags().StringVar(&index, "index", "restaurants", "index name to serve")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML scoring configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}
