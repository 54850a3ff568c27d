package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodsearch/fuzzyrank/internal/store"
	"github.com/foodsearch/fuzzyrank/internal/store/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		dbPath string
		index  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "populate the demo Badger store with the built-in restaurant corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			restaurants := seed.Demo()
			n := 0
			for _, r := range restaurants {
				if err := s.Put(index, seed.Document(r)); err != nil {
					return fmt.Errorf("seed %s: %w", r.ID, err)
				}
				n++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents into index %q at %s\n", n, index, displayPath(dbPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "./rankctl-data", "path to the Badger data directory")
	cmd.Flags().StringVar(&index, "index", "restaurants", "index name to seed")
	return cmd
}

func displayPath(p string) string {
	if p == "" {
		return "<in-memory>"
	}
	return p
}
