package main

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/strrl/filmfind/pkg/catalog"
)

func seedCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo catalog in a DuckDB file",
		Long: "Create the film, category and film_category tables in a DuckDB file and load a small " +
			"demo catalog, so filmfind can run with catalog.driver=duckdb and no MySQL server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.Seed(cmd.Context(), dbPath, catalog.DemoGenres, catalog.DemoFilms); err != nil {
				return errors.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d genres and %d films into %s\n",
				len(catalog.DemoGenres), len(catalog.DemoFilms), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "filmfind.duckdb", "path to DuckDB database")
	return cmd
}
