package main

import (
	"fmt"

	"metadata-backoffice/internal/backoffice/adapter/persistence"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create missing storage documents with their default content",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, container, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		if err := persistence.EnsureDocuments(cmd.Context(), container.Store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Storage documents ready (%s backend)\n", cfg.Storage.Backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
