package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate-mocks",
	Short: "Import legacy per-file mocks into the mock document",
	Long: `Reads every *.json file in the legacy mocks directory and adds the ones
not yet present to the mock document. Files are left in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, appLogger, container, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.InitializeBackoffice(); err != nil {
			return err
		}

		imported, err := container.GetBackofficeModule().MockUsecase.MigrateLegacy(cmd.Context())
		if err != nil {
			appLogger.Error("Legacy mock migration failed", "error", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d legacy mock(s)\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
