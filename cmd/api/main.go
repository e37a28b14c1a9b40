package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title EcoDeli Delivery Validation API
// @version 1.0
// @description Delivery validation codes, delivery lifecycle and payment release for the EcoDeli marketplace.
// @contact.name API Support
// @contact.email support@ecodeli.fr
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "ecodeli",
		Short:         "EcoDeli delivery validation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configDir)
		},
	}
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the notification workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configDir)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the Postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), configDir)
		},
	})

	return cmd
}
