package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Operator tooling for the marketplace backend",
	Long: `marketctl runs maintenance tasks against the marketplace database:
applying migrations, bootstrapping admin accounts and hashing passwords.
Connection settings come from the same environment as the API server.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd, hashPasswordCmd, createAdminCmd)
}
