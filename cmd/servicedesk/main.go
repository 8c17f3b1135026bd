package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/servicedesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/servicedesk/internal/interfaces/cli/seed"
	"github.com/orris-inc/servicedesk/internal/interfaces/cli/server"
	"github.com/orris-inc/servicedesk/internal/shared/version"
)

// @title Servicedesk API
// @version 1.0
// @description Multi-tenant IT service management: tickets, SLAs, assets, knowledge base and notifications.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "servicedesk",
		Short: "Servicedesk - multi-tenant IT service management",
		Long:  `Servicedesk runs the helpdesk API with ticketing, SLA tracking, asset management, a knowledge base and realtime notifications.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
