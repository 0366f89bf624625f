package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Motel Billing API
// @version         1.0
// @description     Monthly invoicing, payment ledger and MoMo, VNPay and ZaloPay reconciliation for motel operators.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Motel billing core",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		generateInvoicesCmd(),
		markOverdueCmd(),
		createUserCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
