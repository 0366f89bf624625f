package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"motelhub/internal/database"
	"motelhub/internal/model"
	"motelhub/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the billing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			return database.Migrate(a.db)
		},
	}
}

func generateInvoicesCmd() *cobra.Command {
	var motelID, month, readingsFile string

	cmd := &cobra.Command{
		Use:   "generate-invoices",
		Short: "Bill every active contract of a motel for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(motelID)
			if err != nil {
				return fmt.Errorf("invalid --motel: %w", err)
			}

			var readings []model.MeterReading
			if readingsFile != "" {
				raw, err := os.ReadFile(readingsFile)
				if err != nil {
					return fmt.Errorf("failed to read readings: %w", err)
				}
				if err := json.Unmarshal(raw, &readings); err != nil {
					return fmt.Errorf("failed to decode readings: %w", err)
				}
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			invoices, err := a.invoices.GenerateInvoices(cmd.Context(), service.System, service.GenerateInvoicesRequest{
				MotelID:       id,
				BillingMonth:  month,
				MeterReadings: readings,
			})
			for _, inv := range invoices {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", inv.InvoiceNo, inv.ContractID, inv.TotalAmount.StringFixed(2))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) created\n", len(invoices))
			return err
		},
	}

	cmd.Flags().StringVar(&motelID, "motel", "", "motel ID")
	cmd.Flags().StringVar(&month, "month", time.Now().Format("2006-01"), "billing month (YYYY-MM)")
	cmd.Flags().StringVar(&readingsFile, "readings", "", "JSON file with meter readings")
	_ = cmd.MarkFlagRequired("motel")
	return cmd
}

func markOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Flip overdue invoices and expire stale gateway orders once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			a.sweep(cmd.Context(), time.Now())
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	var req service.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account, e.g. the first admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Username == "" {
				req.Username = req.Email
			}
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.users.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.log.Info("user created", zap.String("id", user.ID.String()), zap.String("role", user.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 6 characters)")
	cmd.Flags().StringVar(&req.Username, "username", "", "username (defaults to the email)")
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.Role, "role", model.RoleAdmin, "admin, landlord, staff or tenant")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
