package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/voucherhub/app/services"
)

var repairStrategy string

// voucherhub users:repair-roles
var usersRepairRolesCmd = &cobra.Command{
	Use:   "users:repair-roles",
	Short: "Assign a valid role to users whose role is missing or unknown",
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, err := services.ParseStrategy(repairStrategy)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		stores, release, err := bootDB(ctx, true)
		if err != nil {
			return err
		}
		defer release()

		fmt.Printf("Repairing user roles (strategy: %s)…\n", strategy)
		report, err := services.NewRoleRepairService(stores.Users).Repair(ctx, strategy)
		for _, c := range report.Changes {
			fmt.Printf("  • %s: %q → %s\n", c.Email, c.From, c.To)
		}
		fmt.Printf("  updated: %d  skipped: %d  errored: %d\n", report.Updated, report.Skipped, report.Errored)
		return err
	},
}

// voucherhub users:bootstrap-admin
var usersBootstrapAdminCmd = &cobra.Command{
	Use:   "users:bootstrap-admin",
	Short: "Create or reset the default admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		stores, release, err := bootDB(ctx, true)
		if err != nil {
			return err
		}
		defer release()

		created, err := services.NewAdminService(stores.Users).Bootstrap(ctx)
		if err != nil {
			return err
		}

		verb := "reset"
		if created {
			verb = "created"
		}
		fmt.Printf("✅ Admin %s: %s / %s\n", verb, services.AdminEmail, services.AdminPassword)
		fmt.Println("⚠  Change this password immediately.")
		return nil
	},
}

func init() {
	usersRepairRolesCmd.Flags().StringVar(&repairStrategy, "strategy", "email", "Repair strategy: email or legacy")
}
