package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Seeders register themselves from init().
	_ "github.com/shashiranjanraj/voucherhub/database/seeders"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "voucherhub",
	Short:         "VoucherHub API server and maintenance passes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(seedCmd)

	// Vouchers
	rootCmd.AddCommand(voucherGenerateCmd)
	rootCmd.AddCommand(voucherBackfillCmd)
	rootCmd.AddCommand(voucherVerifyCmd)

	// Users
	rootCmd.AddCommand(usersRepairRolesCmd)
	rootCmd.AddCommand(usersBootstrapAdminCmd)
}
