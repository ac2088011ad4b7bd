package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/storage"
	"github.com/shashiranjanraj/voucherhub/pkg/vouchercode"
)

var (
	backfillDryRun bool
	backfillReport bool
	verifyReport   bool
)

// voucherhub voucher:generate N
var voucherGenerateCmd = &cobra.Command{
	Use:   "voucher:generate N",
	Short: "Print N freshly generated voucher codes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("N must be a non-negative integer, got %q", args[0])
		}

		codes, err := vouchercode.Generate(n)
		if err != nil {
			return err
		}
		for _, code := range codes {
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		return nil
	},
}

// voucherhub voucher:backfill
var voucherBackfillCmd = &cobra.Command{
	Use:   "voucher:backfill",
	Short: "Assign voucher codes to cart items that have none",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		stores, release, err := bootDB(ctx, true)
		if err != nil {
			return err
		}
		defer release()

		fmt.Println("Scanning cartitemhistory for missing voucher codes…")
		report, err := services.NewVoucherService(stores.CartItems, nil).Backfill(ctx, backfillDryRun)
		printBackfill(report)
		if err != nil {
			return err
		}

		if backfillReport {
			return export(ctx, "backfill", report.StartedAt, report)
		}
		return nil
	},
}

// voucherhub voucher:verify
var voucherVerifyCmd = &cobra.Command{
	Use:   "voucher:verify",
	Short: "Check every cart item has a unique, well-formed voucher code",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		stores, release, err := bootDB(ctx, false)
		if err != nil {
			return err
		}
		defer release()

		report, err := services.NewVoucherService(stores.CartItems, nil).Verify(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("  total: %d  missing: %d  duplicates: %d  malformed: %d\n",
			report.Total, report.Missing, len(report.Duplicates), len(report.Malformed))
		for code, n := range report.Duplicates {
			fmt.Printf("  ✗ duplicate %s ×%d\n", code, n)
		}
		for _, code := range report.Malformed {
			fmt.Printf("  ✗ malformed %q\n", code)
		}

		if verifyReport {
			if err := export(ctx, "verify", report.CheckedAt, report); err != nil {
				return err
			}
		}

		if !report.OK() {
			return fmt.Errorf("voucher verification failed")
		}
		fmt.Println("✅ All voucher codes present and unique")
		return nil
	},
}

func printBackfill(r services.BackfillReport) {
	mode := ""
	if r.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("  scanned: %d  updated: %d  remaining: %d%s\n", r.Scanned, r.Updated, r.Remaining, mode)
	if r.DryRun {
		for _, code := range r.Codes {
			fmt.Println("  •", code)
		}
	}
}

func export(ctx context.Context, kind string, at time.Time, report any) error {
	mgr, err := storage.NewManager(ctx)
	if err != nil {
		return err
	}
	disk := mgr.Default()

	path, err := services.ExportReport(ctx, disk, kind, at, report)
	if err != nil {
		return err
	}
	fmt.Println("  report:", disk.URL(path))
	return nil
}

func init() {
	voucherBackfillCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "Generate and print codes without writing them")
	voucherBackfillCmd.Flags().BoolVar(&backfillReport, "report", false, "Write the JSON report to the storage disk")
	voucherVerifyCmd.Flags().BoolVar(&verifyReport, "report", false, "Write the JSON report to the storage disk")
}
