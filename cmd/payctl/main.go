package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"payables-tracker/internal/app"
	"payables-tracker/internal/config"
	"payables-tracker/internal/core"
	"payables-tracker/internal/db"
	"payables-tracker/internal/logger"
	"payables-tracker/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "payctl",
	Short:         "Admin tool for the payables tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [dir]",
	Short: "Apply SQL migration files in lexical order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "migrations"
		if len(args) == 1 {
			dir = args[0]
		}
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
			if err != nil {
				return err
			}
			sort.Strings(files)
			for _, f := range files {
				sql, err := os.ReadFile(f)
				if err != nil {
					return fmt.Errorf("read %s: %w", f, err)
				}
				if _, err := pool.Exec(ctx, string(sql)); err != nil {
					return fmt.Errorf("apply %s: %w", f, err)
				}
				fmt.Printf("applied %s\n", f)
			}
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo vendor master records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			vendors := core.NewVendorService(pool)
			for _, input := range demoVendors {
				v, err := vendors.CreateVendor(ctx, input)
				if err != nil {
					return err
				}
				fmt.Printf("created vendor %s (%s)\n", v.Code, v.WorkType)
			}
			return nil
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <year> [vendor-code]",
	Short: "Print the yearly payables report",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		vendorCode := ""
		if len(args) == 2 {
			vendorCode = args[1]
		}
		return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			cfg := config.Load()
			log := logger.New(cfg.LogLevel, cfg.LogFormat)
			source, err := seed.New(0)
			if err != nil {
				return err
			}
			vendors := core.NewVendorService(pool)
			ledger := core.NewPaymentLedger(pool)
			scStore := core.NewEntryStore(core.ClassSubcontractor, source, ledger, vendors, log)
			hsStore := core.NewEntryStore(core.ClassHiringService, source, ledger, vendors, log)
			svc := app.NewAppService(vendors, ledger, log, scStore, hsStore)

			report, err := svc.YearlyReport(ctx, vendorCode, year)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		})
	},
}

func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) error {
	cfg := config.Load()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, pool)
}

func printReport(rep *core.YearlyReport) {
	title := fmt.Sprintf("Year %d", rep.Year)
	if rep.VendorCode != "" {
		title += " — " + rep.VendorCode
	}
	fmt.Println(title)
	fmt.Printf("%-10s %12s %12s %12s %12s %12s\n",
		"Month", "Gross", "Total", "Net", "Paid", "Payables")
	for _, m := range rep.Months {
		if m.Entries == 0 {
			continue
		}
		fmt.Printf("%-10s %12s %12s %12s %12s %12s\n",
			core.FormatMonthLabel(rep.Year, m.Month),
			m.Gross.StringFixed(2), m.TotalAmount.StringFixed(2),
			m.NetTotal.StringFixed(2), m.Paid.StringFixed(2), m.Payables.StringFixed(2))
	}
	t := rep.Totals
	fmt.Printf("%-10s %12s %12s %12s %12s %12s\n",
		"Total", t.Gross.StringFixed(2), t.TotalAmount.StringFixed(2),
		t.NetTotal.StringFixed(2), t.Paid.StringFixed(2), t.Payables.StringFixed(2))
}

var demoVendors = []core.VendorInput{
	{Code: "SC_01", Name: "Sharma Constructions", WorkType: core.WorkTypeSubcontractor, PANNo: "ABCPS1234F", ContactNo: "9811000001", IFSC: "HDFC0000123", BankAccountNo: "50100012345678"},
	{Code: "SC_02", Name: "Verma Civil Works", WorkType: core.WorkTypeSubcontractor, PANNo: "AAEPV5678K", ContactNo: "9811000002"},
	{Code: "HS_01", Name: "Apex Crane Hire", WorkType: core.WorkTypeHiringService, PANNo: "AABCA9012L", ContactNo: "9811000003"},
	{Code: "HS_02", Name: "Bharat Equipment Rentals", WorkType: core.WorkTypeHiringService},
}

func main() {
	rootCmd.AddCommand(migrateCmd, seedCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
