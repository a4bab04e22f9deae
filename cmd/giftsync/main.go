// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command giftsync maintains the gift catalog from a JSON snapshot.
//
// It shares the database and schema with the API server:
//
//	giftsync plan   -f gifts.json     show what a sync would change
//	giftsync apply  -f gifts.json     reconcile the catalog (destructive)
//	giftsync seed   -f gifts.json     insert missing gifts only
//	giftsync verify                   check denormalized flags against the ledger
//	giftsync repair                   rewrite flags from the ledger
//
// apply and seed refuse to run unless PRODUCTION_SEED_CONFIRM=YES is
// set, so a mistyped command cannot wipe the live wishlist.
package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maraionescu/new-home-api/catalog"
	"github.com/maraionescu/new-home-api/db"
	"github.com/maraionescu/new-home-api/models"
)

// Options holds global flags shared by all subcommands.
type Options struct {
	SnapshotPath string
	DatabaseURL  string
	DatabaseType string
}

func main() {
	_ = godotenv.Load()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand creates the root command for the giftsync CLI.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "giftsync",
		Short:         "Gift catalog maintenance",
		Long:          "Reconciles the gift registry database with a JSON wishlist snapshot.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.SnapshotPath, "snapshot", "f", "", "path to the wishlist snapshot JSON")
	cmd.PersistentFlags().StringVarP(&opts.DatabaseURL, "database", "d", os.Getenv("DATABASE_URL"), "database URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().StringVarP(&opts.DatabaseType, "type", "t", defaultDatabaseType(), "database type (sqlite or postgres)")

	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewRepairCommand(opts))

	return cmd
}

func defaultDatabaseType() string {
	if t := os.Getenv("DATABASE_TYPE"); t != "" {
		return t
	}
	return "sqlite"
}

// NewPlanCommand shows the diff a sync would apply, without writing.
func NewPlanCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show what a sync would change",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, conn, err := loadSnapshotAndDB(opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			if violations := snap.Validate(); len(violations) > 0 {
				printViolations(cmd, violations)
				return fmt.Errorf("snapshot failed validation with %d violation(s)", len(violations))
			}

			plan, err := catalog.BuildPlan(cmd.Context(), conn, snap)
			if err != nil {
				return err
			}

			cmd.Println(plan.Summary())
			out, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}

// NewApplyCommand reconciles the catalog with the snapshot.
func NewApplyCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the catalog with the snapshot (destructive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmProduction(); err != nil {
				return err
			}

			snap, conn, err := loadSnapshotAndDB(opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			plan, err := catalog.Apply(cmd.Context(), conn, snap, time.Now().UTC())
			var verr *catalog.ValidationError
			if errors.As(err, &verr) {
				printViolations(cmd, verr.Fields)
				return err
			}
			if err != nil {
				return err
			}

			cmd.Println("Applied:", plan.Summary())
			return nil
		},
	}
}

// NewSeedCommand inserts snapshot gifts that are not in the database yet.
func NewSeedCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert missing gifts from the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmProduction(); err != nil {
				return err
			}

			snap, conn, err := loadSnapshotAndDB(opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			inserted, err := catalog.Seed(cmd.Context(), conn, snap, time.Now().UTC())
			var verr *catalog.ValidationError
			if errors.As(err, &verr) {
				printViolations(cmd, verr.Fields)
				return err
			}
			if err != nil {
				return err
			}

			cmd.Printf("Seeded %s gift(s)\n", humanize.Comma(int64(inserted)))
			return nil
		},
	}
}

// NewVerifyCommand checks the denormalized flags against the ledger.
func NewVerifyCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check gift flags against the commitment ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			violations, err := catalog.Verify(cmd.Context(), conn)
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				cmd.Println("OK: flags and ledger agree")
				return nil
			}

			for _, v := range violations {
				cmd.Printf("  %s: %s\n", v.GiftID, v.Problem)
			}
			return fmt.Errorf("%s violation(s) found", humanize.Comma(int64(len(violations))))
		},
	}
}

// NewRepairCommand rewrites the flags from the ledger.
func NewRepairCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Rewrite gift flags from the commitment ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmProduction(); err != nil {
				return err
			}

			conn, err := openDB(opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			repaired, err := catalog.Repair(cmd.Context(), conn)
			if err != nil {
				return err
			}
			cmd.Printf("Repaired %s gift row(s)\n", humanize.Comma(int64(repaired)))
			return nil
		},
	}
}

func confirmProduction() error {
	if os.Getenv("PRODUCTION_SEED_CONFIRM") != "YES" {
		return errors.New("refusing to write: set PRODUCTION_SEED_CONFIRM=YES to confirm")
	}
	return nil
}

func openDB(opts *Options) (*sql.DB, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	return db.Open(opts.DatabaseType, opts.DatabaseURL)
}

func loadSnapshotAndDB(opts *Options) (*catalog.Snapshot, *sql.DB, error) {
	if opts.SnapshotPath == "" {
		return nil, nil, errors.New("snapshot path required (use -f)")
	}
	snap, err := catalog.Load(opts.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	conn, err := openDB(opts)
	if err != nil {
		return nil, nil, err
	}
	return snap, conn, nil
}

func printViolations(cmd *cobra.Command, violations []models.FieldError) {
	for _, v := range violations {
		cmd.Println(" ", v.Error())
	}
}
