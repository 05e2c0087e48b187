package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/exchange"
	"github.com/crmlite/crmlite/internal/crm/product"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/store"
)

func init() { //nolint: gochecknoinits
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
}

// openState reads the configuration and opens the domain state for the
// one-shot data commands.
func openState() (*state.State, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	blobStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	return state.Open(blobStore)
}

var (
	resetConfirmed bool

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with sample customers and product counters",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := openState()
			if err != nil {
				return err
			}

			now := time.Now().UTC()

			customers := []crm.Customer{
				{
					ID:        "sample-1",
					Name:      "John Smith",
					Phone:     "+1-555-0101",
					Address:   "123 Main St, New York, NY 10001",
					Email:     "john.smith@email.com",
					Category:  "VIP",
					Notes:     "Premium customer, prefers phone contact",
					DateAdded: now,
				},
				{
					ID:        "sample-2",
					Name:      "Sarah Johnson",
					Phone:     "+1-555-0102",
					Address:   "456 Oak Ave, Los Angeles, CA 90210",
					Email:     "sarah.j@email.com",
					Category:  "Regular",
					Notes:     "Interested in new products",
					DateAdded: now,
				},
				{
					ID:        "sample-3",
					Name:      "Mike Wilson",
					Phone:     "+1-555-0103",
					Address:   "789 Pine Rd, Chicago, IL 60601",
					Email:     "mike.wilson@email.com",
					Category:  "Corporate",
					Notes:     "Bulk orders, corporate account",
					DateAdded: now,
				},
			}

			if err := st.ReplaceCustomers(customers); err != nil {
				return err
			}

			if err := product.NewAggregator(st).Update(100, 25, 29.99, 5000); err != nil {
				return err
			}

			fmt.Printf("seeded %d customers and product counters\n", len(customers))

			return nil
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Export customers and products to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := openState()
			if err != nil {
				return err
			}

			name := exchange.ExportFilename(time.Now())
			if len(args) > 0 {
				name = args[0]
			}

			return writeDocument(name, exchange.New(st).Export)
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Import customers and products from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := openState()
			if err != nil {
				return err
			}

			return readDocument(args[0], exchange.New(st).Import)
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup [file]",
		Short: "Write a full backup including settings to a JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := openState()
			if err != nil {
				return err
			}

			name := exchange.BackupFilename(time.Now())
			if len(args) > 0 {
				name = args[0]
			}

			return writeDocument(name, exchange.New(st).Backup)
		},
	}

	restoreCmd = &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore all data from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := openState()
			if err != nil {
				return err
			}

			return readDocument(args[0], exchange.New(st).Restore)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and restore the default settings",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !resetConfirmed {
				return errors.New("refusing to delete all data without --yes")
			}

			st, err := openState()
			if err != nil {
				return err
			}

			if err := st.ResetAll(); err != nil {
				return err
			}

			fmt.Println("all data was reset")

			return nil
		},
	}
)

func writeDocument(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println("wrote", name)

	return nil
}

func readDocument(name string, read func(r io.Reader) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}

	defer func() {
		_ = f.Close()
	}()

	if err := read(f); err != nil {
		return err
	}

	fmt.Println("applied", name)

	return nil
}
