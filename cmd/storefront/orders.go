package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
)

// OrdersOptions holds flags for the orders command.
type OrdersOptions struct {
	*RootOptions
	Limit int
}

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "orders",
		Short:         "List journaled orders",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runOrders(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of orders to show (0 for all)")

	return cmd
}

func runOrders(ctx context.Context, opts *OrdersOptions, out io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		return errors.Wrap(err, "open journal")
	}
	defer db.Close()

	receipts, err := repository.NewReceiptRepo(db).List(ctx, opts.Limit)
	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	if len(receipts) == 0 {
		_, err := fmt.Fprintln(out, "No orders yet.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACED\tORDER\tPAYMENT\tITEMS\tTOTAL")
	for _, r := range receipts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.OrderID, r.Payment,
			strings.Join(r.Items, ","), r.Total)
	}
	return w.Flush()
}
