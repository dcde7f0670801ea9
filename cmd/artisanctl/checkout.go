package main

import (
	"fmt"

	"artisanhub/internal/domain"
	"artisanhub/internal/session"
	"github.com/spf13/cobra"
)

func (c *cli) checkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Start a payment for a listing or read its outcome",
	}

	var qty int64
	buy := &cobra.Command{
		Use:   "buy <product-id>",
		Short: "Start checkout for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			p, err := c.product(cmd, args[0])
			if err != nil {
				return err
			}
			sess, err := c.sess.Checkout(ctx, p.ArtistID, []domain.ShoppingItem{session.BuyItem(*p, qty)})
			if err != nil {
				return err
			}
			return c.printSession(sess)
		},
	}
	buy.Flags().Int64Var(&qty, "qty", 1, "Quantity")

	var amount string
	donate := &cobra.Command{
		Use:   "donate <product-id>",
		Short: "Donate to an artist; --amount overrides the suggested amount (min 1.00)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			p, err := c.product(cmd, args[0])
			if err != nil {
				return err
			}
			sess, err := c.sess.Donate(ctx, *p, amount)
			if err != nil {
				return err
			}
			return c.printSession(sess)
		},
	}
	donate.Flags().StringVar(&amount, "amount", "", "Donation amount, e.g. 5.00")

	status := &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show the outcome of a checkout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			st, err := c.sess.SessionStatus(ctx, args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(st)
			}
			switch st.Kind {
			case domain.SessionCompleted:
				fmt.Fprintln(c.out, "Payment completed.")
			default:
				fmt.Fprintf(c.out, "Payment failed: %s\n", st.Error)
			}
			return nil
		},
	}

	cmd.AddCommand(buy, donate, status)
	return cmd
}

func (c *cli) product(cmd *cobra.Command, id string) (*domain.Product, error) {
	ctx, cancel := c.ctx(cmd)
	defer cancel()
	p, err := c.sess.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}

func (c *cli) printSession(s *domain.CheckoutSession) error {
	if c.asJSON {
		return c.printJSON(s)
	}
	fmt.Fprintf(c.out, "Continue payment at:\n  %s\n", s.URL)
	return nil
}
