package main

import (
	"fmt"

	"artisanhub/internal/compose"
	"artisanhub/internal/money"
	"github.com/spf13/cobra"
)

// adminCmd groups admin pages. Each page resolves the caller's role first and
// prints only the redirect target for non-admins.
func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin dashboard and platform settings",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Show commission, payment setup and artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			overview, redirect, err := c.sess.AdminDashboard(ctx)
			if err != nil {
				return err
			}
			if redirect != "" {
				return c.redirect(redirect)
			}
			if c.asJSON {
				return c.printJSON(overview)
			}
			fmt.Fprintf(c.out, "Commission rate:    %d%%\n", overview.CommissionRate)
			fmt.Fprintf(c.out, "Payments configured: %v\n", overview.PaymentConfigured)
			payout := "-"
			if overview.PayoutAccount != nil {
				payout = *overview.PayoutAccount
			}
			fmt.Fprintf(c.out, "Payout account:     %s\n\n", payout)
			return c.printArtists(overview.Artists)
		},
	}

	commission := &cobra.Command{
		Use:   "commission [rate]",
		Short: "Show or set the platform commission (0-100)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if ok, err := c.requireAdmin(cmd); !ok || err != nil {
				return err
			}
			if len(args) == 0 {
				rate, err := c.sess.CommissionRate(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%d%%\n", rate)
				return nil
			}
			rate, err := c.sess.SetCommissionRate(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Commission set to %d%%\n", rate)
			return nil
		},
	}

	var payForm compose.PaymentForm
	payment := &cobra.Command{
		Use:   "payment",
		Short: "Configure the payment provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if ok, err := c.requireAdmin(cmd); !ok || err != nil {
				return err
			}
			if err := c.sess.SetPaymentConfiguration(ctx, payForm); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Payment configuration saved.")
			return nil
		},
	}
	payment.Flags().StringVar(&payForm.SecretKey, "secret", "", "Provider secret key")
	payment.Flags().StringVar(&payForm.Countries, "countries", "", "Allowed shipping countries, comma separated (e.g. US,DE)")

	payout := &cobra.Command{
		Use:   "payout [acct_id]",
		Short: "Show or set the platform payout account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if ok, err := c.requireAdmin(cmd); !ok || err != nil {
				return err
			}
			if len(args) == 1 {
				if err := c.sess.SetAdminPaymentAccount(ctx, args[0]); err != nil {
					return err
				}
			}
			id, err := c.sess.AdminPaymentAccount(ctx)
			if err != nil {
				return err
			}
			if id == nil {
				fmt.Fprintln(c.out, "No payout account set.")
				return nil
			}
			fmt.Fprintln(c.out, *id)
			return nil
		},
	}

	revenue := &cobra.Command{
		Use:   "revenue <amount>",
		Short: "Split a sale amount (e.g. 12.50) between platform and artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			cents, err := money.ParsePrice(args[0])
			if err != nil {
				return err
			}
			b, redirect, err := c.sess.Revenue(ctx, cents)
			if err != nil {
				return err
			}
			if redirect != "" {
				return c.redirect(redirect)
			}
			if c.asJSON {
				return c.printJSON(b)
			}
			fmt.Fprintf(c.out, "Sale:     %s\n", money.Format(b.AmountCents))
			fmt.Fprintf(c.out, "Platform: %s (%d%%)\n", money.Format(b.PlatformCents), b.Rate)
			fmt.Fprintf(c.out, "Artist:   %s\n", money.Format(b.ArtistCents))
			return nil
		},
	}

	cmd.AddCommand(dashboard, commission, payment, payout, revenue)
	return cmd
}

// requireAdmin resolves the admin gate and prints the redirect for non-admins.
func (c *cli) requireAdmin(cmd *cobra.Command) (bool, error) {
	ctx, cancel := c.ctx(cmd)
	defer cancel()
	g, err := c.sess.AdminGate(ctx)
	if err != nil {
		return false, err
	}
	if target, ok := g.Redirect(); ok {
		return false, c.redirect(target)
	}
	return true, nil
}

func (c *cli) redirect(target string) error {
	fmt.Fprintf(c.out, "Admin access required; see %s\n", target)
	return nil
}
