package main

import (
	"fmt"

	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
	"github.com/spf13/cobra"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or save the caller's profile",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the caller's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			p, err := c.sess.CallerProfile(ctx)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(p)
			}
			if p == nil {
				fmt.Fprintln(c.out, "No profile yet. Run `artisanctl profile save`.")
				return nil
			}
			fmt.Fprintf(c.out, "%s <%s>\n", p.Name, p.Email)
			if p.Bio != nil {
				fmt.Fprintf(c.out, "  %s\n", *p.Bio)
			}
			fmt.Fprintf(c.out, "  payment key set: %v\n", p.HasPaymentAPIKey())
			return nil
		},
	}

	var form compose.ProfileForm
	save := &cobra.Command{
		Use:   "save",
		Short: "Save the caller's profile; both consents are required",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.sess.SaveProfile(ctx, form); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Profile saved.")
			return nil
		},
	}
	fl := save.Flags()
	fl.StringVar(&form.Name, "name", "", "Display name")
	fl.StringVar(&form.Email, "email", "", "Email address")
	fl.StringVar(&form.Bio, "bio", "", "Short bio")
	fl.StringVar(&form.PaymentAPIKey, "payment-key", "", "Payment provider API key")
	fl.BoolVar(&form.AcceptTerms, "accept-terms", false, "Accept the terms of service")
	fl.BoolVar(&form.AcceptPrivacy, "accept-privacy", false, "Accept the privacy policy")

	cmd.AddCommand(get, save)
	return cmd
}

func (c *cli) roleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Show the caller's role or assign roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			role, err := c.sess.CallerRole(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, role)
			return nil
		},
	}

	assign := &cobra.Command{
		Use:   "assign <principal> <admin|user|guest>",
		Short: "Assign a role (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.sess.AssignRole(ctx, args[0], domain.Role(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(assign)
	return cmd
}
