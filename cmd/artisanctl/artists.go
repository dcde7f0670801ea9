package main

import (
	"fmt"
	"os"

	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
	"artisanhub/internal/upload"
	"github.com/spf13/cobra"
)

func (c *cli) artistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "artists",
		Aliases: []string{"artist"},
		Short:   "List, register and manage artists",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			artists, err := c.sess.Artists(ctx)
			if err != nil {
				return err
			}
			return c.printArtists(artists)
		},
	}

	get := &cobra.Command{
		Use:   "get <artist-id>",
		Short: "Show one artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			a, err := c.sess.Artist(ctx, args[0])
			if err != nil {
				return err
			}
			return c.printArtist(a)
		},
	}

	var form compose.ArtistForm
	register := &cobra.Command{
		Use:   "register",
		Short: "Register the caller as an artist (requires an accepted profile)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			a, err := c.sess.RegisterArtist(ctx, form)
			if err != nil {
				return err
			}
			return c.printArtist(a)
		},
	}
	register.Flags().StringVar(&form.Name, "name", "", "Artist name")
	register.Flags().StringVar(&form.Email, "email", "", "Contact email")

	setActive := func(use, short string, active bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <artist-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := c.ctx(cmd)
				defer cancel()
				a, err := c.sess.SetArtistActive(ctx, args[0], active)
				if err != nil {
					return err
				}
				return c.printArtist(a)
			},
		}
	}

	account := &cobra.Command{
		Use:   "payment-account <artist-id> <acct_id>",
		Short: "Connect a payment account to an artist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			a, err := c.sess.SetArtistPaymentAccount(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return c.printArtist(a)
		},
	}

	cmd.AddCommand(
		list,
		get,
		register,
		setActive("activate", "Activate an artist (admin)", true),
		setActive("deactivate", "Deactivate an artist (admin)", false),
		account,
	)
	return cmd
}

func (c *cli) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show or edit an artist's storefront",
	}

	get := &cobra.Command{
		Use:   "get <artist-id>",
		Short: "Show storefront settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			s, err := c.sess.StoreSettings(ctx, args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(s)
			}
			if s == nil {
				fmt.Fprintln(c.out, "No storefront settings yet.")
				return nil
			}
			printStore(c, s)
			return nil
		},
	}

	var form compose.StoreForm
	set := &cobra.Command{
		Use:   "set <artist-id>",
		Short: "Save storefront settings; --banner may be a local image to upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			if _, err := os.Stat(form.Banner); form.Banner != "" && err == nil {
				f, err := upload.FromPath(form.Banner)
				if err != nil {
					return err
				}
				images, _, err := c.sess.UploadMedia(ctx, []upload.File{f}, c.progressObserver())
				if err != nil {
					return err
				}
				if len(images) == 0 {
					return fmt.Errorf("banner upload failed")
				}
				form.Banner = images[0].DirectURL
			}

			s, err := c.sess.UpdateStoreSettings(ctx, args[0], form)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(s)
			}
			printStore(c, s)
			return nil
		},
	}
	fl := set.Flags()
	fl.StringVar(&form.StoreName, "name", "", "Store name")
	fl.StringVar(&form.StoreBio, "bio", "", "Store bio")
	fl.StringVar(&form.Banner, "banner", "", "Banner image URL or local file")
	fl.StringVar(&form.Instagram, "instagram", "", "Instagram URL")
	fl.StringVar(&form.Facebook, "facebook", "", "Facebook URL")
	fl.StringVar(&form.Twitter, "twitter", "", "Twitter URL")
	fl.StringVar(&form.YouTube, "youtube", "", "YouTube URL")
	fl.StringVar(&form.TikTok, "tiktok", "", "TikTok URL")

	cmd.AddCommand(get, set)
	return cmd
}

func printStore(c *cli, s *domain.StoreSettings) {
	fmt.Fprintf(c.out, "%s\n", s.StoreName)
	if s.StoreBio != "" {
		fmt.Fprintf(c.out, "  %s\n", s.StoreBio)
	}
	if s.BannerImage != nil {
		fmt.Fprintf(c.out, "  banner:    %s\n", *s.BannerImage)
	}
	links := []struct {
		name string
		url  *string
	}{
		{"instagram", s.SocialLinks.Instagram},
		{"facebook", s.SocialLinks.Facebook},
		{"twitter", s.SocialLinks.Twitter},
		{"youtube", s.SocialLinks.YouTube},
		{"tiktok", s.SocialLinks.TikTok},
	}
	for _, l := range links {
		if l.url != nil {
			fmt.Fprintf(c.out, "  %-10s %s\n", l.name+":", *l.url)
		}
	}
}
