package main

import (
	"context"
	"fmt"
	"os"

	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
	"artisanhub/internal/importer"
	"artisanhub/internal/money"
	"artisanhub/internal/upload"
	"github.com/spf13/cobra"
)

type productFlags struct {
	artist      string
	name        string
	description string
	category    string
	price       string
	donation    bool
	media       []string
	images      []string
	video       string
}

func (f *productFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.artist, "artist", "", "Owning artist (admins only; defaults to the caller)")
	fl.StringVar(&f.name, "name", "", "Product name")
	fl.StringVar(&f.description, "description", "", "Product description")
	fl.StringVar(&f.category, "category", "", "Category label (donations default to Support)")
	fl.StringVar(&f.price, "price", "", "Price, or suggested amount for donations, e.g. 12.50")
	fl.BoolVar(&f.donation, "donation", false, "Create a donation instead of a product")
	fl.StringSliceVar(&f.media, "media", nil, "Local image files and at most one video to upload")
	fl.StringSliceVar(&f.images, "image-url", nil, "Already uploaded image URLs")
	fl.StringVar(&f.video, "video-url", "", "Already uploaded video URL")
}

func (f *productFlags) submission(existing *domain.Product) (compose.Submission, error) {
	donation := f.donation || (existing != nil && existing.IsDonation())
	if donation {
		return compose.Donation(compose.DonationForm{
			ArtistID:        f.artist,
			Name:            f.name,
			Description:     f.description,
			Category:        f.category,
			SuggestedAmount: f.price,
			ImageURLs:       f.images,
		}, existing)
	}
	return compose.Product(compose.ProductForm{
		ArtistID:    f.artist,
		Name:        f.name,
		Description: f.description,
		Category:    f.category,
		Price:       f.price,
		ImageURLs:   f.images,
		VideoURL:    f.video,
	}, existing)
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List and manage product listings",
	}

	var listArtist string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all products, or one artist's products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			var (
				products []domain.Product
				err      error
			)
			if listArtist != "" {
				products, err = c.sess.ArtistProducts(ctx, listArtist)
			} else {
				products, err = c.sess.Products(ctx)
			}
			if err != nil {
				return err
			}
			return c.printProducts(products)
		},
	}
	list.Flags().StringVar(&listArtist, "artist", "", "Only this artist's products")

	get := &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			p, err := c.sess.Product(ctx, args[0])
			if err != nil {
				return err
			}
			return c.printProduct(p)
		},
	}

	var createFlags productFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product or donation listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			return c.saveProduct(ctx, cmd, &createFlags, nil)
		},
	}
	createFlags.register(create)

	var updateFlags productFlags
	update := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a listing; its type never changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			existing, err := c.sess.Product(ctx, args[0])
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("product %s not found", args[0])
			}
			return c.saveProduct(ctx, cmd, &updateFlags, existing)
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.sess.DeleteProduct(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted %s\n", args[0])
			return nil
		},
	}

	var (
		bulkArtist string
		bulkLimit  int
	)
	bulk := &cobra.Command{
		Use:   "bulk-upload <image>...",
		Short: "Upload images and create one placeholder product per successful upload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			files, err := loadFiles(args)
			if err != nil {
				return err
			}
			batch, created, err := c.sess.BulkUpload(ctx, bulkArtist, files, upload.WithLimit(bulkLimit), c.progressObserver())
			if batch != nil {
				counts := batch.Counts()
				fmt.Fprintf(c.errOut, "Total: %d  Success: %d  Failed: %d\n",
					len(batch.States()), counts[upload.StatusSuccess], counts[upload.StatusError])
			}
			if err != nil {
				return err
			}
			return c.printProducts(created)
		},
	}
	bulk.Flags().StringVar(&bulkArtist, "artist", "", "Owning artist (admins only; defaults to the caller)")
	bulk.Flags().IntVar(&bulkLimit, "concurrency", upload.DefaultLimit, "Concurrent uploads")

	var (
		importArtist string
		dryRun       bool
	)
	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create products from a CSV file",
		Long: `Columns: name, description, categoryName, price, productType, imageUrl, videoUrl.
A row with an empty name adds its imageUrl to the product above it.
Every row is validated before anything is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			imp := importer.NewCSVImporter(f, c.sess, importArtist)
			if dryRun {
				products, err := imp.Parse()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%d products valid\n", len(products))
				return nil
			}
			count, err := imp.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Imported %d products\n", count)
			return nil
		},
	}
	importCmd.Flags().StringVar(&importArtist, "artist", "", "Owning artist (admins only; defaults to the caller)")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only validate the file")

	cmd.AddCommand(list, get, create, update, del, bulk, importCmd)
	return cmd
}

func (c *cli) saveProduct(ctx context.Context, cmd *cobra.Command, f *productFlags, existing *domain.Product) error {
	if existing != nil {
		f.fillFrom(cmd, existing)
	}
	sub, err := f.submission(existing)
	if err != nil {
		return err
	}

	if len(f.media) > 0 {
		files, err := loadFiles(f.media)
		if err != nil {
			return err
		}
		images, video, err := c.sess.UploadMedia(ctx, files, c.progressObserver())
		if err != nil {
			return err
		}
		sub = compose.WithMedia(sub, images, video)
	}

	p, err := c.sess.SaveProduct(ctx, sub)
	if err != nil {
		return err
	}
	return c.printProduct(p)
}

// fillFrom keeps stored values for flags the user did not set.
func (f *productFlags) fillFrom(cmd *cobra.Command, p *domain.Product) {
	fl := cmd.Flags()
	if !fl.Changed("name") {
		f.name = p.Name
	}
	if !fl.Changed("description") {
		f.description = p.Description
	}
	if !fl.Changed("category") {
		f.category = p.CategoryName
	}
	if !fl.Changed("price") {
		f.price = money.Decimal(p.PriceCents)
	}
	if !fl.Changed("image-url") {
		f.images = append([]string(nil), p.ImageURLs...)
	}
	if !fl.Changed("video-url") && p.VideoURL != nil {
		f.video = *p.VideoURL
	}
	if !fl.Changed("artist") {
		f.artist = p.ArtistID
	}
}
