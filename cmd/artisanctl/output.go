package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"artisanhub/internal/domain"
	"artisanhub/internal/money"
	"artisanhub/internal/upload"
)

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) table(header string, rows [][]string) error {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func (c *cli) printProducts(products []domain.Product) error {
	if c.asJSON {
		return c.printJSON(products)
	}
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found.")
		return nil
	}
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{p.ID, p.Name, string(p.Type), money.Format(p.PriceCents), p.CategoryName, p.ArtistID}
	}
	return c.table("ID\tNAME\tTYPE\tPRICE\tCATEGORY\tARTIST", rows)
}

func (c *cli) printProduct(p *domain.Product) error {
	if c.asJSON {
		return c.printJSON(p)
	}
	if p == nil {
		fmt.Fprintln(c.out, "Product not found.")
		return nil
	}
	fmt.Fprintf(c.out, "%s  %s  (%s)\n", p.ID, p.Name, p.Type)
	fmt.Fprintf(c.out, "  price:    %s\n", money.Format(p.PriceCents))
	fmt.Fprintf(c.out, "  category: %s\n", p.CategoryName)
	fmt.Fprintf(c.out, "  artist:   %s\n", p.ArtistID)
	for _, u := range p.ImageURLs {
		fmt.Fprintf(c.out, "  image:    %s\n", u)
	}
	if p.VideoURL != nil {
		fmt.Fprintf(c.out, "  video:    %s\n", *p.VideoURL)
	}
	return nil
}

func (c *cli) printArtists(artists []domain.ArtistProfile) error {
	if c.asJSON {
		return c.printJSON(artists)
	}
	rows := make([][]string, len(artists))
	for i, a := range artists {
		account := "-"
		if a.HasPaymentAccount() {
			account = *a.PaymentAccountID
		}
		rows[i] = []string{a.ID, a.Name, a.Email, fmt.Sprint(a.IsActive), account}
	}
	return c.table("ID\tNAME\tEMAIL\tACTIVE\tPAYMENT ACCOUNT", rows)
}

func (c *cli) printArtist(a *domain.ArtistProfile) error {
	if a == nil {
		if c.asJSON {
			return c.printJSON(nil)
		}
		fmt.Fprintln(c.out, "Artist not found.")
		return nil
	}
	return c.printArtists([]domain.ArtistProfile{*a})
}

// progressObserver prints a line whenever a file changes status.
func (c *cli) progressObserver() upload.Option {
	last := map[int]upload.Status{}
	return upload.WithObserver(func(i int, st upload.FileState) {
		if last[i] == st.Status {
			return
		}
		last[i] = st.Status
		switch st.Status {
		case upload.StatusError:
			fmt.Fprintf(c.errOut, "  %-30s %s: %v\n", st.File.Name, st.Status, st.Err)
		default:
			fmt.Fprintf(c.errOut, "  %-30s %s %d%%\n", st.File.Name, st.Status, st.Progress)
		}
	})
}

func loadFiles(paths []string) ([]upload.File, error) {
	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		f, err := upload.FromPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
