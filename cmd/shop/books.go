package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookstore-catalog/internal/client"
)

func newBooksCmd(s *shop) *cobra.Command {
	var p client.ListBooksParams

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := s.api.ListBooks(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.Books) == 0 {
				fmt.Fprintln(out, "No books found.")
			} else {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tPRICE")
				for _, b := range res.Books {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%s\n", b.BookID, b.Title, b.Author, b.Category, b.Price.StringFixed(2))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			pages := res.TotalPages
			if pages < 1 {
				pages = 1
			}
			fmt.Fprintf(out, "\npage %d of %d (%d books, category: %s)\n", res.PageNumber, pages, res.TotalItems, res.Category)
			return nil
		},
	}

	cmd.Flags().IntVar(&p.PageNumber, "page", 1, "page number")
	cmd.Flags().IntVar(&p.PageSize, "size", 5, "results per page")
	cmd.Flags().StringVar(&p.SortBy, "sort", "Title", "sort by Title, Author or Publisher")
	cmd.Flags().StringVar(&p.SortDirection, "dir", "asc", "sort direction, asc or desc")
	cmd.Flags().StringVar(&p.Category, "category", "all", "category filter")
	return cmd
}

func newCategoriesCmd(s *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := s.api.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
