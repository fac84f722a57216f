package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookstore-catalog/internal/domain/cart"
)

func newCartCmd(s *shop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart of the current session",
	}
	cmd.AddCommand(
		newCartAddCmd(s),
		newCartUpdateCmd(s),
		newCartRemoveCmd(s),
		newCartClearCmd(s),
		newCartShowCmd(s),
	)
	return cmd
}

func newCartAddCmd(s *shop) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "add <bookId> [quantity]",
		Short: "Price a book and add it to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			quantity := 1
			if len(args) == 2 {
				if quantity, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
			}

			item, err := s.api.PriceItem(cmd.Context(), bookID, quantity)
			if err != nil {
				return err
			}

			store, err := s.openStore(cmd.Context(), s.sessionID)
			if err != nil {
				return err
			}
			if err := store.Add(cmd.Context(), *item); err != nil {
				return err
			}
			if err := store.SetLastAddedFrom(cmd.Context(), from); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s ($%s). Cart: %d items, $%s\n",
				item.Quantity, item.Title, item.Subtotal().StringFixed(2), store.ItemCount(), store.Total().StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "page the book was added from, used by \"continue shopping\"")
	return cmd
}

func newCartUpdateCmd(s *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "update <bookId> <quantity>",
		Short: "Set the quantity of a cart item, 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			store, err := s.openStore(cmd.Context(), s.sessionID)
			if err != nil {
				return err
			}
			if err := store.UpdateQuantity(cmd.Context(), bookID, quantity); err != nil {
				return err
			}
			return printCart(cmd, store)
		},
	}
}

func newCartRemoveCmd(s *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <bookId>",
		Short: "Remove a book from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseBookID(args[0])
			if err != nil {
				return err
			}

			store, err := s.openStore(cmd.Context(), s.sessionID)
			if err != nil {
				return err
			}
			if err := store.Remove(cmd.Context(), bookID); err != nil {
				return err
			}
			return printCart(cmd, store)
		},
	}
}

func newCartClearCmd(s *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context(), s.sessionID)
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}

func newCartShowCmd(s *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context(), s.sessionID)
			if err != nil {
				return err
			}
			return printCart(cmd, store)
		},
	}
}

func printCart(cmd *cobra.Command, store *cart.Store) error {
	out := cmd.OutOrStdout()
	items := store.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%s\t%d\t$%s\t$%s\n", it.BookID, it.Title, it.Quantity, it.Price.StringFixed(2), it.Subtotal().StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d items, total $%s\n", store.ItemCount(), store.Total().StringFixed(2))
	}

	if from := store.LastAddedFrom(); from != "" {
		fmt.Fprintf(out, "Continue shopping: %s\n", from)
	}
	return nil
}

func parseBookID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return uint(id), nil
}
