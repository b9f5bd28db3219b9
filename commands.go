package main

import (
	"fmt"
	"strconv"
	"strings"

	"textbook-exchange/exchange"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var name, email, phone string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			u, err := a.market.Register(name, email, phone, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", u.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone / WhatsApp number (optional)")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			u, err := a.market.Login(email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.market.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printSession()
			return nil
		},
	}
}

// filterFlags holds the raw listing filter inputs shared by list and shell.
type filterFlags struct {
	search, course, condition, minPrice, maxPrice string
}

func (f filterFlags) filters() (exchange.Filters, error) {
	out := exchange.Filters{
		Course:    strings.TrimSpace(f.course),
		Condition: exchange.Condition(strings.TrimSpace(f.condition)),
	}
	if out.Condition != "" && !out.Condition.Valid() {
		return exchange.Filters{}, fmt.Errorf("condition must be one of New, Good, Used")
	}
	var err error
	if out.MinPrice, err = parseBound("min price", f.minPrice); err != nil {
		return exchange.Filters{}, err
	}
	if out.MaxPrice, err = parseBound("max price", f.maxPrice); err != nil {
		return exchange.Filters{}, err
	}
	return out, nil
}

// parseBound turns an optional price bound into a pointer; blank means unset.
func parseBound(label, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", label, raw)
	}
	return &v, nil
}

func (a *app) listCmd() *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse listings (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ff.filters()
			if err != nil {
				return err
			}
			a.printListings(a.market.Search(ff.search, f), ff.search)
			return nil
		},
	}
	cmd.Flags().StringVarP(&ff.search, "search", "s", "", "match title, author or course")
	cmd.Flags().StringVar(&ff.course, "course", "", "course code contains (e.g. CS201)")
	cmd.Flags().StringVar(&ff.condition, "condition", "", "New, Good or Used")
	cmd.Flags().StringVar(&ff.minPrice, "min", "", "minimum price")
	cmd.Flags().StringVar(&ff.maxPrice, "max", "", "maximum price")
	return cmd
}

func (a *app) sellCmd() *cobra.Command {
	var in exchange.ListingInput
	var condition, imagePath string
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Post a new listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.requireSession()
			if err != nil {
				return err
			}
			in.Condition = exchange.Condition(condition)
			if imagePath != "" {
				if in.Image, err = exchange.EncodeImageFile(imagePath); err != nil {
					return fmt.Errorf("attach image: %w", err)
				}
			}
			b, err := a.market.CreateListing(exchange.ActorFor(u), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Posted '%s' for %s (ID %s)\n", b.Title, formatPrice(b.Price), b.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "book title")
	cmd.Flags().StringVar(&in.Author, "author", "", "author")
	cmd.Flags().StringVar(&in.Course, "course", "", "course code (e.g. CS201)")
	cmd.Flags().StringVar(&in.Price, "price", "", "asking price")
	cmd.Flags().StringVar(&condition, "condition", string(exchange.ConditionGood), "New, Good or Used")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a cover image (optional)")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <listing-id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.deleteListing(args[0])
		},
	}
}

func (a *app) toggleSoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-sold <listing-id>",
		Short: "Mark one of your listings sold or available again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggleSold(args[0])
		},
	}
}

func (a *app) favCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <listing-id>",
		Short: "Save or unsave a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggleFavorite(args[0])
		},
	}
}

func (a *app) favsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favs",
		Short: "Show your saved listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printFavorites()
		},
	}
}

func (a *app) contactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact <listing-id>",
		Short: "Show a WhatsApp link to the seller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printContact(args[0])
		},
	}
}

// ------------------ Shared intent handlers ------------------

func (a *app) deleteListing(ref string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	b, err := a.resolveBook(ref)
	if err != nil {
		return err
	}
	deleted, err := a.market.DeleteListing(exchange.ActorFor(u), b.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errNotYours(u, b)
	}
	fmt.Fprintf(a.out, "Deleted '%s'\n", b.Title)
	return nil
}

func (a *app) toggleSold(ref string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	b, err := a.resolveBook(ref)
	if err != nil {
		return err
	}
	status, changed, err := a.market.ToggleSold(exchange.ActorFor(u), b.ID)
	if err != nil {
		return err
	}
	if !changed {
		return errNotYours(u, b)
	}
	fmt.Fprintf(a.out, "'%s' is now %s\n", b.Title, status)
	return nil
}

func (a *app) toggleFavorite(ref string) error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	b, err := a.resolveBook(ref)
	if err != nil {
		return err
	}
	saved, err := a.market.ToggleFavorite(exchange.ActorFor(u), b.ID)
	if err != nil {
		return err
	}
	if saved {
		fmt.Fprintf(a.out, "Saved '%s'\n", b.Title)
	} else {
		fmt.Fprintf(a.out, "Removed '%s' from favorites\n", b.Title)
	}
	return nil
}

func (a *app) printFavorites() error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}
	favs := a.market.ListFavorites(u.ID)
	if len(favs) == 0 {
		fmt.Fprintln(a.out, `No favorites yet. Use "fav <id>" on listings you like.`)
		return nil
	}
	a.printListings(favs, "")
	return nil
}

func (a *app) printContact(ref string) error {
	b, err := a.resolveBook(ref)
	if err != nil {
		return err
	}
	seller, ok := a.market.Seller(b)
	if !ok {
		return fmt.Errorf("seller of '%s' is no longer registered", b.Title)
	}
	link, ok := exchange.ContactLink(seller, b)
	if !ok {
		return fmt.Errorf("%s has not shared a phone number", seller.Name)
	}
	fmt.Fprintf(a.out, "Chat with %s on WhatsApp:\n%s\n", seller.Name, link)
	return nil
}

func (a *app) printSession() {
	u, ok := a.market.Session()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>", u.Name, u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, " phone %s", u.Phone)
	}
	fmt.Fprintln(a.out)
}

func errNotYours(u exchange.User, b exchange.Book) error {
	if b.SellerID == u.ID {
		return fmt.Errorf("'%s' is %s and cannot be changed", b.Title, b.Status)
	}
	return fmt.Errorf("only the seller can change '%s'", b.Title)
}
