package main

import (
	"fmt"
	"strings"

	"textbook-exchange/exchange"

	"github.com/spf13/cobra"
)

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive marketplace session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.runShell()
			return nil
		},
	}
}

// runShell is the interactive loop. Search text and filters persist between
// commands until cleared, so "list" always shows the current view.
func (a *app) runShell() {
	var view filterFlags

	fmt.Fprintln(a.out, "Welcome to the Campus Textbook Exchange!")
	fmt.Fprintf(a.out, "Data is stored locally (%s backend).\n", a.cfg.Backend)
	fmt.Fprintln(a.out, "Available commands:")
	fmt.Fprintln(a.out, "  Account: register, login, logout, whoami")
	fmt.Fprintln(a.out, "  Browse: list, search, filter, clear")
	fmt.Fprintln(a.out, "  Selling: sell, delete, toggle sold")
	fmt.Fprintln(a.out, "  Buying: fav, favs, contact")
	fmt.Fprintln(a.out, "  System: exit")

	for {
		cmd, ok := a.readLine("\n> ")
		if !ok {
			break
		}

		var err error
		switch cmd {
		case "register":
			err = a.handleRegister()
		case "login":
			err = a.handleLogin()
		case "logout":
			err = a.market.Logout()
			if err == nil {
				fmt.Fprintln(a.out, "Logged out.")
			}
		case "whoami":
			a.printSession()
		case "list":
			err = a.handleList(view)
		case "search":
			if q, ok := a.readLine("Search title, author or course: "); ok {
				view.search = q
				err = a.handleList(view)
			}
		case "filter":
			if next, ok := a.promptFilters(view); ok {
				view = next
				err = a.handleList(view)
			}
		case "clear":
			view = filterFlags{}
			fmt.Fprintln(a.out, "Search and filters cleared.")
		case "sell":
			err = a.handleSell()
		case "delete":
			err = a.withListingID(a.deleteListing)
		case "toggle sold":
			err = a.withListingID(a.toggleSold)
		case "fav":
			err = a.withListingID(a.toggleFavorite)
		case "favs":
			err = a.printFavorites()
		case "contact":
			err = a.withListingID(a.printContact)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Goodbye!")
			return
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the available commands listed above.")
		}
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *app) handleRegister() error {
	name, ok := a.readLine("Name: ")
	if !ok {
		return nil
	}
	email, ok := a.readLine("Email: ")
	if !ok {
		return nil
	}
	phone, ok := a.readLine("Phone / WhatsApp (optional): ")
	if !ok {
		return nil
	}
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
}

func (a *app) handleLogin() error {
	email, ok := a.readLine("Email: ")
	if !ok {
		return nil
	}
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
}

func (a *app) handleList(view filterFlags) error {
	f, err := view.filters()
	if err != nil {
		return err
	}
	a.printListings(a.market.Search(view.search, f), view.search)
	return nil
}

// promptFilters asks for each filter, keeping the current value on a blank
// answer and clearing it on "-".
func (a *app) promptFilters(cur filterFlags) (filterFlags, bool) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Course", &cur.course},
		{"Condition (New/Good/Used)", &cur.condition},
		{"Min price", &cur.minPrice},
		{"Max price", &cur.maxPrice},
	}
	for _, f := range fields {
		v, ok := a.readLine(fmt.Sprintf("%s [%s]: ", f.label, *f.dst))
		if !ok {
			return cur, false
		}
		switch v {
		case "":
		case "-":
			*f.dst = ""
		default:
			*f.dst = v
		}
	}
	return cur, true
}

func (a *app) handleSell() error {
	u, err := a.requireSession()
	if err != nil {
		return err
	}

	var in exchange.ListingInput
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Title: ", &in.Title},
		{"Author: ", &in.Author},
		{"Course (e.g., CS201): ", &in.Course},
		{"Price: ", &in.Price},
	}
	for _, p := range prompts {
		v, ok := a.readLine(p.label)
		if !ok {
			return nil
		}
		*p.dst = v
	}

	cond, ok := a.readLine("Condition (New/Good/Used) [Good]: ")
	if !ok {
		return nil
	}
	in.Condition = exchange.Condition(cond)

	path, ok := a.readLine("Path to cover image (optional): ")
	if !ok {
		return nil
	}
	if path != "" {
		img, err := exchange.EncodeImageFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "Image error: %v. Posting without a cover.\n", err)
		} else {
			in.Image = img
		}
	}

	b, err := a.market.CreateListing(exchange.ActorFor(u), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted '%s' for %s (ID %s)\n", b.Title, formatPrice(b.Price), shortID(b.ID))
	return nil
}

func (a *app) withListingID(fn func(string) error) error {
	ref, ok := a.readLine("Listing ID: ")
	if !ok {
		return nil
	}
	return fn(strings.TrimSpace(ref))
}
