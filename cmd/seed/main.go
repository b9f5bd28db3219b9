// Command seed resets the marketplace collections and writes the demo users
// and listings.
package main

import (
	"fmt"
	"os"
	"strings"

	"textbook-exchange/config"
	"textbook-exchange/exchange"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Reset marketplace data and load the demo listings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Clean up existing collections
	fmt.Printf("Cleaning up existing %s data (prefix %q)...\n", cfg.Backend, cfg.KeyPrefix)
	for _, name := range []string{exchange.KeyUsers, exchange.KeyBooks, exchange.KeyFavorites, exchange.KeySession} {
		if err := store.Remove(cfg.KeyPrefix + name); err != nil {
			fmt.Printf("Warning: Could not remove %s: %v\n", cfg.KeyPrefix+name, err)
		}
	}
	fmt.Println("Cleanup complete.")

	market, err := exchange.Open(store, exchange.Options{KeyPrefix: cfg.KeyPrefix, Seed: true})
	if err != nil {
		return fmt.Errorf("seed marketplace: %w", err)
	}

	users := market.Users()
	books := market.Books()
	fmt.Printf("\nSeed complete!\n")
	fmt.Printf("Users: %d\n", len(users))
	fmt.Printf("Listings: %d\n", len(books))

	fmt.Println("\nDemo accounts (password \"pass\"):")
	for _, u := range users {
		fmt.Printf("  %-16s %-24s %s\n", u.Name, u.Email, u.Phone)
	}

	fmt.Println("\nListings:")
	fmt.Printf("%-8s %-45s %-8s %8s %-6s\n", "ID", "Title", "Course", "Price", "Cond.")
	fmt.Println(strings.Repeat("-", 80))
	for _, b := range books {
		fmt.Printf("%-8s %-45s %-8s %8.2f %-6s\n", b.ID[:8], truncateString(b.Title, 45), b.Course, b.Price, b.Condition)
	}

	if s, ok := store.(*exchange.SQLiteStore); ok {
		keys, err := s.Keys()
		if err == nil {
			fmt.Printf("\nStored keys in %s: %s\n", cfg.DBPath, strings.Join(keys, ", "))
		}
	}
	return nil
}

func openStore(cfg *config.Config) (exchange.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return exchange.NewRedisStore(cfg.RedisURL, cfg.RedisTimeout)
	default:
		return exchange.NewSQLiteStore(cfg.DBPath)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
