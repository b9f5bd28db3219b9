package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"textbook-exchange/config"
	"textbook-exchange/exchange"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries everything a command needs for one invocation.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	market *exchange.Marketplace

	in  *bufio.Scanner
	out io.Writer
	// interactive is true when stdin is a terminal, so passwords can be
	// read without echo.
	interactive bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	a := &app{
		in:          bufio.NewScanner(stdin),
		out:         stdout,
		interactive: stdin == os.Stdin && term.IsTerminal(int(syscall.Stdin)),
	}
	var configPath string

	root := &cobra.Command{
		Use:          "txbook",
		Short:        "Buy and sell used textbooks on campus",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.open(configPath)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.listCmd(),
		a.sellCmd(),
		a.deleteCmd(),
		a.toggleSoldCmd(),
		a.favCmd(),
		a.favsCmd(),
		a.contactCmd(),
		a.shellCmd(),
	)
	return root
}

func (a *app) open(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	a.market, err = exchange.Open(store, exchange.Options{
		KeyPrefix: cfg.KeyPrefix,
		Seed:      cfg.Seed,
		Logger:    a.log,
	})
	if err != nil {
		store.Close()
		return err
	}
	return nil
}

func (a *app) close() error {
	if a.market == nil {
		return nil
	}
	err := a.market.Close()
	a.market = nil
	return err
}

func openStore(cfg *config.Config) (exchange.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return exchange.NewRedisStore(cfg.RedisURL, cfg.RedisTimeout)
	default:
		return exchange.NewSQLiteStore(cfg.DBPath)
	}
}

// readLine prints prompt and returns the next trimmed input line.
func (a *app) readLine(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// readPassword reads a password with masking when attached to a terminal,
// otherwise as a plain line.
func (a *app) readPassword(prompt string) (string, error) {
	if !a.interactive {
		line, ok := a.readLine(prompt)
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return line, nil
	}
	fmt.Fprint(a.out, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(a.out) // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

// requireSession returns the logged-in user or an error telling the user to
// log in first.
func (a *app) requireSession() (exchange.User, error) {
	u, ok := a.market.Session()
	if !ok {
		return exchange.User{}, fmt.Errorf("not logged in; run 'txbook login' first")
	}
	return u, nil
}

// resolveBook finds a listing by full id or unique id prefix.
func (a *app) resolveBook(ref string) (exchange.Book, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return exchange.Book{}, fmt.Errorf("listing id required")
	}
	if b, ok := a.market.Book(ref); ok {
		return b, nil
	}
	var found []exchange.Book
	for _, b := range a.market.Books() {
		if strings.HasPrefix(b.ID, ref) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return exchange.Book{}, fmt.Errorf("no listing with id %q", ref)
	case 1:
		return found[0], nil
	default:
		return exchange.Book{}, fmt.Errorf("id %q matches %d listings; use more characters", ref, len(found))
	}
}
