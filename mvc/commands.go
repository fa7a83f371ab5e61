package mvc

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"yatube/app/auth"
	"yatube/app/config"
	"yatube/app/repositories"
	"yatube/app/routes"
	"yatube/app/services"
	"yatube/app/views"
)

const (
	backupDir       = "data/backups"
	shutdownTimeout = 5 * time.Second
)

var errBadgerOnly = errors.New("this command works on the badger store only (DB_DRIVER=badger)")

// IO is where commands read confirmations from and write results to.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// OpenStore opens the store selected by cfg.DBDriver.
func OpenStore(cfg *config.Config) (*repositories.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		db, err := repositories.OpenMySQL(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repositories.NewGormStore(db), nil
	default:
		db, err := openBadger(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return repositories.NewBadgerStore(db), nil
	}
}

func openBadger(path string) (*badger.DB, error) {
	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return repositories.OpenBadger(path)
}

// Serve runs the blog until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config) error {
	store, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	templates, err := views.Load()
	if err != nil {
		return err
	}
	if cfg.UsingDevSecret() {
		log.Warn().Msg("SESSION_SECRET is not set; using the development secret")
	}
	sessions := auth.NewSessions(cfg.SessionSecret).WithSecureCookie(cfg.SecureCookies)

	srv := routes.NewServer(cfg.Addr(), routes.SetupMVCRoutes(store, sessions, templates))

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.DBDriver).Msg("Starting yatube")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server exiting")
	return nil
}

// Group handles "group add" and "group list".
func Group(cfg *config.Config, args []string, cli IO) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: yatube group <add|list>")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("group add", flag.ContinueOnError)
		fs.SetOutput(cli.Out)
		slug := fs.String("slug", "", "URL slug of the group (letters, digits, - and _)")
		title := fs.String("title", "", "display title")
		description := fs.String("description", "", "optional description")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *slug == "" || *title == "" {
			return fmt.Errorf("--slug and --title are required")
		}
		return withStore(cfg, func(store *repositories.Store) error {
			group, err := services.NewGroupService(store.Groups).CreateGroup(*slug, *title, *description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.Out, "Created group %q (id %d)\n", group.Slug, group.ID)
			return nil
		})
	case "list":
		return withStore(cfg, func(store *repositories.Store) error {
			groups, err := services.NewGroupService(store.Groups).ListGroups()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cli.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return tw.Flush()
		})
	default:
		return fmt.Errorf("unknown group command: %s", args[0])
	}
}

// User handles "user add".
func User(cfg *config.Config, args []string, cli IO) error {
	if len(args) < 1 || args[0] != "add" {
		return fmt.Errorf("usage: yatube user add --username <name> --password <password>")
	}
	fs := flag.NewFlagSet("user add", flag.ContinueOnError)
	fs.SetOutput(cli.Out)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("--username and --password are required")
	}
	return withStore(cfg, func(store *repositories.Store) error {
		user, err := services.NewUserService(store.Users).Register(services.Registration{
			Username:  *username,
			FirstName: *firstName,
			LastName:  *lastName,
			Email:     *email,
			Password:  *password,
		})
		if err != nil {
			return fmt.Errorf("failed to create user %q: %w", *username, err)
		}
		fmt.Fprintf(cli.Out, "Created user %q (id %d)\n", user.Username, user.ID)
		return nil
	})
}

// Backup writes a backup of the badger database to args[0], or to a
// timestamped file under data/backups.
func Backup(cfg *config.Config, args []string, cli IO) error {
	if cfg.DBDriver != config.DriverBadger {
		return errBadgerOnly
	}
	if _, err := os.Stat(cfg.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("no database exists to backup at %s", cfg.DatabasePath)
	}

	target := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	if len(args) > 0 {
		target = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := repositories.OpenBadger(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if err := repositories.Backup(db, f); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "Database backed up successfully to %s\n", target)
	return nil
}

// Restore replaces the badger database with the backup in args[0].
func Restore(cfg *config.Config, args []string, cli IO) error {
	if cfg.DBDriver != config.DriverBadger {
		return errBadgerOnly
	}
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(cli.Out)
	yes := fs.Bool("yes", false, "replace an existing database without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("backup file path required for restore")
	}
	backupFile := fs.Arg(0)

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	_, statErr := os.Stat(cfg.DatabasePath)
	exists := statErr == nil
	if exists && !*yes && !confirm(cli, "Existing database found. Do you want to replace it?") {
		fmt.Fprintln(cli.Out, "Operation cancelled")
		return nil
	}

	db, err := openBadger(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if exists {
		if err := repositories.Clear(db); err != nil {
			return fmt.Errorf("failed to clear existing database: %w", err)
		}
	}
	if err := repositories.Restore(db, f); err != nil {
		return err
	}
	fmt.Fprintln(cli.Out, "Database restored successfully")
	return nil
}

// Clean removes the badger database directory.
func Clean(cfg *config.Config, args []string, cli IO) error {
	if cfg.DBDriver != config.DriverBadger {
		return errBadgerOnly
	}
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(cli.Out)
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DatabasePath); os.IsNotExist(err) {
		fmt.Fprintln(cli.Out, "Database is already clean (does not exist)")
		return nil
	}
	if !*yes && !confirm(cli, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(cli.Out, "Operation cancelled")
		return nil
	}
	if err := os.RemoveAll(cfg.DatabasePath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(cli.Out, "Database cleaned successfully")
	return nil
}

func withStore(cfg *config.Config, fn func(*repositories.Store) error) error {
	store, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func confirm(cli IO, question string) bool {
	fmt.Fprintf(cli.Out, "%s [y/N] ", question)
	scanner := bufio.NewScanner(cli.In)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(scanner.Text())
	return answer == "y" || answer == "Y"
}
