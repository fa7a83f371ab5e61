package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"yatube/app/config"
	"yatube/app/logger"
	"yatube/mvc"
)

const cliVersion = "1.0.0"

var errUsage = errors.New("no command given")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) < 1 {
		printHelp(out)
		return errUsage
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help", "-h", "--help":
		printHelp(out)
		return nil
	case "version":
		fmt.Fprintf(out, "yatube version %s\n", cliVersion)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	cli := mvc.IO{In: in, Out: out}
	switch cmd {
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return mvc.Serve(ctx, cfg)
	case "group":
		return mvc.Group(cfg, args[1:], cli)
	case "user":
		return mvc.User(cfg, args[1:], cli)
	case "backup":
		return mvc.Backup(cfg, args[1:], cli)
	case "restore":
		return mvc.Restore(cfg, args[1:], cli)
	case "clean":
		return mvc.Clean(cfg, args[1:], cli)
	default:
		printHelp(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printHelp(out io.Writer) {
	helpText := `Usage: yatube <command> [options]

Commands:
  serve                                        Run the blog web server.
  group add --slug <slug> --title <title> [--description <text>]
                                               Create a group.
  group list                                   List groups.
  user add --username <name> --password <pw> [--first-name, --last-name, --email]
                                               Create an account.
  backup [file]                                Back up the badger database.
  restore [--yes] <file>                       Restore the badger database from a backup.
  clean [--yes]                                Remove the badger database.
  version                                      Show version information.
  help                                         Display this help message.

Environment:
  PORT, DB_DRIVER (badger|mysql), DATABASE_PATH, DATABASE_DSN,
  SESSION_SECRET, SECURE_COOKIES, LOG_LEVEL, LOG_FORMAT (console|json)
`
	fmt.Fprint(out, helpText)
}
