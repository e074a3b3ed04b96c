package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hollyoak/plateful/internal/cli"
	"github.com/hollyoak/plateful/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "reset-password":
		runResetPassword(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runResetPassword(args []string) {
	defaultDriver, defaultDSN := databaseTargetFromEnv()

	flags := flag.NewFlagSet("reset-password", flag.ExitOnError)
	email := flags.String("email", "", "email address of the account to reset")
	manual := flags.Bool("manual", false, "type the temporary password instead of generating one")
	driver := flags.String("db-driver", defaultDriver, "database driver (sqlite or postgres)")
	dsn := flags.String("db", defaultDSN, "database path (sqlite) or connection string (postgres)")
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}

	if err := cli.RunResetPasswordCommand(*driver, *dsn, *email, *manual); err != nil {
		log.Fatalf("reset-password: %v", err)
	}
}

// databaseTargetFromEnv mirrors the server's database configuration so the
// admin tool reaches the same database without extra flags.
func databaseTargetFromEnv() (string, string) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = db.DriverSQLite
	}
	if driver == db.DriverPostgres {
		return driver, os.Getenv("DB_DSN")
	}
	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = filepath.Join("data", "plateful.db")
	}
	return driver, dsn
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: platefulctl <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  reset-password --email <address> [--manual] [--db <path>] [--db-driver <name>]")
	fmt.Fprintln(os.Stderr, "        reset an account password and force a change on next login")
}
