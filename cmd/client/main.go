package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/client"
	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "build-info" {
		printBuildInfo()
		return
	}

	log := logger.NewClientLogger("go-accounts-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		fatal(log, err, "error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		fatal(log, err, "create server adapter")
	}

	localStorage, err := store.NewClientStorages(log)
	if err != nil {
		fatal(log, err, "create local storage")
	}

	services := service.NewClientServices(localStorage, serverAdapter, log)
	app := client.NewApp(services, os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fatal reports err on the terminal too since the client logger writes to a
// file.
func fatal(log *logger.Logger, err error, msg string) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	log.Fatal().Err(err).Msg(msg)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
