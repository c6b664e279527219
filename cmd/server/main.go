// Package main initializes and starts the teller HTTP server, setting up
// configuration, logging, the optional Postgres sinks, the bank directory,
// the session machine and the HTTP presentation adapter.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atmlab/teller/internal/bank"
	"github.com/atmlab/teller/internal/config"
	"github.com/atmlab/teller/internal/crypto"
	"github.com/atmlab/teller/internal/db"
	"github.com/atmlab/teller/internal/logger"
	"github.com/atmlab/teller/internal/repository"
	"github.com/atmlab/teller/internal/server/handler/http"
	"github.com/atmlab/teller/internal/session"
)

// bankCapacity is the fixed maximum number of accounts the directory holds.
const bankCapacity = 10

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log, err := logger.New(options.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// The directory of accounts the session machine drives.
	directory := bank.New(bankCapacity, log)

	// Wire the optional persistence and audit sinks.
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			log.Fatal("cannot init database", zap.Error(err))
		}

		aead, err := crypto.NewAEADFromSecret(options.Secret)
		if err != nil {
			log.Fatal("cannot init password obfuscation", zap.Error(err))
		}

		accountRepo := repository.NewPostgresAccountRepository(postgresDB, aead)
		txRepo := repository.NewPostgresTransactionRepository(postgresDB)
		directory.AttachSinks(accountRepo, txRepo)

		// Prune audit lines past retention.
		db.StartAuditCleaner(context.Background(), postgresDB,
			time.Hour,       // interval
			30*24*time.Hour, // retention: 30 days
			log,
		)
	}

	if options.Seed {
		seedDemoAccounts(directory, log)
	}

	// The keypad session machine behind the HTTP adapter.
	atm := session.New(directory, log)
	atmHandler := &http.ATMHandler{Session: atm}

	// Build the router with middleware and routes.
	router := http.NewRouter(atmHandler, log)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	log.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// seedDemoAccounts adds the well-known teaching accounts.
func seedDemoAccounts(directory *bank.Bank, log *zap.Logger) {
	demo := []*bank.Account{
		bank.NewAccount("00000", "00000", bank.Student, 0),
		bank.NewAccount("11111", "11111", bank.Gold, 0),
		bank.NewAccount("22222", "22222", bank.Platinum, 0),
		bank.NewAccount("00001", "00001", bank.Student, 100),
		bank.NewAccount("00002", "00002", bank.Gold, 200),
		bank.NewAccount("00003", "00003", bank.Platinum, 300),
	}
	for _, a := range demo {
		if err := directory.Add(a); err != nil {
			log.Warn("failed to seed account", zap.String("number", a.Number()), zap.Error(err))
		}
	}
}
