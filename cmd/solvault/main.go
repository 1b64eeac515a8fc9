package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fantasim/solvault/internal/api"
	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/db"
	"github.com/Fantasim/solvault/internal/logging"
	"github.com/Fantasim/solvault/internal/wallet"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(); err != nil {
			slog.Error("init error", "error", err)
			os.Exit(1)
		}
	case "export":
		if err := runExport(); err != nil {
			slog.Error("export error", "error", err)
			os.Exit(1)
		}
	case "derive":
		if err := runDerive(); err != nil {
			slog.Error("derive error", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("solvault %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: solvault <command>

Commands:
  serve     Start the HTTP server
  init      Derive Solana accounts from the mnemonic and store in DB
  export    Export derived accounts to a JSON file
  derive    Derive a single address for an arbitrary hardened path
  version   Print version information
`)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("starting solvault",
		"version", version,
		"network", cfg.Network,
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"logLevel", cfg.LogLevel,
	)

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	slog.Info("database opened", "path", cfg.DBPath)

	if err := database.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations applied")

	// Keyring reads the mnemonic file on demand; the server never holds
	// seed material between requests. MnemonicFile may be empty, in which
	// case /api/derive returns 503 and the stored-account routes still work.
	keyring := wallet.NewKeyring(cfg.MnemonicFile)

	api.Version = version
	router := api.NewRouter(database, cfg, keyring)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    config.ServerReadTimeout,
		WriteTimeout:   config.ServerWriteTimeout,
		IdleTimeout:    config.ServerIdleTimeout,
		MaxHeaderBytes: config.ServerMaxHeaderBytes,
	}

	slog.Info("server configured",
		"readTimeout", config.ServerReadTimeout,
		"writeTimeout", config.ServerWriteTimeout,
		"idleTimeout", config.ServerIdleTimeout,
		"maxHeaderBytes", config.ServerMaxHeaderBytes,
	)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("initiating graceful shutdown", "timeout", config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func runInit() error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	mnemonicFile := fs.String("mnemonic-file", "", "Path to file containing BIP-39 mnemonic (required)")
	dbPath := fs.String("db", "", "Database path (default: from SOLVAULT_DB_PATH or ./data/solvault.sqlite)")
	count := fs.Int("count", 0, "Number of accounts to derive (default: from SOLVAULT_ACCOUNT_COUNT)")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	// Override config with flags if provided.
	if *mnemonicFile != "" {
		cfg.MnemonicFile = *mnemonicFile
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *count > 0 {
		cfg.AccountCount = *count
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.MnemonicFile == "" {
		return fmt.Errorf("--mnemonic-file is required (or set SOLVAULT_MNEMONIC_FILE)")
	}

	slog.Info("starting account initialization",
		"mnemonicFile", cfg.MnemonicFile,
		"dbPath", cfg.DBPath,
		"network", cfg.Network,
		"count", cfg.AccountCount,
	)

	mnemonic, err := wallet.ReadMnemonicFromFile(cfg.MnemonicFile)
	if err != nil {
		return fmt.Errorf("read mnemonic: %w", err)
	}

	seed, err := wallet.MnemonicToSeed(mnemonic)
	if err != nil {
		return fmt.Errorf("derive seed: %w", err)
	}
	defer wallet.Wipe(seed)

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	existing, err := database.CountAccounts()
	if err != nil {
		return fmt.Errorf("count existing accounts: %w", err)
	}

	if existing == cfg.AccountCount {
		slog.Info("accounts already exist, skipping", "count", existing)
		return nil
	}

	if existing > 0 && existing != cfg.AccountCount {
		slog.Warn("partial account set detected, regenerating",
			"existing", existing,
			"expected", cfg.AccountCount,
		)
		if err := database.DeleteAccounts(); err != nil {
			return fmt.Errorf("delete partial accounts: %w", err)
		}
	}

	progress := func(generated int, total int) {
		slog.Info("account derivation progress",
			"generated", generated,
			"total", total,
			"progress", fmt.Sprintf("%.1f%%", float64(generated)/float64(total)*100),
		)
	}

	start := time.Now()

	accounts, err := wallet.GenerateAccounts(seed, cfg.AccountCount, progress)
	if err != nil {
		return fmt.Errorf("generate accounts: %w", err)
	}

	if err := database.InsertAccountBatch(accounts); err != nil {
		return fmt.Errorf("insert accounts: %w", err)
	}

	slog.Info("account initialization complete",
		"count", len(accounts),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	// Auto-export after generation.
	slog.Info("exporting accounts to JSON")
	if err := wallet.ExportAccounts(database, cfg.Network, ""); err != nil {
		slog.Error("export failed", "error", err)
	}

	return nil
}

func runExport() error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	outputDir := fs.String("output", "", "Output directory (default: "+wallet.ExportDir+")")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := wallet.ExportAccounts(database, cfg.Network, *outputDir); err != nil {
		return fmt.Errorf("export accounts: %w", err)
	}

	return nil
}

func runDerive() error {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	path := fs.String("path", "", "Hardened derivation path, e.g. m/44'/501'/0'/0' (required)")
	mnemonicFile := fs.String("mnemonic-file", "", "Path to file containing BIP-39 mnemonic (default: from SOLVAULT_MNEMONIC_FILE)")
	fs.Parse(os.Args[2:])

	if *path == "" {
		return fmt.Errorf("--path is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *mnemonicFile != "" {
		cfg.MnemonicFile = *mnemonicFile
	}
	if cfg.MnemonicFile == "" {
		return fmt.Errorf("--mnemonic-file is required (or set SOLVAULT_MNEMONIC_FILE)")
	}

	keyring := wallet.NewKeyring(cfg.MnemonicFile)
	addr, err := keyring.DeriveAddress(context.Background(), *path)
	if err != nil {
		return fmt.Errorf("derive address: %w", err)
	}

	fmt.Printf("%s  %s\n", *path, addr)
	return nil
}
