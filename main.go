package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/fieldtally/cliparse"
	"github.com/danielhkuo/fieldtally/db"
	"github.com/danielhkuo/fieldtally/engine"
	"github.com/danielhkuo/fieldtally/handlers"
	"github.com/danielhkuo/fieldtally/remote"
	"github.com/danielhkuo/fieldtally/router"
	"github.com/danielhkuo/fieldtally/store"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the local capture database (sqlite by default, postgres optional)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := store.New(dbConn)

	// Stable device identity: the "per device" half of the at-most-once
	// submission guarantee
	deviceID, err := st.EnsureDeviceID(time.Now())
	if err != nil {
		slog.Error("device identity failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Device identity ready", "device_id", deviceID)

	// Remote collaborators
	ocr := remote.NewOCRClient(cfg.OCRURL)
	submitter := remote.NewSubmitClient(cfg.SubmitURL)
	var source handlers.CandidateLister
	if cfg.CandidatesURL != "" {
		source = remote.NewCandidateClient(cfg.CandidatesURL)
	}

	eng := engine.New(st, ocr, submitter, deviceID)

	// Create router
	mux := router.NewRouter(st, eng, source, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
