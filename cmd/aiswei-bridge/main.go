package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/prometheus/exporter-toolkit/web"
	webflag "github.com/prometheus/exporter-toolkit/web/kingpinflag"

	"aiswei_bridge/internal/api"
	"aiswei_bridge/internal/bridge"
	"aiswei_bridge/internal/collector"
	"aiswei_bridge/internal/config"
)

const appName = "aiswei_bridge"

func main() {
	app := kingpin.New("aiswei-bridge", "AISWEI/Solplanet Pro cloud API client and home automation bridge.")
	app.Version(version.Print(appName))
	app.HelpFlag.Short('h')

	configFile := app.Flag("config", "Path to a YAML config file.").Envar("AISWEI_CONFIG").String()
	webConfig := webflag.AddFlags(app, ":9808")

	liveCmd := app.Command("live", "Print the normalized live telemetry as one JSON object.").Default()
	callCmd := app.Command("call", "Call one API operation and print the reply.")
	callOp := callCmd.Arg("operation", "Operation name, see 'list'.").Required().String()
	callParams := callCmd.Flag("param", "Extra query parameter as key=value (repeatable).").Short('p').Strings()
	listCmd := app.Command("list", "List the API operations.")
	allCmd := app.Command("all", "Call every API operation in catalog order.")
	serveCmd := app.Command("serve", "Serve live telemetry as Prometheus metrics.")

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if cmd == listCmd.FullCommand() {
		printCatalog(os.Stdout)
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Error("Invalid config", "error", err)
		_ = bridge.WriteError(os.Stdout, err, time.Now())
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	client := api.NewClient(cfg.BaseURL, cfg.Credentials(), cfg.RequestTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code int
	switch cmd {
	case liveCmd.FullCommand():
		code = runLive(ctx, client, logger)
	case callCmd.FullCommand():
		code = runCall(ctx, client, *callOp, *callParams)
	case allCmd.FullCommand():
		code = runAll(ctx, client)
	case serveCmd.FullCommand():
		code = runServe(ctx, cfg, client, webConfig, logger)
	}

	stop()
	os.Exit(code)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runLive emits the automation platform record.
func runLive(ctx context.Context, client *api.Client, logger *slog.Logger) int {
	now := time.Now()
	if err := bridge.Run(ctx, client, os.Stdout, now, logger); err != nil {
		logger.Error("Live telemetry failed", "error", err)
		_ = bridge.WriteError(os.Stdout, err, now)
		return 1
	}
	return 0
}

// runCall prints the decoded reply, or the error object on failure.
func runCall(ctx context.Context, client *api.Client, name string, raw []string) int {
	params, err := parseParams(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if _, ok := api.Lookup(name); !ok {
		fmt.Fprintf(os.Stderr, "unknown operation %q, see 'aiswei-bridge list'\n", name)
		return 2
	}

	resp, err := client.Call(ctx, name, params...)
	if err != nil {
		printJSON(os.Stdout, errorDocument(err))
		return 1
	}
	printJSON(os.Stdout, resp)
	return 0
}

// runAll calls every catalog operation, printing each reply under a header.
func runAll(ctx context.Context, client *api.Client) int {
	for _, op := range api.Operations() {
		fmt.Fprintf(os.Stdout, "\n=== %s %s ===\n", op.Section, op.Name)

		resp, err := client.Call(ctx, op.Name)
		if err != nil {
			printJSON(os.Stdout, errorDocument(err))
			continue
		}
		printJSON(os.Stdout, resp)
	}
	return 0
}

func runServe(ctx context.Context, cfg *config.Config, client *api.Client, webConfig *web.FlagConfig, logger *slog.Logger) int {
	logger.Info("Starting AISWEI exporter", "version", version.Info())

	prometheus.MustRegister(collector.NewAisweiCollector(client, cfg.RequestTimeout, cfg.MinScrapeInterval, logger))
	prometheus.MustRegister(versioncollector.NewCollector(appName))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)

	landing, err := web.NewLandingPage(web.LandingConfig{
		Name:        "AISWEI Exporter",
		Description: "Prometheus exporter for AISWEI/Solplanet inverters",
		Version:     version.Info(),
		Links: []web.LandingLinks{
			{Address: "/metrics", Text: "Metrics"},
			{Address: "/health", Text: "Health"},
		},
	})
	if err != nil {
		logger.Error("Failed to create landing page", "error", err)
		return 1
	}
	mux.Handle("/", landing)

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- web.ListenAndServe(srv, webConfig, logger)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
		return 1
	}

	logger.Info("Exporter stopped")
	return 0
}

// parseParams splits key=value arguments in the order given.
func parseParams(raw []string) ([]api.Param, error) {
	params := make([]api.Param, 0, len(raw))
	for _, r := range raw {
		k, v, ok := strings.Cut(r, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", r)
		}
		params = append(params, api.Param{Key: k, Value: v})
	}
	return params, nil
}

func errorDocument(err error) map[string]any {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Document()
	}
	return map[string]any{"error": err.Error()}
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "{\"error\": %q}\n", err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}

func printCatalog(w io.Writer) {
	for _, op := range api.Operations() {
		note := ""
		if op.Create {
			note = " (create)"
		}
		if op.Requires != "" {
			note += " requires " + op.Requires
		}
		fmt.Fprintf(w, "%-5s %-28s %s%s\n", op.Section, op.Name, op.Path, note)
	}
}

// setupLogger creates a structured logger based on configuration.
// Logs go to stderr; stdout carries the JSON output.
func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// healthHandler responds to health check requests.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}
