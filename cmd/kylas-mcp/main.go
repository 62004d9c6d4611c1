package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/tools"
)

// serverConfig is the optional YAML config file. Everything in it can also be
// supplied through flags and KYLAS_* environment variables.
type serverConfig struct {
	Kylas  *kylas.Config `yaml:"kylas"`
	Listen string        `yaml:"listen"`
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	httpAddr := flag.String("http", "", "Serve MCP over streamable HTTP on this address (e.g. :8080) instead of stdio")
	readOnly := flag.Bool("read-only", false, "Disable the lead write tools (create_lead, update_lead)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// stdout belongs to the stdio transport; all logging goes to stderr.
	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	listen := *httpAddr
	if listen == "" {
		listen = cfg.Listen
	}

	kcfg := kylas.ApplyEnvDefaults(cfg.Kylas)
	if kcfg.APIKey == "" {
		log.Warn().Msg("KYLAS_API_KEY is not set; tool calls will fail until it is provided")
	}
	client := kylas.NewClient(kcfg, log.With().Str("component", "kylas").Logger())
	toolset := tools.NewToolset(client, log.With().Str("component", "tools").Logger())
	registry := toolset.NewRegistry()
	policy := tools.AllowAllPolicy()
	if *readOnly {
		policy = tools.ReadOnlyPolicy(registry)
	}
	executor := tools.NewExecutor(registry, policy, log.With().Str("component", "executor").Logger())
	server := tools.NewMCPServer(executor, log.With().Str("component", "mcp").Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if listen != "" {
		log.Info().Str("addr", listen).Bool("read_only", *readOnly).Msg("Serving MCP over HTTP")
		if err := runHTTP(ctx, listen, tools.HTTPHandler(server)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}
	log.Info().Str("server", tools.ServerName).Str("version", tools.ServerVersion).Bool("read_only", *readOnly).Msg("Serving MCP over stdio")
	if err := tools.RunStdio(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("MCP server exited")
	}
}

func loadConfig(path string) (*serverConfig, error) {
	cfg := &serverConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func runHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
