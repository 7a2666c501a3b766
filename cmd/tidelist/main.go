// ABOUTME: Entry point for the tidelist todo server
// ABOUTME: Provides serve, init, and health subcommands

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"

	"github.com/redquill/tidelist/internal/config"
	"github.com/redquill/tidelist/internal/store"
	"github.com/redquill/tidelist/internal/web"
)

// Version is set at build time.
var version = "dev"

const banner = `
 _   _     _      _ _     _
| |_(_) __| | ___| (_)___| |_
| __| |/ _' |/ _ \ | / __| __|
| |_| | (_| |  __/ | \__ \ |_
 \__|_|\__,_|\___|_|_|___/\__|
`

// getConfigPath returns the path to the config file.
// Priority: TIDELIST_CONFIG env var > ./tidelist.yaml
func getConfigPath() string {
	if envPath := os.Getenv("TIDELIST_CONFIG"); envPath != "" {
		return envPath
	}
	return "tidelist.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tidelist <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the todo server")
		fmt.Println("  init     Write a default config file")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	cyan.Print(banner)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green.Print("    ▶ ")
	fmt.Printf("HTTP:  %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Redis: %s db=%d\n", cfg.Redis.Addr(), cfg.Redis.DB)
	fmt.Println()

	logger.Info("starting tidelist",
		"http_addr", cfg.Server.HTTPAddr,
		"redis_addr", cfg.Redis.Addr(),
		"redis_db", cfg.Redis.DB,
	)

	kv := store.NewRedisKV(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB, cfg.Redis.DialTimeout)
	todos := store.NewTodoStore(kv, logger)
	defer todos.Close()

	if !todos.HealthCheck(ctx) {
		logger.Warn("redis not reachable at startup, continuing anyway", "addr", cfg.Redis.Addr())
	}

	server := web.New(cfg, todos, logger)
	return server.Run(ctx)
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	content := `# tidelist configuration
# Generated by tidelist init

server:
  http_addr: "0.0.0.0:8080"

redis:
  host: "localhost"
  port: 6379
  db: 0
  dial_timeout: "5s"

logging:
  level: "info"
  format: "text"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Config written to %s\n", configPath)
	fmt.Println("\nTo start the server:")
	fmt.Println("  tidelist serve")
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
		Store  bool   `json:"store"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d, store reachable: %t", resp.StatusCode, health.Store)
	}

	fmt.Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = &colorHandler{level: level}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu    sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{level: h.level, attrs: newAttrs}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	// Groups are not used by this codebase; attrs keep their plain keys.
	return h
}
