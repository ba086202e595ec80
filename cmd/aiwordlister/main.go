// Command aiwordlister expands a seed list of subdomains or URLs into a
// larger wordlist by asking text-generation providers for more candidates.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/ai-wordlister/internal/transport"
	"github.com/Sternrassler/ai-wordlister/pkg/cache"
	"github.com/Sternrassler/ai-wordlister/pkg/config"
	"github.com/Sternrassler/ai-wordlister/pkg/logging"
	"github.com/Sternrassler/ai-wordlister/pkg/metrics"
	"github.com/Sternrassler/ai-wordlister/pkg/orchestrator"
	"github.com/Sternrassler/ai-wordlister/pkg/provider"
	"github.com/Sternrassler/ai-wordlister/pkg/sink"
)

// Exit codes.
const (
	exitOK      = 0
	exitPartial = 1
	exitConfig  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	input       string
	configPath  string
	batchSize   int
	output      string
	prompt      string
	directory   bool
	subdomain   bool
	disableSSL  bool
	threads     int
	timeout     time.Duration
	redisAddr   string
	logLevel    string
	metricsFile string

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("aiwordlister", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.input, "f", "", "Input file with domains or URLs, one per line (required)")
	fs.StringVar(&o.configPath, "c", "", "Config file (JSON or YAML) with API keys (required)")
	fs.IntVar(&o.batchSize, "b", config.DefaultBatchSize, "Batch size")
	fs.StringVar(&o.output, "o", "", "Output file, or redis:<key> to push onto a Redis list")
	fs.StringVar(&o.prompt, "p", "", "Custom prompt; {batch_size} is replaced by the batch length")
	fs.BoolVar(&o.directory, "d", false, "Directory mode: generate directory paths from URLs")
	fs.BoolVar(&o.subdomain, "s", false, "Subdomain mode (default)")
	fs.BoolVar(&o.disableSSL, "disable_ssl", false, "Disable TLS certificate verification")
	fs.IntVar(&o.threads, "t", config.DefaultMaxConcurrency, "Max concurrent requests (0 = unbounded)")
	fs.DurationVar(&o.timeout, "timeout", config.DefaultCallTimeout, "Timeout per provider call")
	fs.StringVar(&o.redisAddr, "redis", "", "Redis address for the response cache")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.input == "" || o.configPath == "" {
		return nil, errors.New("input file (-f) and config (-c) are required")
	}
	if o.directory && o.subdomain {
		return nil, errors.New("-d and -s are mutually exclusive")
	}
	return o, nil
}

// apply overlays explicitly set flags on cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["b"] {
		cfg.BatchSize = o.batchSize
	}
	if o.set["o"] {
		cfg.Output = o.output
	}
	if o.set["p"] {
		cfg.Prompt = o.prompt
	}
	if o.directory {
		cfg.Mode = config.ModeDirectory
	}
	if o.subdomain {
		cfg.Mode = config.ModeSubdomain
	}
	if o.disableSSL {
		cfg.VerifyTransport = false
	}
	if o.set["t"] {
		cfg.MaxConcurrency = o.threads
	}
	if o.set["timeout"] {
		cfg.CallTimeout = o.timeout
	}
	if o.set["redis"] {
		cfg.RedisAddr = o.redisAddr
	}
	if o.set["log-level"] {
		cfg.LogLevel = o.logLevel
	}
	if o.set["metrics-file"] {
		cfg.MetricsFile = o.metricsFile
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitConfig
	}

	logging.Setup(logging.Config{Level: logging.LevelInfo, Output: stderr})
	logger := logging.NewLogger(logging.ComponentCLI)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config")
		return exitConfig
	}
	opts.apply(&cfg)

	logging.Setup(logging.Config{Level: logging.LogLevel(cfg.LogLevel), Output: stderr})
	logger = logging.NewLogger(logging.ComponentCLI)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return exitConfig
	}

	entries, err := readEntries(opts.input)
	if err != nil {
		logger.Error().Err(err).Str("file", opts.input).Msg("Failed to read input")
		return exitConfig
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
			return exitConfig
		}
		defer rdb.Close()
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	}

	providers := provider.Configured(cfg.Credentials(), provider.Options{
		HTTPClient: transport.NewHTTPClient(cfg.VerifyTransport),
		Timeout:    cfg.CallTimeout,
		Logger:     logging.NewLogger(logging.ComponentProvider),
		Endpoints:  cfg.Endpoints(),
	})
	if rdb != nil && cfg.CacheTTL > 0 {
		providers = withCache(providers, rdb, cfg.CacheTTL, logging.NewLogger(logging.ComponentCache))
	}

	out, err := openSink(cfg.Output, rdb, stdout, logging.NewLogger(logging.ComponentSink))
	if err != nil {
		logger.Error().Err(err).Str("output", cfg.Output).Msg("Failed to open output")
		return exitConfig
	}

	orch := orchestrator.New(providers, out, orchestrator.Config{
		BatchSize:      cfg.BatchSize,
		Template:       cfg.Template(),
		MaxConcurrency: cfg.MaxConcurrency,
	}, logging.NewLogger(logging.ComponentOrchestrator))

	report, runErr := orch.Run(ctx, entries)

	if err := out.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close output")
	}
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn().Err(err).Str("file", cfg.MetricsFile).Msg("Failed to write metrics file")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("Run aborted")
		return exitConfig
	}

	logReport(logger, report)
	if report.Status() != orchestrator.StatusSucceeded {
		return exitPartial
	}
	return exitOK
}

// readEntries returns the trimmed, non-empty lines of path.
func readEntries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func connectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func withCache(providers []provider.Provider, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) []provider.Provider {
	manager := cache.NewManager(rdb)
	out := make([]provider.Provider, len(providers))
	for i, p := range providers {
		out[i] = cache.Wrap(p, manager, ttl, logger)
	}
	return out
}

// openSink resolves the output destination. Without one, generated lines
// are echoed to stdout.
func openSink(dest string, rdb *redis.Client, stdout io.Writer, logger zerolog.Logger) (sink.Sink, error) {
	if dest == "" {
		return sink.NewConsole(stdout), nil
	}
	return sink.Open(dest, rdb, logger)
}

func logReport(logger zerolog.Logger, report *orchestrator.Report) {
	for _, o := range report.Failed() {
		logger.Warn().
			Int("batch", o.BatchIndex).
			Str("provider", o.Provider).
			Str("kind", o.Kind()).
			Err(o.Err).
			Msg("Batch failed")
	}

	logger.Info().
		Str("run_id", report.RunID).
		Str("status", string(report.Status())).
		Int("batches", len(report.Outcomes)).
		Int("failed", len(report.Failed())).
		Int("lines", report.Lines()).
		Dur("duration", report.Duration).
		Msg("Generated entries")
}
