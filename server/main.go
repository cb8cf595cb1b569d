package main

import (
	"context"
	"errors"
	"go-currency-converter/config"
	"go-currency-converter/convert"
	"go-currency-converter/http"
	"go-currency-converter/rates"
	"go-currency-converter/session"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load()
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allow(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ratesService rates.Service
	switch cfg.Rates.Provider {
	case config.ProviderRemote:
		ratesService = rates.NewRemoteService(cfg.Rates.BaseURL)
	default:
		ratesService = rates.NewStubService(rates.WithLatency(cfg.Rates.Latency), rates.WithSpread(cfg.Rates.Spread))
	}
	ratesService = rates.NewLoggingService(log.With(logger, "component", "rates_"+cfg.Rates.Provider), ratesService)
	ratesService = rates.NewInstrumentingService(ratesService)

	convertService := convert.NewService(ratesService)
	convertService = convert.NewLoggingService(log.With(logger, "component", "convert"), convertService)

	sessionConfig := session.Config{RefreshSeconds: cfg.Session.RefreshSeconds, Tick: cfg.Session.Tick}
	sessions := session.NewManager(ctx, ratesService, sessionConfig, log.With(logger, "component", "session"))
	defer sessions.Shutdown()

	rate, err := limiter.NewRateFromFormatted(cfg.Server.RateLimit)
	if err != nil {
		level.Error(logger).Log("msg", "parsing rate limit", "rate_limit", cfg.Server.RateLimit, "err", err)
		os.Exit(1)
	}
	apiLimiter := limiter.New(memory.NewStore(), rate)

	handler := http.NewServer(convertService, ratesService, sessions, apiLimiter, log.With(logger, "component", "http"))
	server := &nhttp.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "shutdown", "err", err)
		}
	}()

	level.Info(logger).Log("msg", "listening", "addr", cfg.Server.Addr, "env", cfg.Env, "provider", cfg.Rates.Provider)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
		level.Error(logger).Log("msg", "serving", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "stopped")
}

// allow maps a configured level name onto a go-kit level filter
func allow(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	}
	return level.AllowInfo()
}
