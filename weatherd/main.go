package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cgxeiji/weather"
	"github.com/cgxeiji/weather/internal/config"
	"github.com/cgxeiji/weather/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "weatherd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	addr := uint16(cfg.Addr)
	pflag.StringVarP(&cfg.Bus, "bus", "b", cfg.Bus, "I²C bus name, empty selects the first bus")
	pflag.Uint16VarP(&addr, "addr", "a", addr, "I²C address of the TMP102")
	pflag.IntVarP(&cfg.Window, "window", "w", cfg.Window, "number of samples averaged")
	pflag.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "polling interval")
	pflag.StringVar(&cfg.MetricsListen, "metrics", cfg.MetricsListen, "address to serve metrics on")
	debug := pflag.Bool("debug", false, "log every sample")
	pflag.Parse()

	logger, err := newLogger(cfg, *debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	data, err := weather.NewRollingAverage(weather.Size(cfg.Window))
	if err != nil {
		return err
	}

	station, err := weather.NewStation(
		weather.OnBus(cfg.Bus),
		weather.OnAddr(addr),
		weather.Every(cfg.Interval),
		weather.WithDataset(data),
		weather.WithLogger(logger.Named("station")),
	)
	if err != nil {
		return err
	}
	defer station.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("polling sensor",
			zap.Stringer("addr", config.Address(addr)),
			zap.Int("window", cfg.Window),
			zap.Duration("interval", cfg.Interval),
		)
		err := station.Run(ctx, func(r weather.Reading) {
			m.Observe(r)
			if r.Err == nil {
				fmt.Printf("\rtemp = %s ", weather.Celsius(r.Average))
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{
			Addr:         cfg.MetricsListen,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			logger.Info("serving metrics", zap.String("addr", cfg.MetricsListen))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	fmt.Println()
	logger.Info("stopped")
	return err
}

func newLogger(cfg config.Config, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	level := cfg.LogLevel
	if debug {
		level = zap.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}

	return zcfg.Build()
}
