package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zhokingg/abt-un-sub002/internal/assets"
	"github.com/zhokingg/abt-un-sub002/internal/config"
	"github.com/zhokingg/abt-un-sub002/internal/dash"
	"github.com/zhokingg/abt-un-sub002/internal/engine"
	"github.com/zhokingg/abt-un-sub002/internal/feed"
	"github.com/zhokingg/abt-un-sub002/internal/graph"
	"github.com/zhokingg/abt-un-sub002/internal/metrics"
	"github.com/zhokingg/abt-un-sub002/internal/oracle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	return cfg.Build()
}

func parseFlags() (cfgPath string, once bool) {
	c := flag.String("config", "./config.yaml", "path to config file")
	o := flag.Bool("once", false, "run a single analysis pass and exit")
	flag.Parse()
	return *c, *o
}

func main() {
	cfgPath, once := parseFlags()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Warn("received signal, shutting down...")
		cancel()
	}()

	metrics.Serve(ctx, cfg.Metrics.ListenAddr, nil, logger)

	descs, err := assets.FromConfig(cfg.Assets)
	if err != nil {
		logger.Fatal("invalid asset configuration", zap.Error(err))
	}

	if cfg.Oracle.RestURL == "" {
		logger.Fatal("oracle.rest_url is not configured")
	}
	liq := oracle.NewRestOracle(cfg.Oracle.RestURL, logger)

	var gas oracle.GasOracle
	if cfg.Chain.RPCHTTP != "" {
		g, err := oracle.NewChainGasOracle(cfg.Chain.RPCHTTP, cfg.Chain.GasPriceGwei, logger)
		if err != nil {
			logger.Fatal("failed to initialize gas oracle", zap.Error(err))
		}
		gas = g
	} else {
		logger.Warn("no RPC endpoint configured; using fixed gas price",
			zap.Float64("gwei", cfg.Chain.GasPriceGwei))
		gas = oracle.FixedGasOracle{Gwei: cfg.Chain.GasPriceGwei}
	}

	builder := graph.NewBuilder(liq, graph.BuilderOptions{
		MinLiquidityUSD: cfg.Graph.MinLiquidityUSD,
		Concurrency:     cfg.Oracle.Concurrency,
		OracleTimeout:   cfg.OracleTimeout(),
	}, logger)
	cache := graph.NewCache(builder, cfg.CacheValidity())

	eng := engine.New(cfg, descs, cache, gas, logger)

	store := dash.NewStore()
	dash.Serve(ctx, cfg.Dash.ListenAddr, store, logger)

	var pub *feed.Publisher
	if cfg.DryRun {
		logger.Warn("DRY-RUN: opportunities will be logged, not published")
	} else if cfg.Redis.Addr != "" {
		pub = feed.NewPublisher(cfg)
		defer pub.Close()
	}

	logger.Info("scanner started",
		zap.Int("assets", len(descs)),
		zap.Strings("seeds", cfg.Seeds),
		zap.Bool("dry_run", cfg.DryRun),
		zap.Duration("interval", cfg.ScanInterval()))

	runPass := func() {
		rep, err := eng.Analyze(ctx, cfg.Seeds)
		if err != nil {
			logger.Error("analysis pass failed", zap.Error(err))
			return
		}
		store.Update(rep)
		if pub != nil {
			if err := pub.PublishReport(ctx, rep); err != nil {
				logger.Warn("failed to publish report", zap.Error(err))
			}
		}
		for _, o := range rep.Opportunities {
			if !o.Viable {
				continue
			}
			fields := []zap.Field{
				zap.Strings("path", o.Path),
				zap.Float64("weight", o.Weight),
				zap.Float64("risk_score", o.Risk.Score),
				zap.String("recommendation", string(o.Risk.Recommendation)),
				zap.Float64("adjusted_score", o.AdjustedScore),
			}
			if o.Sizing != nil {
				fields = append(fields,
					zap.Float64("optimal_size_usd", o.Sizing.OptimalSizeUSD),
					zap.Float64("net_profit_usd", o.Sizing.ExpectedNetProfitUSD))
			}
			logger.Info("opportunity", fields...)
		}
	}

	runPass()
	if once {
		return
	}

	t := time.NewTicker(cfg.ScanInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scanner stopped")
			return
		case <-t.C:
			runPass()
		}
	}
}
