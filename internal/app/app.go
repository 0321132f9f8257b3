package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orcamento/go_backend/internal/app/config"
	apphttp "orcamento/go_backend/internal/app/http"
	"orcamento/go_backend/internal/app/http/handlers"
	"orcamento/go_backend/internal/app/quoting"
	"orcamento/go_backend/internal/domain/quote"
	"orcamento/go_backend/internal/domain/quote/pdf"
	"orcamento/go_backend/internal/domain/quote/pdf/gofpdf"
	"orcamento/go_backend/internal/domain/quote/pdf/htmlpdf"
	"orcamento/go_backend/internal/infra/db/mysql"
	"orcamento/go_backend/internal/infra/db/postgres"
	"orcamento/go_backend/internal/infra/kv/redis"
)

// Run serves until SIGINT or SIGTERM. Anything opened before a startup
// failure is closed before the error is returned.
func Run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	seq, closeSeq, err := NewSequence(ctx, cfg.Sequence)
	if err != nil {
		logger.Error("sequence", zap.String("backend", cfg.Sequence.Backend), zap.Error(err))
		return fmt.Errorf("sequence %s: %w", cfg.Sequence.Backend, err)
	}
	closers = append(closers, closeSeq)

	gen, closeGen, err := NewGenerator(cfg, logger)
	if err != nil {
		logger.Error("renderer", zap.String("engine", cfg.Renderer.Engine), zap.Error(err))
		return fmt.Errorf("renderer %s: %w", cfg.Renderer.Engine, err)
	}
	closers = append(closers, closeGen)

	builder := quote.NewBuilder(quote.NewNumberer(cfg.Quote.Prefix, seq))
	h := handlers.New(quoting.New(builder, gen, logger), logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("sequence", cfg.Sequence.Backend),
		zap.String("renderer", cfg.Renderer.Engine),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server", zap.Error(err))
		return err
	}
	return nil
}

func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = lvl
	}
	return zc.Build()
}

// NewSequence opens the configured quote counter. The returned func
// releases its connections.
func NewSequence(ctx context.Context, cfg config.SequenceConfig) (quote.Sequence, func(), error) {
	switch cfg.Backend {
	case config.SequenceMemory:
		return &quote.MemorySequence{}, func() {}, nil

	case config.SequencePostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		seq, err := postgres.NewQuoteSequence(ctx, db, cfg.Name)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return seq, db.Close, nil

	case config.SequenceMySQL:
		db, err := mysql.New(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql: %w", err)
		}
		seq, err := mysql.NewQuoteSequence(ctx, db, cfg.Name)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return seq, func() { db.Close() }, nil

	case config.SequenceRedis:
		seq, err := redis.NewQuoteSequence(ctx, redis.Conf{
			Addr: cfg.RedisAddr,
			PW:   cfg.RedisPW,
			DB:   cfg.RedisDB,
			Key:  cfg.Name,
		})
		if err != nil {
			return nil, nil, err
		}
		return seq, func() { seq.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown sequence backend %q", cfg.Backend)
}

func NewGenerator(cfg config.Config, logger *zap.Logger) (pdf.Generator, func(), error) {
	sig := pdf.Signature{Name: cfg.Quote.ApproverName, Title: cfg.Quote.ApproverTitle}

	switch cfg.Renderer.Engine {
	case config.EngineGofpdf:
		return gofpdf.New(gofpdf.WithSignature(sig), gofpdf.WithLogger(logger)), func() {}, nil

	case config.EngineHTML:
		opts := []htmlpdf.Option{
			htmlpdf.WithSignature(sig),
			htmlpdf.WithLogger(logger),
			htmlpdf.WithTimeout(cfg.Renderer.Timeout),
			htmlpdf.WithChromePath(cfg.Renderer.ChromePath),
		}
		if cfg.Renderer.NoSandbox {
			opts = append(opts, htmlpdf.WithNoSandbox())
		}
		if cfg.Renderer.AutoDownload {
			opts = append(opts, htmlpdf.WithAutoDownload())
		}
		g, err := htmlpdf.New(opts...)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { g.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown renderer engine %q", cfg.Renderer.Engine)
}
