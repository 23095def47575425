package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/wellness-hub/internal/bootstrap"
	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/internal/domain/auth"
	"github.com/yanqian/wellness-hub/internal/domain/companion"
	"github.com/yanqian/wellness-hub/internal/domain/export"
	"github.com/yanqian/wellness-hub/internal/domain/feedback"
	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
	"github.com/yanqian/wellness-hub/internal/infra/appointmentrepo"
	"github.com/yanqian/wellness-hub/internal/infra/config"
	"github.com/yanqian/wellness-hub/internal/infra/dashcache"
	"github.com/yanqian/wellness-hub/internal/infra/exportstore"
	"github.com/yanqian/wellness-hub/internal/infra/feedbackrepo"
	"github.com/yanqian/wellness-hub/internal/infra/llm/chatgpt"
	"github.com/yanqian/wellness-hub/internal/infra/llm/tokens"
	"github.com/yanqian/wellness-hub/internal/infra/userrepo"
	"github.com/yanqian/wellness-hub/internal/infra/wellnessrepo"
)

func provideLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Location()
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		AdminEmails:     cfg.Auth.AdminEmails,
	}
}

func provideWellnessConfig(cfg *config.Config, loc *time.Location) wellness.Config {
	return wellness.Config{
		Goals: metrics.Goals{
			ExerciseMinutes:   cfg.Goals.ExerciseMinutes,
			SleepHours:        cfg.Goals.SleepHours,
			MeditationMinutes: cfg.Goals.MeditationMinutes,
			ActivityMinutes:   cfg.Goals.ActivityMinutes,
		},
		DashboardTTL: cfg.Valkey.DashboardTTL,
		Location:     loc,
	}
}

func provideFeedbackConfig(cfg *config.Config) feedback.Config {
	return feedback.Config{AdminEmails: cfg.Auth.AdminEmails}
}

func provideCompanionConfig(cfg *config.Config) companion.Config {
	return companion.Config{
		HistoryTokenBudget: cfg.LLM.HistoryTokenBudget,
		MaxHistoryMessages: cfg.LLM.MaxHistoryMessages,
	}
}

func provideAppointmentConfig(loc *time.Location) appointment.Config {
	return appointment.Config{Location: loc}
}

func provideExportConfig(cfg *config.Config) export.Config {
	return export.Config{Prefix: cfg.Storage.Prefix}
}

// providePostgresPool returns nil when no DSN is configured or the database
// is unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, lifecycle *bootstrap.Lifecycle, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	lifecycle.OnClose("postgres", pool.Close)
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideWellnessRepository(pool *pgxpool.Pool) wellness.Repository {
	if pool == nil {
		return wellnessrepo.NewMemoryRepository()
	}
	return wellnessrepo.NewPostgresRepository(pool)
}

func provideFeedbackRepository(pool *pgxpool.Pool) feedback.Repository {
	if pool == nil {
		return feedbackrepo.NewMemoryRepository()
	}
	return feedbackrepo.NewPostgresRepository(pool)
}

func provideAppointmentRepository(pool *pgxpool.Pool) appointment.Repository {
	if pool == nil {
		return appointmentrepo.NewMemoryRepository()
	}
	return appointmentrepo.NewPostgresRepository(pool)
}

func provideDashboardCache(cfg *config.Config, lifecycle *bootstrap.Lifecycle, logger *slog.Logger) wellness.DashboardCache {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return dashcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return dashcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			lifecycle.OnClose("valkey", client.Close)
			logger.Info("valkey dashboard cache enabled", "addr", cfg.Valkey.Addr)
			return dashcache.NewValkeyCache(client, cfg.Valkey.Prefix)
		}
	}
	return dashcache.NewMemoryCache()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideLLM(cfg *config.Config, logger *slog.Logger) companion.LLM {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, companion will serve fallback replies")
		return chatgpt.Unavailable{}
	}
	client, err := chatgpt.NewClient(chatgpt.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		MaxRetries:  cfg.LLM.MaxRetries,
	}, logger)
	if err != nil {
		logger.Error("failed to build llm client, companion will serve fallback replies", "error", err)
		return chatgpt.Unavailable{}
	}
	logger.Info("llm client enabled", "model", cfg.LLM.Model, "baseUrl", cfg.LLM.BaseURL)
	return client
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) companion.TokenCounter {
	return tokens.NewCounter(cfg.LLM.Encoding, logger)
}

func provideExportStorage(cfg *config.Config, logger *slog.Logger) export.ObjectStorage {
	if strings.TrimSpace(cfg.Storage.Endpoint) == "" {
		logger.Info("storage endpoint not set, using memory export storage")
		return exportstore.NewMemoryStorage()
	}
	store, err := exportstore.NewR2Storage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, logger)
	if err != nil {
		logger.Error("failed to init object storage, using memory export storage", "error", err)
		return exportstore.NewMemoryStorage()
	}
	logger.Info("object storage enabled for exports", "bucket", cfg.Storage.Bucket)
	return store
}

func provideSnapshotSource(svc wellness.Service) export.SnapshotSource {
	return svc
}
