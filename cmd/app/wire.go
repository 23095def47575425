//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/wellness-hub/internal/bootstrap"
	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/internal/domain/auth"
	"github.com/yanqian/wellness-hub/internal/domain/companion"
	"github.com/yanqian/wellness-hub/internal/domain/export"
	"github.com/yanqian/wellness-hub/internal/domain/feedback"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
	"github.com/yanqian/wellness-hub/internal/infra/config"
	httpiface "github.com/yanqian/wellness-hub/internal/interface/http"
	"github.com/yanqian/wellness-hub/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.NewLifecycle,
		provideLocation,
		provideAuthConfig,
		provideWellnessConfig,
		provideFeedbackConfig,
		provideCompanionConfig,
		provideAppointmentConfig,
		provideExportConfig,
		providePostgresPool,
		provideUserRepository,
		provideWellnessRepository,
		provideFeedbackRepository,
		provideAppointmentRepository,
		provideDashboardCache,
		provideLLM,
		provideTokenCounter,
		provideExportStorage,
		provideSnapshotSource,
		auth.NewService,
		wellness.NewService,
		feedback.NewService,
		companion.NewService,
		appointment.NewService,
		export.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
