package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/config"
	"github.com/mamadbah2/farmdesk/internal/repository/mongodb"
	"github.com/mamadbah2/farmdesk/internal/repository/sheets"
	"github.com/mamadbah2/farmdesk/internal/scheduler"
	"github.com/mamadbah2/farmdesk/internal/server/handlers"
	"github.com/mamadbah2/farmdesk/internal/server/router"
	authsvc "github.com/mamadbah2/farmdesk/internal/service/auth"
	farmsvc "github.com/mamadbah2/farmdesk/internal/service/farm"
	goalsvc "github.com/mamadbah2/farmdesk/internal/service/goals"
	notifiersvc "github.com/mamadbah2/farmdesk/internal/service/notifier"
	reportingsvc "github.com/mamadbah2/farmdesk/internal/service/reporting"
	"github.com/mamadbah2/farmdesk/pkg/clients/push"
	"github.com/mamadbah2/farmdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Env))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	productRepo := mongodb.NewProductRepository(store, baseLogger.Named("repo.products"))
	saleRepo := mongodb.NewSaleRepository(store, baseLogger.Named("repo.sales"))
	productionRepo := mongodb.NewProductionRepository(store, baseLogger.Named("repo.productions"))
	stockRepo := mongodb.NewStockRepository(store, baseLogger.Named("repo.stock"))
	goalRepo := mongodb.NewGoalRepository(store, baseLogger.Named("repo.goals"))
	notificationRepo := mongodb.NewNotificationRepository(store, baseLogger.Named("repo.notifications"))
	userRepo := mongodb.NewUserRepository(store, baseLogger.Named("repo.users"))
	snapshotRepo := mongodb.NewSnapshotRepository(store)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.CredentialsPath != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, report export disabled")
	}

	var pushClient push.Client
	if cfg.Push.BaseURL != "" {
		pushClient = push.NewClient(cfg.Push)
		baseLogger.Info("push delivery enabled")
	} else {
		baseLogger.Warn("push base url missing, push delivery disabled")
	}

	authService := authsvc.NewService(userRepo, cfg.Auth, baseLogger.Named("svc.auth"))
	farmService := farmsvc.NewService(productRepo, saleRepo, productionRepo, stockRepo, baseLogger.Named("svc.farm"))
	goalService := goalsvc.NewService(goalRepo, saleRepo, productionRepo, baseLogger.Named("svc.goals"))
	reportingService := reportingsvc.NewService(saleRepo, productRepo, productionRepo, stockRepo, goalRepo, snapshotRepo, sheetsRepo, baseLogger.Named("svc.reporting"))
	goalNotifier := notifiersvc.New(goalRepo, saleRepo, productionRepo, notificationRepo, userRepo, pushClient, baseLogger.Named("svc.notifier"))

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()

	watcher := mongodb.NewWatcher(store, baseLogger.Named("watcher"))
	events := watcher.Watch(notifierCtx, mongodb.CollGoals, mongodb.CollSales, mongodb.CollProductions)
	go goalNotifier.Run(notifierCtx, events)

	sched := scheduler.NewScheduler(cfg.Notifier, goalNotifier, reportingService, userRepo, sheetsRepo != nil, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Records:       handlers.NewRecordsHandler(farmService, baseLogger.Named("handlers.records")),
		Goals:         handlers.NewGoalHandler(goalService, baseLogger.Named("handlers.goals")),
		Notifications: handlers.NewNotificationHandler(notificationRepo, baseLogger.Named("handlers.notifications")),
		Dashboard:     handlers.NewDashboardHandler(reportingService, baseLogger.Named("handlers.dashboard")),
	}, authService, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	stopNotifier()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
