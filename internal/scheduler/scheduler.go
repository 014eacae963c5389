package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/config"
	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// Sweeper re-evaluates every open goal against its target.
type Sweeper interface {
	Sweep(ctx context.Context) error
}

// Reporter builds per-user snapshots and spreadsheet exports.
type Reporter interface {
	SaveDailySnapshot(ctx context.Context, userID string, day time.Time) error
	ExportSummary(ctx context.Context, userID string) error
}

// UserLister enumerates accounts for the per-user jobs.
type UserLister interface {
	ListAll(ctx context.Context) ([]models.User, error)
}

// Scheduler manages the periodic background jobs: the goal sweep that heals
// missed crossings, the daily activity snapshot and the weekly sheet export.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.NotifierConfig
	sweeper   Sweeper
	reporter  Reporter
	users     UserLister
	exporting bool
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporting controls whether
// the weekly spreadsheet export job is registered.
func NewScheduler(cfg config.NotifierConfig, sweeper Sweeper, reporter Reporter, users UserLister, exporting bool, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		sweeper:   sweeper,
		reporter:  reporter,
		users:     users,
		exporting: exporting,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.SweepCronSchedule, s.runSweep); err != nil {
		s.logger.Error("failed to schedule goal sweep", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.SnapshotCronSchedule, s.runDailySnapshots); err != nil {
		s.logger.Error("failed to schedule daily snapshots", zap.Error(err))
	}

	if s.exporting {
		if _, err := s.cron.AddFunc(s.cfg.ExportCronSchedule, s.runWeeklyExport); err != nil {
			s.logger.Error("failed to schedule weekly export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Error("goal sweep failed", zap.Error(err))
	}
}

func (s *Scheduler) runDailySnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users for snapshots", zap.Error(err))
		return
	}

	day := time.Now().UTC()
	for _, user := range users {
		if err := s.reporter.SaveDailySnapshot(ctx, user.ID.Hex(), day); err != nil {
			s.logger.Error("daily snapshot failed", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		}
	}
	s.logger.Info("daily snapshots completed", zap.Int("users", len(users)))
}

func (s *Scheduler) runWeeklyExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users for export", zap.Error(err))
		return
	}

	for _, user := range users {
		if err := s.reporter.ExportSummary(ctx, user.ID.Hex()); err != nil {
			s.logger.Error("weekly export failed", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		}
	}
	s.logger.Info("weekly export completed", zap.Int("users", len(users)))
}
