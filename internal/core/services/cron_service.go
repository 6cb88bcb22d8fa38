package services

import (
	"context"
	"time"

	"folhacred/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService runs the recurring maintenance jobs: purging expired
// refresh tokens and reporting overdue installments.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	parcelaRepo      repositories.ParcelaRepository
	log              *logrus.Logger
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	parcelaRepo repositories.ParcelaRepository,
	log *logrus.Logger,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		parcelaRepo:      parcelaRepo,
		log:              log,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// 02:00 daily
	if _, err := s.cron.AddFunc("0 2 * * *", s.purgeExpiredTokens); err != nil {
		s.log.Errorf("registering token purge job failed: %v", err)
	}
	// 08:30 daily
	if _, err := s.cron.AddFunc("30 8 * * *", s.reportOverdueParcelas); err != nil {
		s.log.Errorf("registering overdue report job failed: %v", err)
	}
	s.cron.Start()
	s.log.Info("cron service started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		s.log.Errorf("purging expired refresh tokens failed: %v", err)
		return
	}
	if count > 0 {
		s.log.Infof("purged %d expired refresh tokens", count)
	}
}

func (s *CronService) reportOverdueParcelas() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	parcelas, err := s.parcelaRepo.ListVencidas(ctx, time.Now())
	if err != nil {
		s.log.Errorf("listing overdue installments failed: %v", err)
		return
	}
	if len(parcelas) > 0 {
		s.log.Warnf("%d installments overdue and unpaid", len(parcelas))
	}
}
