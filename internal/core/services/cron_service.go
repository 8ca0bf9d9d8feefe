package services

import (
	"context"
	"time"

	"assurgest/internal/config"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const tokenCleanupSpec = "15 * * * *"

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron      *cron.Cron
	cfg       config.CronConfig
	contracts *ContractService
	premiums  *PremiumService
	auth      *AuthService
	metrics   *metrics.Metrics
}

// NewCronService creates a new cron service. Schedules are evaluated in UTC.
func NewCronService(cfg config.CronConfig, contracts *ContractService, premiums *PremiumService, auth *AuthService, m *metrics.Metrics) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		cfg:       cfg,
		contracts: contracts,
		premiums:  premiums,
		auth:      auth,
		metrics:   m,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if !s.cfg.Enabled {
		logger.Info(context.Background(), "cron disabled")
		return nil
	}

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{s.cfg.ContractExpiry, "contract_expiry", s.RunContractExpiry},
		{s.cfg.OverduePremiums, "overdue_premiums", s.RunOverduePremiums},
		{tokenCleanupSpec, "refresh_token_cleanup", s.auth.CleanupExpiredTokens},
	}
	for _, job := range jobs {
		if err := s.AddJob(job.spec, job.name, job.run); err != nil {
			return err
		}
	}

	s.cron.Start()
	logger.Info(context.Background(), "cron started", "contract_expiry", s.cfg.ContractExpiry, "overdue_premiums", s.cfg.OverduePremiums)
	return nil
}

// AddJob schedules an extra maintenance job. Call it before Start.
func (s *CronService) AddJob(spec, name string, run func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() { s.execute(name, run) })
	return err
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
}

// RunContractExpiry expires every contract whose end date has passed
func (s *CronService) RunContractExpiry(ctx context.Context) error {
	expired, err := s.contracts.ExpireLapsed(ctx, actor.Today(ctx))
	logger.Info(ctx, "contract expiry run", "expired", expired)
	return err
}

// RunOverduePremiums marks pending premiums past their due date as unpaid
func (s *CronService) RunOverduePremiums(ctx context.Context) error {
	marked, err := s.premiums.MarkOverdue(ctx, actor.Today(ctx))
	logger.Info(ctx, "overdue premium run", "marked", marked)
	return err
}

func (s *CronService) execute(name string, run func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	err := run(ctx)
	s.metrics.ObserveJob(name, err)
	if err != nil {
		logger.Error(ctx, "cron job failed", "job", name, "error", err)
	}
}
