package scheduler

import (
	"time"

	"github.com/patriotthanks/patriotthanks-backend/internal/app/service"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ExpiryAuditScheduler reports incentives whose end date has passed
// while their active flag is still set. The flag stays as the owner
// left it; this job only surfaces the drift for admins to act on.
type ExpiryAuditScheduler struct {
	cron             *cron.Cron
	incentiveService service.IncentiveService
}

func NewExpiryAuditScheduler(incentiveService service.IncentiveService) *ExpiryAuditScheduler {
	return &ExpiryAuditScheduler{
		cron:             cron.New(),
		incentiveService: incentiveService,
	}
}

func (s *ExpiryAuditScheduler) Start() error {
	// Daily at 06:00 server time
	_, err := s.cron.AddFunc("0 6 * * *", s.runAudit)
	if err != nil {
		logger.Error("Failed to add cron job for incentive expiry audit", err)
		return err
	}

	s.cron.Start()
	logger.Info("Incentive expiry audit scheduler started (daily at 6:00 AM)", nil)

	return nil
}

func (s *ExpiryAuditScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Incentive expiry audit scheduler stopped", nil)
}

func (s *ExpiryAuditScheduler) runAudit() {
	logger.Info("Starting incentive expiry audit", nil)

	count, err := s.incentiveService.CountExpiredActive(time.Now())
	if err != nil {
		logger.Error("Incentive expiry audit failed", err)
		return
	}

	if count > 0 {
		logger.Warn("Active incentives past their end date", map[string]interface{}{
			"count": count,
		})
	} else {
		logger.Info("No active incentives past their end date", nil)
	}
}
