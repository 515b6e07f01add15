package services

import (
	"context"
	"log"
	"time"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

const (
	RetryInterval  = 5 * time.Minute
	RetryBatchSize = 10
	// Reports failed longer than this are left alone; the data that made
	// them fail (no AARs in period) will not appear retroactively.
	RetryWindow = 24 * time.Hour
)

// RetryService re-runs failed insight generations, typically after a
// transient LLM outage.
type RetryService struct {
	db             *gorm.DB
	insightService *InsightService
}

func NewRetryService(db *gorm.DB, aiCfg *config.OpenAIConfig) *RetryService {
	return &RetryService{
		db:             db,
		insightService: NewInsightService(db, aiCfg),
	}
}

var retrySchedulerQuit chan struct{}

func StartRetryScheduler(db *gorm.DB, aiCfg *config.OpenAIConfig) {
	service := NewRetryService(db, aiCfg)
	retrySchedulerQuit = make(chan struct{})
	quit := retrySchedulerQuit

	go func() {
		ticker := time.NewTicker(RetryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				service.ProcessFailedReports()
			case <-quit:
				return
			}
		}
	}()

	log.Printf("[Retry] Scheduler started, interval: %v", RetryInterval)
}

// StopRetryScheduler stops the retry goroutine.
func StopRetryScheduler() {
	if retrySchedulerQuit != nil {
		close(retrySchedulerQuit)
		retrySchedulerQuit = nil
	}
}

func (s *RetryService) ProcessFailedReports() {
	cutoff := time.Now().Add(-RetryWindow)

	var failed []models.InsightReport
	err := s.db.Where("status = ? AND updated_at > ?", "failed", cutoff).
		Order("created_at DESC").
		Limit(RetryBatchSize).
		Find(&failed).Error
	if err != nil {
		log.Printf("[Retry] Failed to fetch failed reports: %v", err)
		return
	}

	if len(failed) == 0 {
		return
	}

	log.Printf("[Retry] Processing %d failed insight reports", len(failed))

	for _, report := range failed {
		s.retryReport(report.ID)
	}
}

func (s *RetryService) retryReport(reportID uint) {
	log.Printf("[Retry] Retrying insight report %d", reportID)

	err := s.insightService.ProcessTask(context.Background(), &InsightTask{InsightReportID: reportID})
	if err != nil {
		log.Printf("[Retry] Report %d failed again: %v", reportID, err)
		return
	}
	log.Printf("[Retry] Report %d succeeded on retry", reportID)
}

// ManualRetry re-queues one failed report on demand.
func (s *RetryService) ManualRetry(reportID uint) error {
	var report models.InsightReport
	if err := s.db.First(&report, reportID).Error; err != nil {
		return err
	}

	if report.Status != "failed" {
		return nil
	}

	s.retryReport(report.ID)
	return nil
}
