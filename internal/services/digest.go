package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DigestService runs the weekly insight digest: one summary per root unit
// covering the trailing seven days of AAR feedback. The schedule lives in
// system config so admins can move it without a restart.
type DigestService struct {
	db             *gorm.DB
	insightService *InsightService
	configService  *SystemConfigService
	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

var globalDigestService *DigestService

func NewDigestService(db *gorm.DB, cfg *config.OpenAIConfig) *DigestService {
	return &DigestService{
		db:             db,
		insightService: NewInsightService(db, cfg),
		configService:  NewSystemConfigService(db),
	}
}

// InitDigestService wires the shared digest service used by config handlers
// to reschedule after a settings change.
func InitDigestService(db *gorm.DB, cfg *config.OpenAIConfig) *DigestService {
	globalDigestService = NewDigestService(db, cfg)
	return globalDigestService
}

func GetDigestService() *DigestService {
	return globalDigestService
}

func (s *DigestService) StartScheduler() {
	s.cronScheduler = cron.New()

	s.updateSchedule()

	s.cronScheduler.Start()
	log.Println("[Digest] Scheduler started")
}

func (s *DigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// Reschedule re-reads the digest settings and moves the cron entry.
func (s *DigestService) Reschedule() {
	if s.cronScheduler == nil {
		return
	}
	s.updateSchedule()
}

func (s *DigestService) updateSchedule() {
	if s.currentEntryID != 0 {
		s.cronScheduler.Remove(s.currentEntryID)
	}

	digestCfg := s.configService.GetInsightDigestConfig()
	cronExpr := fmt.Sprintf("0 %d * * %d", digestCfg.Hour, digestCfg.Day)

	entryID, err := s.cronScheduler.AddFunc(cronExpr, func() {
		s.RunWeeklyDigest()
	})
	if err != nil {
		log.Printf("[Digest] Failed to add cron job: %v", err)
		return
	}

	s.currentEntryID = entryID
	log.Printf("[Digest] Scheduled weekly (cron: %s)", cronExpr)
}

// RunWeeklyDigest generates an insight report for every root unit over the
// trailing week. Units whose subtree produced no AARs are skipped.
func (s *DigestService) RunWeeklyDigest() {
	if !s.configService.GetInsightDigestConfig().Enabled {
		log.Println("[Digest] Weekly digest disabled, skipping")
		return
	}

	var roots []models.Unit
	if err := s.db.Where("parent_id IS NULL").Find(&roots).Error; err != nil {
		log.Printf("[Digest] Failed to load root units: %v", err)
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	for _, root := range roots {
		report := models.InsightReport{
			UnitID:      root.ID,
			PeriodStart: start,
			PeriodEnd:   end,
			Status:      "pending",
		}
		if err := s.db.Create(&report).Error; err != nil {
			log.Printf("[Digest] Failed to create report for unit %d: %v", root.ID, err)
			continue
		}

		if err := s.insightService.ProcessTask(context.Background(), &InsightTask{InsightReportID: report.ID}); err != nil {
			log.Printf("[Digest] Generation failed for unit %d: %v", root.ID, err)
			continue
		}
		log.Printf("[Digest] Weekly insight generated for unit %d (%s)", root.ID, root.Name)
	}
}
