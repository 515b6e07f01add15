package services

import (
	"time"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db    *gorm.DB
	scope *ScopeService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, scope: NewScopeService(db)}
}

type DashboardStatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type DashboardStats struct {
	Units          int64 `json:"units"`
	Personnel      int64 `json:"personnel"`
	EventsInPeriod int64 `json:"events_in_period"`
	UpcomingEvents int64 `json:"upcoming_events"`
	AARsInPeriod   int64 `json:"aars_in_period"`
	InsightReports int64 `json:"insight_reports"`
}

type UnitActivity struct {
	UnitID     uint   `json:"unit_id"`
	UnitName   string `json:"unit_name"`
	EventCount int64  `json:"event_count"`
	AARCount   int64  `json:"aar_count"`
}

type StepBreakdown struct {
	Step       int    `json:"step"`
	StepName   string `json:"step_name"`
	EventCount int64  `json:"event_count"`
}

type KindBreakdown struct {
	Kind      string `json:"kind"`
	ItemCount int64  `json:"item_count"`
}

type DashboardResponse struct {
	Stats         DashboardStats  `json:"stats"`
	UnitActivity  []UnitActivity  `json:"unit_activity"`
	StepBreakdown []StepBreakdown `json:"step_breakdown"`
	KindBreakdown []KindBreakdown `json:"kind_breakdown"`
}

func (s *DashboardService) GetStats(actor hierarchy.Actor, req *DashboardStatsRequest) (*DashboardResponse, error) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			startDate = time.Now().AddDate(0, 0, -30)
		}
	} else {
		startDate = time.Now().AddDate(0, 0, -30)
	}

	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			endDate = time.Now()
		}
		endDate = endDate.Add(24*time.Hour - time.Second)
	} else {
		endDate = time.Now()
	}

	ix, accessible, err := s.scope.AccessibleUnits(actor)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		UnitActivity:  []UnitActivity{},
		StepBreakdown: []StepBreakdown{},
		KindBreakdown: []KindBreakdown{},
	}
	if len(accessible) == 0 {
		return resp, nil
	}

	unitIDs := make([]uint, 0, len(accessible))
	for id := range accessible {
		unitIDs = append(unitIDs, id)
	}

	resp.Stats.Units = int64(len(unitIDs))
	resp.Stats.Personnel = int64(len(ix.AccessibleUsers(actor, accessible)))

	s.db.Model(&models.TrainingEvent{}).
		Where("unit_id IN ?", unitIDs).
		Where("starts_at BETWEEN ? AND ?", startDate, endDate).
		Count(&resp.Stats.EventsInPeriod)

	s.db.Model(&models.TrainingEvent{}).
		Where("unit_id IN ?", unitIDs).
		Where("starts_at > ?", time.Now()).
		Count(&resp.Stats.UpcomingEvents)

	s.db.Model(&models.AAR{}).
		Where("unit_id IN ?", unitIDs).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Count(&resp.Stats.AARsInPeriod)

	s.db.Model(&models.InsightReport{}).
		Where("unit_id IN ?", unitIDs).
		Count(&resp.Stats.InsightReports)

	var activity []UnitActivity
	s.db.Model(&models.TrainingEvent{}).
		Select("unit_id, COUNT(*) as event_count").
		Where("unit_id IN ?", unitIDs).
		Where("starts_at BETWEEN ? AND ?", startDate, endDate).
		Group("unit_id").
		Order("event_count DESC").
		Limit(10).
		Scan(&activity)

	for i := range activity {
		if u, err := ix.Tree().Unit(activity[i].UnitID); err == nil {
			activity[i].UnitName = u.Name
		}
		s.db.Model(&models.AAR{}).
			Where("unit_id = ?", activity[i].UnitID).
			Where("created_at BETWEEN ? AND ?", startDate, endDate).
			Count(&activity[i].AARCount)
	}
	resp.UnitActivity = activity

	var steps []StepBreakdown
	s.db.Model(&models.TrainingEvent{}).
		Select("step, COUNT(*) as event_count").
		Where("unit_id IN ?", unitIDs).
		Where("starts_at BETWEEN ? AND ?", startDate, endDate).
		Group("step").
		Order("step").
		Scan(&steps)

	for i := range steps {
		steps[i].StepName = models.TrainingStepName(steps[i].Step)
	}
	resp.StepBreakdown = steps

	var kinds []KindBreakdown
	s.db.Model(&models.AARItem{}).
		Select("aar_items.kind, COUNT(*) as item_count").
		Joins("JOIN aars ON aars.id = aar_items.aar_id").
		Where("aars.unit_id IN ? AND aars.deleted_at IS NULL", unitIDs).
		Where("aars.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("aar_items.kind").
		Order("aar_items.kind").
		Scan(&kinds)
	resp.KindBreakdown = kinds

	return resp, nil
}
