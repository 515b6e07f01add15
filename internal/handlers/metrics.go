package handlers

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/internal/services"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Metrics returns Prometheus-compatible text format metrics.
func Metrics(c *gin.Context) {
	var b strings.Builder

	// -- Runtime metrics --
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeGauge(&b, "traintrack_uptime_seconds", "Time since server start in seconds", float64(time.Since(startTime).Seconds()))
	writeGauge(&b, "traintrack_goroutines", "Number of active goroutines", float64(runtime.NumGoroutine()))
	writeGauge(&b, "traintrack_memory_alloc_bytes", "Current heap allocation in bytes", float64(m.Alloc))
	writeGauge(&b, "traintrack_memory_sys_bytes", "Total memory obtained from OS in bytes", float64(m.Sys))
	writeGauge(&b, "traintrack_gc_runs_total", "Total number of GC runs", float64(m.NumGC))

	// -- Database metrics --
	db := models.GetDB()
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			stats := sqlDB.Stats()
			writeGauge(&b, "traintrack_db_open_connections", "Number of open DB connections", float64(stats.OpenConnections))
			writeGauge(&b, "traintrack_db_in_use_connections", "Number of in-use DB connections", float64(stats.InUse))
			writeGauge(&b, "traintrack_db_idle_connections", "Number of idle DB connections", float64(stats.Idle))
		}
	}

	// -- Queue metrics --
	taskQueue := services.GetTaskQueue()
	queueAsync := 0.0
	if taskQueue != nil && taskQueue.IsAsync() {
		queueAsync = 1.0
	}
	writeGauge(&b, "traintrack_queue_async_enabled", "Whether async queue (Redis) is enabled (1=yes, 0=no)", queueAsync)

	// -- Domain metrics --
	if db != nil {
		var unitCount, userCount, eventCount, aarCount int64
		db.Model(&models.Unit{}).Where("deleted_at IS NULL").Count(&unitCount)
		db.Model(&models.User{}).Where("deleted_at IS NULL AND is_active = ?", true).Count(&userCount)
		db.Model(&models.TrainingEvent{}).Where("deleted_at IS NULL").Count(&eventCount)
		db.Model(&models.AAR{}).Where("deleted_at IS NULL").Count(&aarCount)

		writeGauge(&b, "traintrack_units_total", "Total number of active units", float64(unitCount))
		writeGauge(&b, "traintrack_users_active", "Number of active users", float64(userCount))
		writeGauge(&b, "traintrack_events_total", "Total number of training events", float64(eventCount))
		writeGauge(&b, "traintrack_aars_total", "Total number of AARs", float64(aarCount))

		var pendingInsights, failedInsights int64
		db.Model(&models.InsightReport{}).Where("status = ?", "pending").Count(&pendingInsights)
		db.Model(&models.InsightReport{}).Where("status = ?", "failed").Count(&failedInsights)
		writeGauge(&b, "traintrack_insights_pending", "Number of pending insight reports", float64(pendingInsights))
		writeGauge(&b, "traintrack_insights_failed", "Number of failed insight reports", float64(failedInsights))

		// AI Usage (last 24h)
		since24h := time.Now().Add(-24 * time.Hour)
		var aiCalls24h int64
		db.Model(&models.AIUsageLog{}).Where("created_at >= ?", since24h).Count(&aiCalls24h)
		writeGauge(&b, "traintrack_ai_calls_24h", "AI API calls in the last 24 hours", float64(aiCalls24h))
	}

	c.Data(200, "text/plain; version=0.0.4; charset=utf-8", []byte(b.String()))
}

func writeGauge(b *strings.Builder, name, help string, value float64) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s gauge\n", name)
	fmt.Fprintf(b, "%s %g\n\n", name, value)
}
