package models

import (
	"fmt"

	"github.com/basecode360/traintrack/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&Unit{},
		&User{},
		&UnitAssignment{},
		&TrainingEvent{},
		&AAR{},
		&AARItem{},
		&InsightReport{},
		&LLMConfig{},
		&PromptTemplate{},
		&AIUsageLog{},
		&RefreshToken{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default data if not exists
func SeedDefaultData() error {
	var promptCount int64
	DB.Model(&PromptTemplate{}).Where("is_system = ?", true).Count(&promptCount)
	if promptCount == 0 {
		defaultPrompt := PromptTemplate{
			Name:        "Default AAR Insight Summary",
			Description: "Default prompt for summarizing AAR feedback across a unit subtree",
			Content: `You are an experienced military training analyst. Summarize the following
After-Action Review feedback for {{unit}} covering {{period}}.

## Output
### Recurring Sustains
The practices most often cited as working well, with how often they recur.

### Recurring Improves
The most frequently raised problems, grouped by theme.

### Recommended Actions
The top 5 concrete actions leadership should take, ordered by impact.

Keep the summary under 600 words. Do not invent feedback that is not present
in the input.

---
AAR feedback items:
{{aars}}`,
			Variables: `["unit", "period", "aars"]`,
			IsDefault: true,
			IsSystem:  true,
		}
		if err := DB.Create(&defaultPrompt).Error; err != nil {
			return err
		}
	}

	// Create default system configs
	defaultConfigs := []SystemConfig{
		{Key: "ldap_enabled", Value: "false", Type: "bool", Group: "ldap", Label: "Enable LDAP Authentication"},
		{Key: "ldap_host", Value: "", Type: "string", Group: "ldap", Label: "LDAP Server Host"},
		{Key: "ldap_port", Value: "389", Type: "int", Group: "ldap", Label: "LDAP Server Port"},
		{Key: "ldap_base_dn", Value: "", Type: "string", Group: "ldap", Label: "LDAP Base DN"},
		{Key: "ldap_bind_dn", Value: "", Type: "string", Group: "ldap", Label: "LDAP Bind DN"},
		{Key: "ldap_bind_password", Value: "", Type: "string", Group: "ldap", Label: "LDAP Bind Password"},
		{Key: "ldap_user_filter", Value: "(uid=%s)", Type: "string", Group: "ldap", Label: "LDAP User Filter"},
		{Key: "ldap_use_ssl", Value: "false", Type: "bool", Group: "ldap", Label: "Use SSL/TLS"},
		{Key: "access_token_expire_hours", Value: "24", Type: "int", Group: "auth", Label: "Access Token Expiry (hours)"},
		{Key: "refresh_token_expire_hours", Value: "168", Type: "int", Group: "auth", Label: "Refresh Token Expiry (hours)"},
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System Log Retention Days"},
		{Key: "insight_digest_enabled", Value: "false", Type: "bool", Group: "insight", Label: "Enable Weekly Insight Digest"},
		{Key: "insight_digest_day", Value: "1", Type: "int", Group: "insight", Label: "Digest Weekday (0=Sunday)"},
		{Key: "insight_digest_hour", Value: "6", Type: "int", Group: "insight", Label: "Digest Hour (0-23)"},
	}

	for _, cfg := range defaultConfigs {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
