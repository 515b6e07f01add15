package main

import (
	"fmt"
	"os"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/internal/services"
)

// Resets the built-in insight prompt template to the compiled-in default.
// Useful after experimenting with prompt wording in the admin UI.
func main() {
	path := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := models.GetDB()

	result := db.Model(&models.PromptTemplate{}).
		Where("is_system = ?", true).
		Where("name = ?", "Default AAR Insight Summary").
		Update("content", services.DefaultInsightPrompt)
	if result.Error != nil {
		fmt.Printf("Failed to update prompt: %v\n", result.Error)
		os.Exit(1)
	}

	if result.RowsAffected == 0 {
		fmt.Println("No system prompt row found; run the server once to seed defaults")
		os.Exit(1)
	}

	fmt.Println("Default insight prompt restored")
}
