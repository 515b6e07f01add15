package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/pkg/logger"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// DefaultInsightPrompt is the hardcoded fallback used when no prompt
// template rows exist yet.
const DefaultInsightPrompt = `You are an experienced military training analyst. Summarize the following
After-Action Review feedback for {{unit}} covering {{period}}.

## Output
### Recurring Sustains
### Recurring Improves
### Recommended Actions

Keep the summary under 600 words. Do not invent feedback that is not present
in the input.

---
AAR feedback items:
{{aars}}`

// InsightService turns a unit subtree's AAR feedback into an LLM-written
// trend summary. Configured providers are tried in fallback order; every
// call is recorded to ai_usage_logs.
type InsightService struct {
	db     *gorm.DB
	config *config.OpenAIConfig
	scope  *ScopeService
	usage  *AIUsageService
}

func NewInsightService(db *gorm.DB, cfg *config.OpenAIConfig) *InsightService {
	return &InsightService{
		db:     db,
		config: cfg,
		scope:  NewScopeService(db),
		usage:  NewAIUsageService(db),
	}
}

type GenerateInsightRequest struct {
	UnitID      uint      `json:"unit_id" binding:"required"`
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
	LLMConfigID *uint     `json:"llm_config_id"`
}

type llmResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Generate creates a pending insight report and hands it to the task queue.
// The caller needs management authority over the unit: insight summaries
// aggregate subordinate feedback, which is a leadership view.
func (s *InsightService) Generate(actor hierarchy.Actor, req *GenerateInsightRequest) (*models.InsightReport, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanManageUnit(actor, req.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	report := models.InsightReport{
		UnitID:      req.UnitID,
		RequestedBy: actor.ID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Status:      "pending",
		LLMConfigID: req.LLMConfigID,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	if queue := GetTaskQueue(); queue != nil {
		if err := queue.Enqueue(&InsightTask{InsightReportID: report.ID}); err != nil {
			logger.Errorf("[Insight] Failed to enqueue report %d: %v", report.ID, err)
		}
	}
	return &report, nil
}

// List returns the insight reports inside the actor's visible units.
func (s *InsightService) List(actor hierarchy.Actor, unitID *uint) ([]models.InsightReport, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	query := s.db.Model(&models.InsightReport{}).Preload("Unit")
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}

	var reports []models.InsightReport
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}

	return hierarchy.FilterAccessible(ix, actor, reports, func(r models.InsightReport) uint {
		return r.UnitID
	}), nil
}

func (s *InsightService) GetByID(actor hierarchy.Actor, id uint) (*models.InsightReport, error) {
	var report models.InsightReport
	if err := s.db.Preload("Unit").First(&report, id).Error; err != nil {
		return nil, err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, report.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}
	return &report, nil
}

// ProcessTask generates the content for a queued insight report.
func (s *InsightService) ProcessTask(ctx context.Context, task *InsightTask) error {
	var report models.InsightReport
	if err := s.db.First(&report, task.InsightReportID).Error; err != nil {
		return fmt.Errorf("insight report not found: %w", err)
	}

	content, llmConfigID, aarCount, err := s.generate(ctx, &report)
	if err != nil {
		s.db.Model(&report).Updates(map[string]interface{}{
			"status":        "failed",
			"error_message": err.Error(),
		})
		return err
	}

	return s.db.Model(&report).Updates(map[string]interface{}{
		"status":        "completed",
		"content":       content,
		"aar_count":     aarCount,
		"llm_config_id": llmConfigID,
		"error_message": "",
	}).Error
}

func (s *InsightService) generate(ctx context.Context, report *models.InsightReport) (string, *uint, int, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return "", nil, 0, err
	}

	unit, err := ix.Tree().Unit(report.UnitID)
	if err != nil {
		return "", nil, 0, err
	}

	subtree, err := ix.Tree().Subtree(report.UnitID)
	if err != nil {
		return "", nil, 0, err
	}
	unitIDs := make([]uint, 0, len(subtree))
	for _, u := range subtree {
		unitIDs = append(unitIDs, u.ID)
	}

	var aars []models.AAR
	if err := s.db.Preload("Items").Preload("Event").
		Where("unit_id IN ? AND created_at >= ? AND created_at <= ?",
			unitIDs, report.PeriodStart, report.PeriodEnd).
		Order("created_at").
		Find(&aars).Error; err != nil {
		return "", nil, 0, err
	}
	if len(aars) == 0 {
		return "", nil, 0, fmt.Errorf("no AAR feedback in period for unit %d", report.UnitID)
	}

	prompt := s.buildPrompt(unit, report, aars)

	logger.Infof("[Insight] Prompt length: %d chars, AARs: %d", len(prompt), len(aars))

	llmConfigs := s.getOrderedLLMConfigs(report.LLMConfigID)
	if len(llmConfigs) == 0 {
		return "", nil, 0, fmt.Errorf("no LLM configuration available")
	}

	var lastErr error
	for i, llmConfig := range llmConfigs {
		logger.Infof("[Insight] Attempting LLM %d/%d: %s (model: %s)", i+1, len(llmConfigs), llmConfig.Name, llmConfig.Model)

		start := time.Now()
		result, err := s.callLLM(ctx, &llmConfig, prompt)
		s.recordUsage(&llmConfig, report, result, time.Since(start), err)

		if err == nil {
			logger.Infof("[Insight] Success with LLM: %s", llmConfig.Name)
			id := llmConfig.ID
			return result.Content, &id, len(aars), nil
		}

		lastErr = err
		logger.Infof("[Insight] LLM %s failed: %v, trying next...", llmConfig.Name, err)
	}

	return "", nil, 0, fmt.Errorf("all LLMs failed, last error: %w", lastErr)
}

// buildPrompt fills the insight template with the unit, period and the
// collected AAR feedback.
func (s *InsightService) buildPrompt(unit *hierarchy.Unit, report *models.InsightReport, aars []models.AAR) string {
	var prompt string
	var defaultPrompt models.PromptTemplate
	if err := s.db.Where("is_default = ?", true).First(&defaultPrompt).Error; err == nil {
		prompt = defaultPrompt.Content
	} else {
		prompt = DefaultInsightPrompt
	}

	period := fmt.Sprintf("%s to %s",
		report.PeriodStart.Format("2006-01-02"),
		report.PeriodEnd.Format("2006-01-02"))

	var b strings.Builder
	for _, aar := range aars {
		eventTitle := "unknown event"
		if aar.Event != nil {
			eventTitle = aar.Event.Title
		}
		fmt.Fprintf(&b, "### AAR for %q (%s)\n", eventTitle, aar.CreatedAt.Format("2006-01-02"))
		if aar.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", aar.Summary)
		}
		for _, item := range aar.Items {
			fmt.Fprintf(&b, "- [%s] %s\n", item.Kind, item.Content)
		}
		b.WriteString("\n")
	}

	prompt = strings.ReplaceAll(prompt, "{{unit}}", unit.Name)
	prompt = strings.ReplaceAll(prompt, "{{period}}", period)
	prompt = strings.ReplaceAll(prompt, "{{aars}}", b.String())
	return prompt
}

// getOrderedLLMConfigs returns configs in fallback order: the requested
// config first, then the default, then remaining active configs by id. The
// static config file is the last resort.
func (s *InsightService) getOrderedLLMConfigs(requestedID *uint) []models.LLMConfig {
	var configs []models.LLMConfig

	if requestedID != nil {
		var requested models.LLMConfig
		if err := s.db.Where("id = ? AND is_active = ?", *requestedID, true).First(&requested).Error; err == nil {
			configs = append(configs, requested)
		}
	}

	var defaultConfig models.LLMConfig
	if err := s.db.Where("is_default = ? AND is_active = ?", true, true).First(&defaultConfig).Error; err == nil {
		if len(configs) == 0 || configs[0].ID != defaultConfig.ID {
			configs = append(configs, defaultConfig)
		}
	}

	var backupConfigs []models.LLMConfig
	existingIDs := make(map[uint]bool)
	for _, c := range configs {
		existingIDs[c.ID] = true
	}
	s.db.Where("is_active = ?", true).Order("id ASC").Find(&backupConfigs)
	for _, c := range backupConfigs {
		if !existingIDs[c.ID] {
			configs = append(configs, c)
		}
	}

	if len(configs) == 0 && s.config != nil && s.config.APIKey != "" {
		configs = append(configs, models.LLMConfig{
			Name:    "fallback",
			BaseURL: s.config.BaseURL,
			APIKey:  s.config.APIKey,
			Model:   s.config.Model,
		})
	}

	return configs
}

func (s *InsightService) recordUsage(llmConfig *models.LLMConfig, report *models.InsightReport, result *llmResult, latency time.Duration, callErr error) {
	unitID := report.UnitID
	reportID := report.ID

	usage := &models.AIUsageLog{
		UnitID:          &unitID,
		InsightReportID: &reportID,
		LLMConfigID:     llmConfig.ID,
		Provider:        llmConfig.Provider,
		Model:           llmConfig.Model,
		LatencyMs:       latency.Milliseconds(),
		Success:         callErr == nil,
	}
	if result != nil {
		usage.PromptTokens = result.PromptTokens
		usage.CompletionTokens = result.CompletionTokens
		usage.TotalTokens = result.PromptTokens + result.CompletionTokens
	}
	if callErr != nil {
		msg := callErr.Error()
		if len(msg) > 500 {
			msg = msg[:500]
		}
		usage.ErrorMessage = msg
	}
	s.usage.Record(usage)
}

// callLLM dispatches to the appropriate provider-specific function based on Provider field
func (s *InsightService) callLLM(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	logger.Infof("[Insight] Using provider: %s, model: %s, baseURL: %s", llmConfig.Provider, llmConfig.Model, llmConfig.BaseURL)

	switch llmConfig.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, llmConfig, prompt)
	case "ollama":
		return s.callOllama(ctx, llmConfig, prompt)
	case "gemini":
		return s.callGemini(ctx, llmConfig, prompt)
	case "azure":
		return s.callAzure(ctx, llmConfig, prompt)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, llmConfig, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *InsightService) callOpenAI(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	clientConfig := openai.DefaultConfig(llmConfig.APIKey)
	if llmConfig.BaseURL != "" {
		clientConfig.BaseURL = llmConfig.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if llmConfig.Temperature > 0 {
		temperature = float32(llmConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmConfig.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	})

	if err != nil {
		logger.Infof("[Insight] OpenAI API error: %v", err)
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &llmResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *InsightService) callAnthropic(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(llmConfig.APIKey),
	)

	maxTokens := int64(llmConfig.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	model := llmConfig.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		logger.Infof("[Insight] Anthropic API error: %v", err)
		return nil, fmt.Errorf("Anthropic API error: %w", err)
	}

	// Extract text content from response
	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &llmResult{
		Content:          content,
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}, nil
}

// callOllama handles Ollama API using the native SDK
func (s *InsightService) callOllama(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	baseURL := llmConfig.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := llmConfig.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": llmConfig.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})

	if err != nil {
		logger.Infof("[Insight] Ollama API error: %v", err)
		return nil, fmt.Errorf("Ollama API error: %w", err)
	}

	return &llmResult{Content: content.String()}, nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *InsightService) callGemini(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: llmConfig.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini client error: %w", err)
	}

	model := llmConfig.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		logger.Infof("[Insight] Gemini API error: %v", err)
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return &llmResult{Content: resp.Text()}, nil
}

// callAzure handles Azure OpenAI API using special configuration
func (s *InsightService) callAzure(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (*llmResult, error) {
	// Azure requires BaseURL format: https://{resource-name}.openai.azure.com
	// Model field is used as deployment name
	cfg := openai.DefaultAzureConfig(llmConfig.APIKey, llmConfig.BaseURL)
	client := openai.NewClientWithConfig(cfg)

	temperature := float32(0.3)
	if llmConfig.Temperature > 0 {
		temperature = float32(llmConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmConfig.Model, // In Azure, this is the deployment name
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})

	if err != nil {
		logger.Infof("[Insight] Azure OpenAI API error: %v", err)
		return nil, fmt.Errorf("Azure OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Azure OpenAI")
	}

	return &llmResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
