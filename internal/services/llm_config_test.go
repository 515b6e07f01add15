package services

import (
	"testing"
)

func TestLLMConfigListRequest_Defaults(t *testing.T) {
	req := &LLMConfigListRequest{}

	if req.Page != 0 {
		t.Errorf("default Page should be 0, got %d", req.Page)
	}
	if req.PageSize != 0 {
		t.Errorf("default PageSize should be 0, got %d", req.PageSize)
	}
	if req.IsActive != nil {
		t.Error("default IsActive should be nil")
	}
}

func TestLLMConfigListRequest_WithFilters(t *testing.T) {
	active := true
	req := &LLMConfigListRequest{
		Page:     2,
		PageSize: 25,
		Name:     "brigade summarizer",
		Provider: "ollama",
		IsActive: &active,
	}

	if req.Page != 2 {
		t.Errorf("Page = %d, expected 2", req.Page)
	}
	if req.PageSize != 25 {
		t.Errorf("PageSize = %d, expected 25", req.PageSize)
	}
	if req.Name != "brigade summarizer" {
		t.Errorf("Name = %q, expected %q", req.Name, "brigade summarizer")
	}
	if req.Provider != "ollama" {
		t.Errorf("Provider = %q, expected %q", req.Provider, "ollama")
	}
	if req.IsActive == nil || !*req.IsActive {
		t.Error("IsActive should be true")
	}
}

func TestCreateLLMConfigRequest_AllFields(t *testing.T) {
	req := &CreateLLMConfigRequest{
		Name:        "AAR Summarizer",
		Provider:    "anthropic",
		BaseURL:     "https://api.anthropic.com",
		APIKey:      "sk-ant-xxx",
		Model:       "claude-sonnet-4-20250514",
		MaxTokens:   8192,
		Temperature: 0.3,
		IsDefault:   true,
		IsActive:    true,
	}

	if req.Name != "AAR Summarizer" {
		t.Errorf("Name = %q, expected %q", req.Name, "AAR Summarizer")
	}
	if req.Provider != "anthropic" {
		t.Errorf("Provider = %q, expected %q", req.Provider, "anthropic")
	}
	if req.MaxTokens != 8192 {
		t.Errorf("MaxTokens = %d, expected 8192", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %f, expected 0.3", req.Temperature)
	}
	if !req.IsDefault || !req.IsActive {
		t.Error("IsDefault and IsActive should both be true")
	}
}

func TestUpdateLLMConfigRequest_PartialUpdate(t *testing.T) {
	maxTokens := 4096
	temp := 0.5
	isDefault := false

	req := &UpdateLLMConfigRequest{
		Name:        "Fallback Endpoint",
		MaxTokens:   &maxTokens,
		Temperature: &temp,
		IsDefault:   &isDefault,
	}

	if req.Name != "Fallback Endpoint" {
		t.Errorf("Name = %q, expected %q", req.Name, "Fallback Endpoint")
	}
	if req.MaxTokens == nil || *req.MaxTokens != 4096 {
		t.Error("MaxTokens should be 4096")
	}
	if req.Temperature == nil || *req.Temperature != 0.5 {
		t.Error("Temperature should be 0.5")
	}
	if req.IsDefault == nil || *req.IsDefault {
		t.Error("IsDefault should be false")
	}
	// untouched fields stay zero so the service skips them
	if req.Provider != "" {
		t.Errorf("Provider should be empty, got %q", req.Provider)
	}
	if req.APIKey != "" {
		t.Errorf("APIKey should be empty, got %q", req.APIKey)
	}
}

func TestLLMProviders(t *testing.T) {
	providers := []string{"openai", "anthropic", "gemini", "ollama", "azure"}

	for _, provider := range providers {
		req := &CreateLLMConfigRequest{
			Name:     "Test",
			Provider: provider,
			BaseURL:  "https://api.example.com",
			APIKey:   "key",
			Model:    "model",
		}
		if req.Provider != provider {
			t.Errorf("Provider = %q, expected %q", req.Provider, provider)
		}
	}
}
