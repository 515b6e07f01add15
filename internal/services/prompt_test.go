package services

import (
	"strings"
	"testing"
)

func TestPromptListParams_Structure(t *testing.T) {
	isSystem := true
	params := PromptListParams{
		Page:     1,
		PageSize: 20,
		Name:     "insight",
		IsSystem: &isSystem,
	}

	if params.Page != 1 {
		t.Errorf("Page = %d, expected 1", params.Page)
	}
	if params.PageSize != 20 {
		t.Errorf("PageSize = %d, expected 20", params.PageSize)
	}
	if params.Name != "insight" {
		t.Errorf("Name = %q, expected %q", params.Name, "insight")
	}
	if params.IsSystem == nil || !*params.IsSystem {
		t.Error("IsSystem should be true")
	}
}

func TestPromptListParams_NilIsSystem(t *testing.T) {
	params := PromptListParams{
		Page:     1,
		PageSize: 10,
	}

	if params.IsSystem != nil {
		t.Error("IsSystem should be nil by default")
	}
}

func TestPromptListResult_Structure(t *testing.T) {
	result := &PromptListResult{
		Items: nil,
		Total: 5,
	}

	if result.Total != 5 {
		t.Errorf("Total = %d, expected 5", result.Total)
	}
	if result.Items != nil {
		t.Error("Items should be nil")
	}
}

func TestDefaultInsightPrompt_Placeholders(t *testing.T) {
	for _, ph := range []string{"{{unit}}", "{{period}}", "{{aars}}"} {
		if !strings.Contains(DefaultInsightPrompt, ph) {
			t.Errorf("DefaultInsightPrompt missing placeholder %s", ph)
		}
	}
}
