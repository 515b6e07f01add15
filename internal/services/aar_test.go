package services

import (
	"testing"

	"github.com/basecode360/traintrack/internal/models"
)

func TestValidAARKind(t *testing.T) {
	for _, kind := range []string{"sustain", "improve", "action"} {
		if !models.ValidAARKind(kind) {
			t.Errorf("ValidAARKind(%q) = false, expected true", kind)
		}
	}

	for _, kind := range []string{"", "Sustain", "observation", "fix"} {
		if models.ValidAARKind(kind) {
			t.Errorf("ValidAARKind(%q) = true, expected false", kind)
		}
	}
}

func TestCreateAARRequest_Structure(t *testing.T) {
	req := CreateAARRequest{
		EventID: 12,
		Summary: "Range day went well overall.",
		Items: []AARItemRequest{
			{Kind: "sustain", Content: "PCC/PCI discipline"},
			{Kind: "improve", Content: "Ammo distribution was slow"},
		},
	}

	if req.EventID != 12 {
		t.Errorf("EventID = %d, expected 12", req.EventID)
	}
	if len(req.Items) != 2 {
		t.Fatalf("len(Items) = %d, expected 2", len(req.Items))
	}
	if req.Items[0].Kind != "sustain" {
		t.Errorf("Items[0].Kind = %q, expected %q", req.Items[0].Kind, "sustain")
	}
}

func TestAARRollup_Structure(t *testing.T) {
	rollup := AARRollup{
		Total:   10,
		Sustain: 4,
		Improve: 5,
		Action:  1,
	}

	if rollup.Total != 10 {
		t.Errorf("Total = %d, expected 10", rollup.Total)
	}
	if rollup.Sustain+rollup.Improve+rollup.Action != rollup.Total {
		t.Error("kind counts should sum to Total")
	}
}
