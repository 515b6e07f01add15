package services

import (
	"testing"

	"github.com/basecode360/traintrack/internal/models"
)

func TestEventService_Steps(t *testing.T) {
	svc := &EventService{}

	steps := svc.Steps()
	if len(steps) != 8 {
		t.Fatalf("len(Steps()) = %d, expected 8", len(steps))
	}

	first := steps[0]
	if first["step"] != 1 {
		t.Errorf("first step = %v, expected 1", first["step"])
	}
	if first["name"] != "Plan the Training" {
		t.Errorf("first step name = %v, expected %q", first["name"], "Plan the Training")
	}

	last := steps[7]
	if last["name"] != "Retrain" {
		t.Errorf("last step name = %v, expected %q", last["name"], "Retrain")
	}
}

func TestTrainingStepName_OutOfRange(t *testing.T) {
	if name := models.TrainingStepName(0); name != "" {
		t.Errorf("TrainingStepName(0) = %q, expected empty", name)
	}
	if name := models.TrainingStepName(9); name != "" {
		t.Errorf("TrainingStepName(9) = %q, expected empty", name)
	}
	if name := models.TrainingStepName(7); name != "Conduct AAR" {
		t.Errorf("TrainingStepName(7) = %q, expected %q", name, "Conduct AAR")
	}
}

func TestCreateEventRequest_Structure(t *testing.T) {
	req := CreateEventRequest{
		UnitID: 3,
		Title:  "Squad Live Fire",
		Step:   6,
	}

	if req.UnitID != 3 {
		t.Errorf("UnitID = %d, expected 3", req.UnitID)
	}
	if req.Title != "Squad Live Fire" {
		t.Errorf("Title = %q, expected %q", req.Title, "Squad Live Fire")
	}
	if req.Step != 6 {
		t.Errorf("Step = %d, expected 6", req.Step)
	}
}
