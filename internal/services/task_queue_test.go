package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeInsight_Constant(t *testing.T) {
	if TaskTypeInsight != "insight:generate" {
		t.Errorf("TaskTypeInsight = %q, expected %q", TaskTypeInsight, "insight:generate")
	}
}

func TestInsightTask_Structure(t *testing.T) {
	task := InsightTask{
		InsightReportID: 42,
	}

	if task.InsightReportID != 42 {
		t.Errorf("InsightReportID = %d, expected 42", task.InsightReportID)
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	err := queue.Close()
	if err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()
	task := &InsightTask{InsightReportID: 1}

	err := queue.Enqueue(task)
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_SetProcessor(t *testing.T) {
	queue := NewSyncQueue()

	queue.SetProcessor(func(ctx context.Context, task *InsightTask) error {
		return nil
	})

	if queue.processor == nil {
		t.Error("processor should be set")
	}
}

func TestSyncQueue_EnqueueInvokesProcessor(t *testing.T) {
	queue := NewSyncQueue()

	var mu sync.Mutex
	var gotID uint
	done := make(chan struct{})
	queue.SetProcessor(func(ctx context.Context, task *InsightTask) error {
		mu.Lock()
		gotID = task.InsightReportID
		mu.Unlock()
		close(done)
		return nil
	})

	if err := queue.Enqueue(&InsightTask{InsightReportID: 7}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("processor was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotID != 7 {
		t.Errorf("processed InsightReportID = %d, expected 7", gotID)
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
