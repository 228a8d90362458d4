package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

type captureRecorder struct {
	mu     sync.Mutex
	events []ports.ActivityEventInput
	done   chan struct{}
	want   int
}

func (r *captureRecorder) Process(_ context.Context, event ports.ActivityEventInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	recorder := &captureRecorder{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, action := range []domain.ActivityAction{domain.ActivityCreated, domain.ActivityUpdated, domain.ActivityCompleted} {
		d.Enqueue(ports.ActivityEventInput{TaskID: "task-1", Action: action, Timestamp: time.Now()})
	}

	select {
	case <-recorder.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	// Same task ID means same shard, so order is preserved.
	if recorder.events[0].Action != domain.ActivityCreated ||
		recorder.events[1].Action != domain.ActivityUpdated ||
		recorder.events[2].Action != domain.ActivityCompleted {
		t.Fatalf("per-task order not preserved: %+v", recorder.events)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &captureRecorder{done: make(chan struct{}), want: 0}, zerolog.Nop())

	first := d.shardIndex("task-abc")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("task-abc"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
}
