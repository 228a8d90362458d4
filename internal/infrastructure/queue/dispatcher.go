package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity events to a fixed set of workers using
// consistent hashing on the task ID, guaranteeing per-task ordering of the
// audit trail.
type Dispatcher struct {
	workers  []chan ports.ActivityEventInput
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.ActivityEventInput, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its task.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ActivityEventInput) {
	d.workers[d.shardIndex(event.TaskID)] <- event
}

// shardIndex maps a task ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("task_id", event.TaskID).
					Int("worker_id", id).
					Msg("activity recording failed")
			}
		}
	}
}
