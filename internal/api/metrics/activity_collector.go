package metrics

import "github.com/taskforge/task-management-api/internal/core/domain"

// ActivityCollector adapts the activity pipeline's observer port onto the
// Prometheus counters, keeping the core packages free of instrumentation
// imports.
type ActivityCollector struct{}

func NewActivityCollector() ActivityCollector {
	return ActivityCollector{}
}

func (ActivityCollector) DedupCheck(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ActivityDedupTotal.WithLabelValues(result).Inc()
}

func (ActivityCollector) Recorded(action domain.ActivityAction) {
	ActivityRecordedTotal.WithLabelValues(string(action)).Inc()
	if action == domain.ActivityCompleted {
		TasksCompletedTotal.Inc()
	}
}
