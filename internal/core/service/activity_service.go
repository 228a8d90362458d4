package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis). A worker retry or a
// duplicate enqueue must not produce a second audit entry for the same
// mutation.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, taskID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, taskID, action string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	obs   ports.ActivityObserver
	log   zerolog.Logger
}

// NewActivityService returns an ActivityRecorder implementation. obs may be
// nil when no instrumentation is wired.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, obs ports.ActivityObserver, log zerolog.Logger) ports.ActivityRecorder {
	return &activityService{repo: repo, dedup: dedup, obs: obs, log: log}
}

// Process deduplicates and persists a single activity event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.TaskID, string(in.Action), in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("task_id", in.TaskID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.observeDedup(true)
		s.log.Debug().Str("task_id", in.TaskID).Str("action", string(in.Action)).Msg("duplicate activity skipped")
		return nil
	}
	s.observeDedup(false)

	if markErr := s.dedup.Mark(ctx, in.TaskID, string(in.Action), in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("task_id", in.TaskID).Msg("failed to set dedup key")
	}

	entry := &domain.TaskActivity{
		TaskID:    in.TaskID,
		OwnerID:   in.OwnerID,
		Action:    in.Action,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	if s.obs != nil {
		s.obs.Recorded(in.Action)
	}

	s.log.Debug().
		Str("task_id", in.TaskID).
		Str("action", string(in.Action)).
		Msg("activity recorded")
	return nil
}

func (s *activityService) observeDedup(hit bool) {
	if s.obs != nil {
		s.obs.DedupCheck(hit)
	}
}
