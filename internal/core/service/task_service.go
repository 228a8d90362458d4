package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const (
	defaultTaskPageLimit = 20
	maxTaskPageLimit     = 100
)

// ActivityDispatcher is the interface the task service uses to enqueue
// audit-trail events without blocking the request path.
type ActivityDispatcher interface {
	Enqueue(event ports.ActivityEventInput)
}

// TaskService implements the owner-gated task operations. The access gate
// runs after the repository load: a task that exists but belongs to someone
// else yields ErrForbidden, not ErrTaskNotFound.
type TaskService struct {
	repo        ports.TaskRepository
	activity    ports.ActivityRepository
	dispatcher  ActivityDispatcher
	adminBypass bool
	log         zerolog.Logger
}

// NewTaskService builds a TaskService. adminBypass is the configurable
// policy letting admins act on any task; it defaults to off.
func NewTaskService(
	repo ports.TaskRepository,
	activity ports.ActivityRepository,
	dispatcher ActivityDispatcher,
	adminBypass bool,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:        repo,
		activity:    activity,
		dispatcher:  dispatcher,
		adminBypass: adminBypass,
		log:         log,
	}
}

func (s *TaskService) Create(ctx context.Context, who ports.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    domain.TaskPriority(input.Priority),
		Category:    domain.TaskCategory(input.Category),
		DueDate:     input.DueDate,
		OwnerID:     who.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Category == "" {
		task.Category = domain.CategoryPersonal
	}

	status := domain.TaskStatus(input.Status)
	if status == "" {
		status = domain.StatusTodo
	}
	task.ApplyStatus(status, now)

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", who.UserID).Msg("failed to create task")
		return nil, err
	}

	s.record(created, domain.ActivityCreated, "task created")
	s.log.Info().Str("task_id", created.ID).Str("owner_id", who.UserID).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, who ports.Identity, id string) (*domain.Task, error) {
	return s.loadOwned(ctx, who, id)
}

func (s *TaskService) List(ctx context.Context, who ports.Identity, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultTaskPageLimit
	}
	if limit > maxTaskPageLimit {
		limit = maxTaskPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListTasksFilter{
		OwnerID:  who.UserID,
		Status:   input.Status,
		Priority: input.Priority,
		Category: input.Category,
		Search:   input.Search,
		SortBy:   input.SortBy,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *TaskService) Update(ctx context.Context, who ports.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.loadOwned(ctx, who, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wasCompleted := task.Status == domain.StatusCompleted

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = domain.TaskPriority(*input.Priority)
	}
	if input.Category != nil {
		task.Category = domain.TaskCategory(*input.Category)
	}
	if input.ClearDue {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil {
		task.ApplyStatus(domain.TaskStatus(*input.Status), now)
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	action := domain.ActivityUpdated
	detail := "task updated"
	if !wasCompleted && task.Status == domain.StatusCompleted {
		action = domain.ActivityCompleted
		detail = "task completed"
	}
	s.record(task, action, detail)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, who ports.Identity, id string) error {
	task, err := s.loadOwned(ctx, who, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}
	s.record(task, domain.ActivityDeleted, "task deleted")
	s.log.Info().Str("task_id", id).Str("owner_id", task.OwnerID).Msg("task deleted")
	return nil
}

func (s *TaskService) Stats(ctx context.Context, who ports.Identity) (*ports.StatusCounts, error) {
	return s.repo.CountByStatus(ctx, who.UserID)
}

func (s *TaskService) Activity(ctx context.Context, who ports.Identity, id string) ([]*domain.TaskActivity, error) {
	task, err := s.loadOwned(ctx, who, id)
	if err != nil {
		return nil, err
	}
	return s.activity.ListByTask(ctx, task.ID)
}

// loadOwned fetches the task and applies the access gate.
func (s *TaskService) loadOwned(ctx context.Context, who ports.Identity, id string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != who.UserID {
		if s.adminBypass && who.Role == domain.RoleAdmin {
			return task, nil
		}
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// record enqueues an audit event; the pipeline is fire-and-forget from the
// request's perspective.
func (s *TaskService) record(task *domain.Task, action domain.ActivityAction, detail string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Enqueue(ports.ActivityEventInput{
		TaskID:    task.ID,
		OwnerID:   task.OwnerID,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
