package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	copy := cloneTask(t)
	r.nextID++
	copy.ID = fmt.Sprintf("task-%d", r.nextID)
	r.tasks[copy.ID] = cloneTask(copy)
	return cloneTask(copy), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	matched := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(t.Priority) != filter.Priority {
			continue
		}
		matched = append(matched, cloneTask(t))
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, ownerID string) (*ports.StatusCounts, error) {
	counts := &ports.StatusCounts{}
	now := time.Now().UTC()
	for _, t := range r.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		counts.Total++
		switch t.Status {
		case domain.StatusTodo:
			counts.Todo++
		case domain.StatusInProgress:
			counts.InProgress++
		case domain.StatusCompleted:
			counts.Completed++
		}
		if t.IsOverdue(now) {
			counts.Overdue++
		}
	}
	return counts, nil
}

type stubActivityRepo struct {
	entries []*domain.TaskActivity
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.TaskActivity) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubActivityRepo) ListByTask(_ context.Context, taskID string) ([]*domain.TaskActivity, error) {
	var out []*domain.TaskActivity
	for _, e := range r.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

type captureDispatcher struct {
	events []ports.ActivityEventInput
}

func (d *captureDispatcher) Enqueue(event ports.ActivityEventInput) {
	d.events = append(d.events, event)
}

func newTestTaskService(repo *stubTaskRepo, adminBypass bool) (*TaskService, *captureDispatcher) {
	dispatcher := &captureDispatcher{}
	svc := NewTaskService(repo, &stubActivityRepo{}, dispatcher, adminBypass, zerolog.Nop())
	return svc, dispatcher
}

var owner = ports.Identity{UserID: "user-1", Role: domain.RoleUser}

func TestTaskService_Create_Defaults(t *testing.T) {
	repo := newStubTaskRepo()
	svc, dispatcher := newTestTaskService(repo, false)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "write report"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Status != domain.StatusTodo {
		t.Fatalf("expected default status todo, got %s", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", task.Priority)
	}
	if task.Category != domain.CategoryPersonal {
		t.Fatalf("expected default category personal, got %s", task.Category)
	}
	if task.OwnerID != owner.UserID {
		t.Fatalf("expected owner %s, got %s", owner.UserID, task.OwnerID)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatalf("new task should not be completed")
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0].Action != domain.ActivityCreated {
		t.Fatalf("expected one created event, got %+v", dispatcher.events)
	}
}

func TestTaskService_Create_CompletedStampsTimestamp(t *testing.T) {
	repo := newStubTaskRepo()
	svc, _ := newTestTaskService(repo, false)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{
		Title:  "already done",
		Status: string(domain.StatusCompleted),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !task.Completed || task.CompletedAt == nil {
		t.Fatalf("expected completed task with timestamp, got %+v", task)
	}
}

func TestTaskService_Get_OwnershipGate(t *testing.T) {
	repo := newStubTaskRepo()
	svc, _ := newTestTaskService(repo, false)

	task, _ := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "mine"})

	intruder := ports.Identity{UserID: "user-2", Role: domain.RoleUser}
	if _, err := svc.Get(context.Background(), intruder, task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, task.ID); err != nil {
		t.Fatalf("owner should read the task: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, "missing"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_AdminBypass(t *testing.T) {
	repo := newStubTaskRepo()
	admin := ports.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

	svc, _ := newTestTaskService(repo, false)
	task, _ := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "gated"})

	// Bypass disabled: admins are treated like any other non-owner.
	if _, err := svc.Get(context.Background(), admin, task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden with bypass off, got %v", err)
	}

	bypassing, _ := newTestTaskService(repo, true)
	if _, err := bypassing.Get(context.Background(), admin, task.ID); err != nil {
		t.Fatalf("admin should read with bypass on: %v", err)
	}

	// A plain user never benefits from the bypass flag.
	intruder := ports.Identity{UserID: "user-2", Role: domain.RoleUser}
	if _, err := bypassing.Get(context.Background(), intruder, task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestTaskService_Update_CompletedAtSetOnce(t *testing.T) {
	repo := newStubTaskRepo()
	svc, dispatcher := newTestTaskService(repo, false)

	task, _ := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "finish me"})

	completed := string(domain.StatusCompleted)
	first, err := svc.Update(context.Background(), owner, task.ID, ports.UpdateTaskInput{Status: &completed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
	stamp := *first.CompletedAt

	// Saving an already-completed task keeps the original stamp.
	title := "finish me please"
	second, err := svc.Update(context.Background(), owner, task.ID, ports.UpdateTaskInput{Title: &title, Status: &completed})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if second.CompletedAt == nil || !second.CompletedAt.Equal(stamp) {
		t.Fatalf("completed_at changed on re-save: %v vs %v", second.CompletedAt, stamp)
	}

	// Reopening clears the completion fields.
	todo := string(domain.StatusTodo)
	reopened, err := svc.Update(context.Background(), owner, task.ID, ports.UpdateTaskInput{Status: &todo})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Completed || reopened.CompletedAt != nil {
		t.Fatalf("expected completion fields cleared, got %+v", reopened)
	}

	// created, completed, updated (re-save), updated (reopen)
	if len(dispatcher.events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(dispatcher.events))
	}
	if dispatcher.events[1].Action != domain.ActivityCompleted {
		t.Fatalf("expected completed event, got %s", dispatcher.events[1].Action)
	}
	if dispatcher.events[2].Action != domain.ActivityUpdated {
		t.Fatalf("re-save of a completed task is a plain update, got %s", dispatcher.events[2].Action)
	}
}

func TestTaskService_Update_ClearDueDate(t *testing.T) {
	repo := newStubTaskRepo()
	svc, _ := newTestTaskService(repo, false)

	due := time.Now().Add(48 * time.Hour).UTC()
	task, _ := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "dated", DueDate: &due})

	updated, err := svc.Update(context.Background(), owner, task.ID, ports.UpdateTaskInput{ClearDue: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", updated.DueDate)
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc, dispatcher := newTestTaskService(repo, false)

	task, _ := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "goner"})

	intruder := ports.Identity{UserID: "user-2", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), intruder, task.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
	last := dispatcher.events[len(dispatcher.events)-1]
	if last.Action != domain.ActivityDeleted {
		t.Fatalf("expected deleted event, got %s", last.Action)
	}
}

func TestTaskService_List_Pagination(t *testing.T) {
	repo := newStubTaskRepo()
	svc, _ := newTestTaskService(repo, false)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{
			Title: fmt.Sprintf("task %d", i),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	result, err := svc.List(context.Background(), owner, ports.ListTasksInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected total 5, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(result.Items))
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}

	// Out-of-range page and limit fall back to sane values.
	result, err = svc.List(context.Background(), owner, ports.ListTasksInput{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 || result.Limit != defaultTaskPageLimit {
		t.Fatalf("expected normalized page/limit, got %d/%d", result.Page, result.Limit)
	}
}

func TestTaskService_Stats(t *testing.T) {
	repo := newStubTaskRepo()
	svc, _ := newTestTaskService(repo, false)

	past := time.Now().Add(-24 * time.Hour).UTC()
	if _, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "a"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "b", Status: string(domain.StatusInProgress), DueDate: &past}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "c", Status: string(domain.StatusCompleted), DueDate: &past}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := ports.Identity{UserID: "user-2", Role: domain.RoleUser}
	if _, err := svc.Create(context.Background(), other, ports.CreateTaskInput{Title: "not mine"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	counts, err := svc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if counts.Total != 3 || counts.Todo != 1 || counts.InProgress != 1 || counts.Completed != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	// Only the uncompleted past-due task counts as overdue.
	if counts.Overdue != 1 {
		t.Fatalf("expected 1 overdue, got %d", counts.Overdue)
	}
}
