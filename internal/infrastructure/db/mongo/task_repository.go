package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository persists tasks in the tasks collection.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	Category    string             `bson:"category"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Completed   bool               `bson:"completed"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromDomainTask(t))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

// Update overwrites every mutable field. The owner is part of the filter so a
// document can never be reassigned, even by a buggy caller.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"title":       t.Title,
			"description": t.Description,
			"status":      string(t.Status),
			"priority":    string(t.Priority),
			"category":    string(t.Category),
			"completed":   t.Completed,
			"updated_at":  t.UpdatedAt,
		},
	}
	set := update["$set"].(bson.M)
	unset := bson.M{}
	if t.DueDate != nil {
		set["due_date"] = *t.DueDate
	} else {
		unset["due_date"] = ""
	}
	if t.CompletedAt != nil {
		set["completed_at"] = *t.CompletedAt
	} else {
		unset["completed_at"] = ""
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "owner_id": t.OwnerID}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"owner_id": filter.OwnerID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.SortBy == "due_date" {
		sort = bson.D{{Key: "due_date", Value: 1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, 0, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

// CountByStatus aggregates the owner's tasks per status and counts the
// overdue ones in a second query.
func (r *TaskRepository) CountByStatus(ctx context.Context, ownerID string) (*ports.StatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate task stats: %w", err)
	}
	defer cur.Close(ctx)

	counts := &ports.StatusCounts{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode task stats: %w", err)
		}
		counts.Total += row.Count
		switch domain.TaskStatus(row.Status) {
		case domain.StatusTodo:
			counts.Todo = row.Count
		case domain.StatusInProgress:
			counts.InProgress = row.Count
		case domain.StatusCompleted:
			counts.Completed = row.Count
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate task stats: %w", err)
	}

	overdue, err := r.coll.CountDocuments(ctx, bson.M{
		"owner_id":  ownerID,
		"completed": false,
		"due_date":  bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}
	counts.Overdue = overdue
	return counts, nil
}

// EnsureIndexes creates the query indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func fromDomainTask(t *domain.Task) mongoTask {
	return mongoTask{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (mt *mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          mt.ID.Hex(),
		Title:       mt.Title,
		Description: mt.Description,
		Status:      domain.TaskStatus(mt.Status),
		Priority:    domain.TaskPriority(mt.Priority),
		Category:    domain.TaskCategory(mt.Category),
		DueDate:     mt.DueDate,
		OwnerID:     mt.OwnerID,
		Completed:   mt.Completed,
		CompletedAt: mt.CompletedAt,
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}
}
