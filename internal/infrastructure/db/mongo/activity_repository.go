package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

const activityCollection = "task_activity"

// activityTrailLimit bounds how much of a task's trail one request returns.
const activityTrailLimit = 100

// ActivityRepository persists the task audit trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	TaskID    string    `bson:"task_id"`
	OwnerID   string    `bson:"owner_id"`
	Action    string    `bson:"action"`
	Detail    string    `bson:"detail,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.TaskActivity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		TaskID:    entry.TaskID,
		OwnerID:   entry.OwnerID,
		Action:    string(entry.Action),
		Detail:    entry.Detail,
		Timestamp: entry.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(activityTrailLimit)

	cur, err := r.coll.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.TaskActivity
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, &domain.TaskActivity{
			TaskID:    ma.TaskID,
			OwnerID:   ma.OwnerID,
			Action:    domain.ActivityAction(ma.Action),
			Detail:    ma.Detail,
			Timestamp: ma.Timestamp,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

// EnsureIndexes creates the trail lookup index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
