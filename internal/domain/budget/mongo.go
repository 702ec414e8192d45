package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const budgetsCollection = "budgets"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(budgetsCollection)}
}

// EnsureIndexes creates the unique (user_id, month) index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating budget index: %w", err)
	}
	return nil
}

type budgetDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Month     string    `bson:"month"`
	Income    string    `bson:"income"`
	Budget    string    `bson:"budget"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *MongoRepository) Upsert(ctx context.Context, b *Budget) error {
	filter := bson.M{"user_id": b.UserID, "month": b.Month}
	update := bson.M{
		"$set": bson.M{
			"income":     b.Income.StringFixed(2),
			"budget":     b.Budget.StringFixed(2),
			"updated_at": b.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        b.ID.String(),
			"created_at": b.CreatedAt,
		},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, userID, month string) (*Budget, error) {
	var doc budgetDoc
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "month": month}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting budget: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing budget id: %w", err)
	}
	income, err := decimal.NewFromString(doc.Income)
	if err != nil {
		return nil, fmt.Errorf("parsing income: %w", err)
	}
	limit, err := decimal.NewFromString(doc.Budget)
	if err != nil {
		return nil, fmt.Errorf("parsing budget: %w", err)
	}

	return &Budget{
		ID:        id,
		UserID:    doc.UserID,
		Month:     doc.Month,
		Income:    income,
		Budget:    limit,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
