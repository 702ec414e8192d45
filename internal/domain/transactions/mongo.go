package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const transactionsCollection = "transactions"

// MongoRepository stores transactions in a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(transactionsCollection)}
}

// EnsureIndexes creates the query indexes on user_id and date.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating transaction indexes: %w", err)
	}
	return nil
}

type transactionDoc struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"user_id"`
	Merchant     string    `bson:"merchant"`
	Amount       string    `bson:"amount"`
	Category     string    `bson:"category"`
	Date         string    `bson:"date"`
	EmailSubject string    `bson:"email_subject,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (r *MongoRepository) Insert(ctx context.Context, t *Transaction) error {
	doc := transactionDoc{
		ID:           t.ID.String(),
		UserID:       t.UserID,
		Merchant:     t.Merchant,
		Amount:       t.Amount.StringFixed(2),
		Category:     t.Category,
		Date:         t.Date,
		EmailSubject: t.EmailSubject,
		CreatedAt:    t.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func (r *MongoRepository) Exists(ctx context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error) {
	filter := bson.M{
		"user_id":  userID,
		"merchant": merchant,
		"amount":   amount.StringFixed(2),
		"date":     date,
	}
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking duplicate transaction: %w", err)
	}
	return true, nil
}

func (r *MongoRepository) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	var doc transactionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String(), "user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return docToTransaction(&doc)
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit))
	return r.list(ctx, bson.M{"user_id": userID}, opts)
}

func (r *MongoRepository) ListByMonth(ctx context.Context, userID, month string) ([]Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$regex": primitive.Regex{Pattern: "^" + month}},
	}
	return r.list(ctx, filter, opts)
}

func (r *MongoRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID})
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Transaction, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding transaction: %w", err)
		}
		t, err := docToTransaction(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return out, nil
}

func docToTransaction(doc *transactionDoc) (*Transaction, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction id: %w", err)
	}
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}
	return &Transaction{
		ID:           id,
		UserID:       doc.UserID,
		Merchant:     doc.Merchant,
		Amount:       amount,
		Category:     doc.Category,
		Date:         doc.Date,
		EmailSubject: doc.EmailSubject,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
