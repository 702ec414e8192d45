package split

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

const splitsCollection = "splits"

// MongoRepository stores splits in a MongoDB collection. Amounts are stored
// as fixed two-decimal strings.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(splitsCollection)}
}

// EnsureIndexes creates the unique (user_id, transaction_id) index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "transaction_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating split indexes: %w", err)
	}
	return nil
}

type participantDoc struct {
	Name            string `bson:"name"`
	PhoneNumber     string `bson:"phone_number,omitempty"`
	SharePercentage string `bson:"share_percentage"`
	ShareRatio      int    `bson:"share_ratio"`
	ShareAmount     string `bson:"share_amount"`
	AmountPaid      string `bson:"amount_paid"`
	AmountOwed      string `bson:"amount_owed"`
}

type splitDoc struct {
	ID            string           `bson:"_id"`
	UserID        string           `bson:"user_id"`
	TransactionID string           `bson:"transaction_id"`
	Merchant      string           `bson:"merchant"`
	TotalAmount   string           `bson:"total_amount"`
	Category      string           `bson:"category"`
	Date          string           `bson:"date"`
	SplitMethod   string           `bson:"split_method"`
	Participants  []participantDoc `bson:"participants"`
	Notes         string           `bson:"notes"`
	CreatedAt     time.Time        `bson:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at"`
}

func (r *MongoRepository) Upsert(ctx context.Context, s *Split) error {
	participants := make([]participantDoc, len(s.Participants))
	for i, p := range s.Participants {
		participants[i] = participantDoc{
			Name:            p.Name,
			PhoneNumber:     p.PhoneNumber,
			SharePercentage: p.SharePercentage.StringFixed(2),
			ShareRatio:      p.ShareRatio,
			ShareAmount:     p.ShareAmount.StringFixed(2),
			AmountPaid:      p.AmountPaid.StringFixed(2),
			AmountOwed:      p.AmountOwed.StringFixed(2),
		}
	}

	filter := bson.M{"user_id": s.UserID, "transaction_id": s.TransactionID.String()}
	update := bson.M{
		"$set": bson.M{
			"merchant":     s.Merchant,
			"total_amount": s.TotalAmount.StringFixed(2),
			"category":     s.Category,
			"date":         s.Date,
			"split_method": string(s.Method),
			"participants": participants,
			"notes":        s.Notes,
			"updated_at":   s.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        s.ID.String(),
			"created_at": s.CreatedAt,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting split: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, userID string, transactionID uuid.UUID) (*Split, error) {
	var doc splitDoc
	filter := bson.M{"user_id": userID, "transaction_id": transactionID.String()}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting split: %w", err)
	}
	return docToSplit(&doc)
}

func (r *MongoRepository) Delete(ctx context.Context, userID string, transactionID uuid.UUID) error {
	filter := bson.M{"user_id": userID, "transaction_id": transactionID.String()}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("deleting split: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Split, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing splits: %w", err)
	}
	defer cursor.Close(ctx)

	var splits []Split
	for cursor.Next(ctx) {
		var doc splitDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding split: %w", err)
		}
		s, err := docToSplit(&doc)
		if err != nil {
			return nil, err
		}
		splits = append(splits, *s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating splits: %w", err)
	}
	return splits, nil
}

func docToSplit(doc *splitDoc) (*Split, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing split id: %w", err)
	}
	txID, err := uuid.Parse(doc.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction id: %w", err)
	}
	total, err := decimal.NewFromString(doc.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("parsing total amount: %w", err)
	}

	participants := make([]Participant, len(doc.Participants))
	for i, p := range doc.Participants {
		participants[i] = Participant{
			Name:        p.Name,
			PhoneNumber: p.PhoneNumber,
			ShareRatio:  p.ShareRatio,
		}
		if participants[i].SharePercentage, err = decimal.NewFromString(p.SharePercentage); err != nil {
			return nil, fmt.Errorf("parsing share percentage: %w", err)
		}
		if participants[i].ShareAmount, err = decimal.NewFromString(p.ShareAmount); err != nil {
			return nil, fmt.Errorf("parsing share amount: %w", err)
		}
		if participants[i].AmountPaid, err = decimal.NewFromString(p.AmountPaid); err != nil {
			return nil, fmt.Errorf("parsing amount paid: %w", err)
		}
		if participants[i].AmountOwed, err = decimal.NewFromString(p.AmountOwed); err != nil {
			return nil, fmt.Errorf("parsing amount owed: %w", err)
		}
	}

	return &Split{
		ID:            id,
		UserID:        doc.UserID,
		TransactionID: txID,
		Merchant:      doc.Merchant,
		TotalAmount:   total,
		Category:      doc.Category,
		Date:          doc.Date,
		Method:        Method(doc.SplitMethod),
		Participants:  participants,
		Notes:         doc.Notes,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
