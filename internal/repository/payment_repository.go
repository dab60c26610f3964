package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/sports-academy-api/internal/models"
)

// PaymentRepository provides access to the payments collection. Payments
// are append-only; Delete exists solely for checkout compensation.
type PaymentRepository struct {
	col *mongo.Collection
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection("payments")}
}

// Create inserts a payment record.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if _, err := r.col.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// Delete removes a payment record during compensation.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByEmail returns a student's payments, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"email": email})
}

// List returns every payment, newest first. Used by the admin export.
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}
