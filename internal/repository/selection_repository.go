package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/sports-academy-api/internal/models"
)

// SelectionRepository provides access to the selectedClasses collection.
type SelectionRepository struct {
	col *mongo.Collection
}

// NewSelectionRepository creates a new instance of SelectionRepository.
func NewSelectionRepository(db *mongo.Database) *SelectionRepository {
	return &SelectionRepository{col: db.Collection("selectedClasses")}
}

// Create inserts a new selection.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.SelectedClass) error {
	if _, err := r.col.InsertOne(ctx, selection); err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	return nil
}

// FindByID returns a selection by identifier.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	var selection models.SelectedClass
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&selection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &selection, nil
}

// ListByEmail returns the caller's cart, newest first.
func (r *SelectionRepository) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer cursor.Close(ctx)

	var selections []models.SelectedClass
	if err := cursor.All(ctx, &selections); err != nil {
		return nil, fmt.Errorf("decode selections: %w", err)
	}
	return selections, nil
}

// Exists reports whether the student already has the class in their cart.
func (r *SelectionRepository) Exists(ctx context.Context, email, classID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email, "classId": classID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count selections: %w", err)
	}
	return count > 0, nil
}

// Delete removes a selection. Returns mongo.ErrNoDocuments when absent.
func (r *SelectionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TakeByID atomically removes and returns the selection. This single
// conditional delete is the linearization point of the checkout: of two
// concurrent checkouts on the same id, exactly one gets the document and
// the other observes mongo.ErrNoDocuments.
func (r *SelectionRepository) TakeByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	var selection models.SelectedClass
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&selection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("take selection: %w", err)
	}
	return &selection, nil
}
