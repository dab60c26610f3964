package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/sports-academy-api/internal/models"
)

// ClassRepository provides access to the classes collection, including
// the conditional seat-counter updates the checkout workflow depends on.
type ClassRepository struct {
	col *mongo.Collection
}

// NewClassRepository creates a new instance of ClassRepository.
func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection("classes")}
}

// Create inserts a new class offering.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassOffering) error {
	if _, err := r.col.InsertOne(ctx, class); err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

// FindByID returns a class offering by identifier.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassOffering, error) {
	var class models.ClassOffering
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&class); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find class by id: %w", err)
	}
	return &class, nil
}

// List returns every class offering in insertion order.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassOffering, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// ListByStatus returns offerings in the given lifecycle status.
func (r *ClassRepository) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.ClassOffering, error) {
	return r.find(ctx, bson.M{"status": status}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// TopByEnrollment returns offerings ordered by enrolled count descending,
// ties broken by insertion order.
func (r *ClassRepository) TopByEnrollment(ctx context.Context, limit int) ([]models.ClassOffering, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "enrolledCount", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

// UpdateStatus sets the lifecycle status. Returns mongo.ErrNoDocuments
// when the id does not exist.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update class status: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetFeedback upserts the feedback field on an existing offering.
func (r *ClassRepository) SetFeedback(ctx context.Context, id, feedback string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return fmt.Errorf("set class feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReserveSeat atomically claims one seat: the decrement only applies while
// availableSeats > 0, so concurrent checkouts cannot oversell the last
// seat. Returns mongo.ErrNoDocuments when no seat could be claimed.
func (r *ClassRepository) ReserveSeat(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "availableSeats": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"availableSeats": -1, "enrolledCount": 1}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReleaseSeat undoes a reservation during checkout compensation.
func (r *ClassRepository) ReleaseSeat(ctx context.Context, id string) error {
	update := bson.M{"$inc": bson.M{"availableSeats": 1, "enrolledCount": -1}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ClassRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.ClassOffering, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []models.ClassOffering
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return classes, nil
}
