package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/sports-academy-api/internal/models"
)

// EnrollmentRepository provides access to the enrolledClasses collection.
type EnrollmentRepository struct {
	col *mongo.Collection
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{col: db.Collection("enrolledClasses")}
}

// Create inserts an enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.EnrolledClass) error {
	if _, err := r.col.InsertOne(ctx, enrollment); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// Delete removes an enrollment during checkout compensation.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByEmail returns a student's enrollments, newest first.
func (r *EnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	opts := options.Find().SetSort(bson.D{{Key: "enrolledAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	var enrollments []models.EnrolledClass
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}
	return enrollments, nil
}

// Exists reports whether the student is already enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, email, classID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email, "classId": classID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count enrollments: %w", err)
	}
	return count > 0, nil
}
