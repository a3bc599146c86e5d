package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TutorService struct {
	collection *mongo.Collection
}

func NewTutorService(db *mongo.Database) *TutorService {
	return &TutorService{collection: db.Collection("tutors")}
}

func (s *TutorService) Create(ctx context.Context, tutor *models.Tutor) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tutor.ID = primitive.NewObjectID()
	tutor.PostedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, tutor)
	if err != nil {
		return "", fmt.Errorf("failed to insert tutor: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *TutorService) List(ctx context.Context) ([]models.Tutor, error) {
	return s.find(ctx, bson.M{})
}

// ListByEmail filters by tutorEmail; this backs both the tutor's own
// profile listing and the /applications view.
func (s *TutorService) ListByEmail(ctx context.Context, email string) ([]models.Tutor, error) {
	filter := bson.M{}
	if email != "" {
		filter["tutorEmail"] = email
	}
	return s.find(ctx, filter)
}

func (s *TutorService) find(ctx context.Context, filter bson.M) ([]models.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"postedAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tutors: %w", err)
	}

	// non-nil so an empty listing encodes as [] rather than null
	tutors := []models.Tutor{}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &tutors); err != nil {
		return nil, fmt.Errorf("failed to decode tutors: %w", err)
	}

	return tutors, nil
}

func (s *TutorService) Get(ctx context.Context, id string) (*models.Tutor, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tutor models.Tutor
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tutor)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tutor: %w", err)
	}

	return &tutor, nil
}

func (s *TutorService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	delete(fields, "_id")
	delete(fields, "id")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update tutor: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *TutorService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete tutor: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *TutorService) SetStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{"status": status}
	if status == models.StatusApproved {
		update["approvedAt"] = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update tutor status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
