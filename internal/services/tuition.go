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

type TuitionService struct {
	collection *mongo.Collection
}

func NewTuitionService(db *mongo.Database) *TuitionService {
	return &TuitionService{collection: db.Collection("tuitions")}
}

func (s *TuitionService) Create(ctx context.Context, tuition *models.Tuition) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tuition.ID = primitive.NewObjectID()
	tuition.PostedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, tuition)
	if err != nil {
		return "", fmt.Errorf("failed to insert tuition: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *TuitionService) List(ctx context.Context) ([]models.Tuition, error) {
	return s.find(ctx, bson.M{})
}

// ListByStudent filters by studentEmail; an empty email returns everything.
func (s *TuitionService) ListByStudent(ctx context.Context, email string) ([]models.Tuition, error) {
	filter := bson.M{}
	if email != "" {
		filter["studentEmail"] = email
	}
	return s.find(ctx, filter)
}

func (s *TuitionService) ListPending(ctx context.Context) ([]models.Tuition, error) {
	return s.find(ctx, bson.M{"status": models.StatusPending})
}

func (s *TuitionService) find(ctx context.Context, filter bson.M) ([]models.Tuition, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"postedAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tuitions: %w", err)
	}

	// non-nil so an empty listing encodes as [] rather than null
	tuitions := []models.Tuition{}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &tuitions); err != nil {
		return nil, fmt.Errorf("failed to decode tuitions: %w", err)
	}

	return tuitions, nil
}

func (s *TuitionService) Get(ctx context.Context, id string) (*models.Tuition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tuition models.Tuition
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tuition)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tuition: %w", err)
	}

	return &tuition, nil
}

// Update overwrites the supplied fields on the document. The id fields are
// stripped so a caller cannot rewrite them.
func (s *TuitionService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
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
		return fmt.Errorf("failed to update tuition: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *TuitionService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete tuition: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// SetStatus moves the posting through its lifecycle. Approval also stamps
// approvedAt.
func (s *TuitionService) SetStatus(ctx context.Context, id, status string) error {
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
		return fmt.Errorf("failed to update tuition status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
