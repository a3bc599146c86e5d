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

type UserService struct {
	collection *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{collection: db.Collection("users")}
}

func (s *UserService) UserList(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	// non-nil so an empty listing encodes as [] rather than null
	users := []models.User{}
	defer cur.Close(ctx)

	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a user unless one already exists for the same email.
// The stored role is always "user" regardless of what the caller sent.
// Returns the inserted id and whether an insert happened.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.collection.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return "", false, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", false, fmt.Errorf("failed to check existing user: %w", err)
	}

	user.ID = primitive.NewObjectID()
	user.Role = models.RoleUser
	user.CreatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), true, nil
}

// RoleByEmail returns the stored role for an email, defaulting to "user"
// when the document or the role field is absent.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.RoleUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}

// SetRole sets the role of the user with the given id.
func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"role":      role,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// FillRole sets the role only when the user document exists and has no
// role yet. Used as the side effect of posting a tuition.
func (s *UserService) FillRole(ctx context.Context, email, role string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"email": email,
		"$or": bson.A{
			bson.M{"role": bson.M{"$exists": false}},
			bson.M{"role": ""},
		},
	}
	_, err := s.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"role":      role,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fill role: %w", err)
	}
	return nil
}

// UpsertRole sets the role on the user document for the email, creating
// the document when absent. Used as the side effect of posting a tutor
// profile.
func (s *UserService) UpsertRole(ctx context.Context, email, role string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"role":      role,
			"updatedAt": time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": time.Now(),
		},
	}
	_, err := s.collection.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert role: %w", err)
	}
	return nil
}

// EnsureAdmin resolves the email to a user document and fails with
// ErrNotAdmin unless that user carries the admin role.
func (s *UserService) EnsureAdmin(ctx context.Context, email string) error {
	if email == "" {
		return ErrNotAdmin
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return ErrNotAdmin
	}
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Role != models.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}
