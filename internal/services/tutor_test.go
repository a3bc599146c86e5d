package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func tutorDoc(email string, postedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "tutorEmail", Value: email},
		{Key: "status", Value: "Pending"},
		{Key: "postedAt", Value: primitive.NewDateTimeFromTime(postedAt)},
	}
}

func TestTutorListNewestFirst(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		now := time.Now()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tutors", mtest.FirstBatch,
			tutorDoc("new@x.com", now),
			tutorDoc("old@x.com", now.Add(-time.Hour)),
		))

		tutors, err := NewTutorService(mt.DB).List(context.Background())
		require.NoError(mt, err)
		requireSortNewestFirst(mt)

		require.Len(mt, tutors, 2)
		assert.Equal(mt, "new@x.com", tutors[0].TutorEmail)
		assert.True(mt, tutors[0].PostedAt.After(tutors[1].PostedAt))
	})

	mt.Run("applications view", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tutors", mtest.FirstBatch,
			tutorDoc("a@x.com", time.Now()),
		))

		_, err := NewTutorService(mt.DB).ListByEmail(context.Background(), "a@x.com")
		require.NoError(mt, err)
		requireSortNewestFirst(mt)
	})
}

func TestTutorListEmptyIsNotNil(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tutors", mtest.FirstBatch))

		tutors, err := NewTutorService(mt.DB).List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, tutors)
		assert.Empty(mt, tutors)
	})
}
