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

func tuitionDoc(email string, postedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "studentEmail", Value: email},
		{Key: "subject", Value: "Math"},
		{Key: "status", Value: "Pending"},
		{Key: "postedAt", Value: primitive.NewDateTimeFromTime(postedAt)},
	}
}

// requireSortNewestFirst asserts the issued find command asked for
// postedAt descending.
func requireSortNewestFirst(mt *mtest.T) {
	mt.Helper()

	started := mt.GetStartedEvent()
	require.NotNil(mt, started)
	require.Equal(mt, "find", started.CommandName)

	sort, err := started.Command.LookupErr("sort")
	require.NoError(mt, err, "find command carries no sort")
	direction, ok := sort.Document().Lookup("postedAt").AsInt64OK()
	require.True(mt, ok)
	assert.EqualValues(mt, -1, direction)
}

func TestTuitionListNewestFirst(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		now := time.Now()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tuitions", mtest.FirstBatch,
			tuitionDoc("new@x.com", now),
			tuitionDoc("old@x.com", now.Add(-time.Hour)),
		))

		tuitions, err := NewTuitionService(mt.DB).List(context.Background())
		require.NoError(mt, err)
		requireSortNewestFirst(mt)

		require.Len(mt, tuitions, 2)
		assert.Equal(mt, "new@x.com", tuitions[0].StudentEmail)
		assert.True(mt, tuitions[0].PostedAt.After(tuitions[1].PostedAt))
	})

	mt.Run("filtered by student", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tuitions", mtest.FirstBatch,
			tuitionDoc("a@x.com", time.Now()),
		))

		_, err := NewTuitionService(mt.DB).ListByStudent(context.Background(), "a@x.com")
		require.NoError(mt, err)
		requireSortNewestFirst(mt)
	})

	mt.Run("pending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tuitions", mtest.FirstBatch))

		_, err := NewTuitionService(mt.DB).ListPending(context.Background())
		require.NoError(mt, err)
		requireSortNewestFirst(mt)
	})
}

func TestTuitionListEmptyIsNotNil(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.tuitions", mtest.FirstBatch))

		tuitions, err := NewTuitionService(mt.DB).List(context.Background())
		require.NoError(mt, err)
		// []  on the wire, not null
		assert.NotNil(mt, tuitions)
		assert.Empty(mt, tuitions)
	})
}
