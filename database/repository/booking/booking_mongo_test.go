package bookingRepo

import (
	"context"
	"testing"

	"styledecor/database"
	"styledecor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpdateIfStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	fields := bson.M{"status": models.StatusAssigned}

	mt.Run("Applied", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewMongoBookingRepo(mt.DB)

		n, err := repo.UpdateIfStatus(context.Background(), "b1", models.StatusRequested, fields)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("StatusMoved", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".bookings"
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)
		repo := NewMongoBookingRepo(mt.DB)

		_, err := repo.UpdateIfStatus(context.Background(), "b1", models.StatusRequested, fields)
		assert.ErrorIs(mt, err, database.ErrConflict)
	})

	mt.Run("Missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".bookings"
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)
		repo := NewMongoBookingRepo(mt.DB)

		_, err := repo.UpdateIfStatus(context.Background(), "nope", models.StatusRequested, fields)
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})

	mt.Run("ServerError", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad update",
		}))
		repo := NewMongoBookingRepo(mt.DB)

		_, err := repo.UpdateIfStatus(context.Background(), "b1", models.StatusRequested, fields)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, database.ErrConflict)
		assert.NotErrorIs(mt, err, database.ErrNotFound)
	})
}

func TestCreateDuplicateBooking(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("DuplicateID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: bookings index: id_1",
		}))
		repo := NewMongoBookingRepo(mt.DB)

		err := repo.Create(context.Background(), &models.Booking{ID: "b1", Status: models.StatusRequested})
		assert.ErrorIs(mt, err, database.ErrDuplicate)
	})
}
