package paymentRepo

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

func TestInsertPayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Stored", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoPaymentRepo(mt.DB)

		require.NoError(mt, repo.Insert(context.Background(), &models.Payment{TransactionID: "pi_1"}))
	})

	mt.Run("DuplicateTransaction", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: payments index: transactionId_1",
		}))
		repo := NewMongoPaymentRepo(mt.DB)

		err := repo.Insert(context.Background(), &models.Payment{TransactionID: "pi_1"})
		assert.ErrorIs(mt, err, database.ErrDuplicate)
	})
}

func TestGetByTransactionID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Found", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".payments"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "transactionId", Value: "pi_1"},
			{Key: "bookingId", Value: "b1"},
		}))
		repo := NewMongoPaymentRepo(mt.DB)

		p, err := repo.GetByTransactionID(context.Background(), "pi_1")
		require.NoError(mt, err)
		assert.Equal(mt, "b1", p.BookingID)
	})

	mt.Run("Missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".payments"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoPaymentRepo(mt.DB)

		_, err := repo.GetByTransactionID(context.Background(), "pi_2")
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}
