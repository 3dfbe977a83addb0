package userRepo

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

func TestSetFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Updated", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewMongoUserRepo(mt.DB)

		n, err := repo.SetFieldsByEmail(context.Background(), "a@x.com", bson.M{"name": "A"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("NoMatch", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewMongoUserRepo(mt.DB)

		_, err := repo.SetFields(context.Background(), "missing", bson.M{"name": "A"})
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("NoMatch", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMongoUserRepo(mt.DB)

		_, err := repo.DeleteByEmail(context.Background(), "missing@x.com")
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}

func TestCreateIfAbsent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "u1"}}}},
		))
		repo := NewMongoUserRepo(mt.DB)

		created, err := repo.CreateIfAbsent(context.Background(), &models.User{Email: "a@x.com"})
		require.NoError(mt, err)
		assert.True(mt, created)
	})

	mt.Run("AlreadyRegistered", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewMongoUserRepo(mt.DB)

		created, err := repo.CreateIfAbsent(context.Background(), &models.User{Email: "a@x.com"})
		require.NoError(mt, err)
		assert.False(mt, created)
	})
}
