package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"blogapi/internal/model"
)

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &model.User{Email: "a@b.com", Username: "alice", Password: "hash"}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@b.com"},
			{Key: "username", Value: "alice"},
			{Key: "password", Value: "hash"},
			{Key: "isAdmin", Value: true},
		}))

		user, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "alice", user.Username)
		assert.True(mt, user.IsAdmin)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		user, err := repo.FindByEmail(context.Background(), "nobody@b.com")
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
		assert.Nil(mt, user)
	})
}

func TestUserRepository_FindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("batch", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: alice}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: bob}, {Key: "username", Value: "bob"}},
		))

		users, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{alice, bob})
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "alice", users[0].Username)
		assert.Equal(mt, "bob", users[1].Username)
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		users, err := repo.FindByIDs(context.Background(), nil)
		assert.NoError(mt, err)
		assert.Empty(mt, users)
	})
}

func TestUserRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &model.User{ID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
