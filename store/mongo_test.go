package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func listCollectionsResponse(names ...string) bson.D {
	docs := make([]bson.D, 0, len(names))
	for _, n := range names {
		docs = append(docs, bson.D{{Key: "name", Value: n}, {Key: "type", Value: "collection"}})
	}
	return mtest.CreateCursorResponse(0, "elearning.$cmd.listCollections", mtest.FirstBatch, docs...)
}

func startedCommands(mt *mtest.T) []string {
	var names []string
	for _, ev := range mt.GetAllStartedEvents() {
		names = append(names, ev.CommandName)
	}
	return names
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("load strips bookkeeping fields", func(mt *mtest.T) {
		s := NewMongoStoreFromClient(mt.Client, "elearning")
		mt.AddMockResponses(
			listCollectionsResponse("routes"),
			mtest.CreateCursorResponse(0, "elearning.routes", mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: primitive.NewObjectID()},
					{Key: "id_route", Value: "r1"},
					{Key: "name", Value: "Backend"},
					{Key: seqField, Value: int32(0)},
				},
				bson.D{
					{Key: "_id", Value: primitive.NewObjectID()},
					{Key: "id_route", Value: "r2"},
					{Key: "name", Value: "Frontend"},
					{Key: seqField, Value: int32(1)},
				},
			),
		)

		got, err := s.Load(context.Background(), "routes")
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.JSONEq(mt, `{"id_route":"r1","name":"Backend"}`, string(got[0]))
		assert.JSONEq(mt, `{"id_route":"r2","name":"Frontend"}`, string(got[1]))
	})

	mt.Run("load missing collection", func(mt *mtest.T) {
		s := NewMongoStoreFromClient(mt.Client, "elearning")
		mt.AddMockResponses(listCollectionsResponse())

		_, err := s.Load(context.Background(), "routes")
		assert.ErrorIs(mt, err, ErrCollectionMissing)
	})

	mt.Run("save replaces documents", func(mt *mtest.T) {
		s := NewMongoStoreFromClient(mt.Client, "elearning")
		mt.AddMockResponses(
			listCollectionsResponse("routes"),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		records := []json.RawMessage{json.RawMessage(`{"id_route":"r1"}`)}
		require.NoError(mt, s.Save(context.Background(), "routes", records))
		assert.Equal(mt, []string{"listCollections", "delete", "insert"}, startedCommands(mt))
	})

	mt.Run("save creates a missing collection", func(mt *mtest.T) {
		s := NewMongoStoreFromClient(mt.Client, "elearning")
		mt.AddMockResponses(
			listCollectionsResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, s.Save(context.Background(), "forums", nil))
		assert.Equal(mt, []string{"listCollections", "create", "delete"}, startedCommands(mt))
	})

	mt.Run("save rejects records that are not objects", func(mt *mtest.T) {
		s := NewMongoStoreFromClient(mt.Client, "elearning")

		err := s.Save(context.Background(), "routes", []json.RawMessage{json.RawMessage(`[1,2]`)})
		assert.Error(mt, err)
		assert.Empty(mt, startedCommands(mt))
	})
}
