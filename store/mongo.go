package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// seqField keeps the stored order of a collection inside Mongo.
const seqField = "_seq"

// MongoStore maps every collection onto a Mongo collection of the same name.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects and pings the primary.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStoreFromClient(client, database), nil
}

// NewMongoStoreFromClient wraps an already connected client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) exists(ctx context.Context, collection string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collection}})
	if err != nil {
		return false, fmt.Errorf("list mongo collections: %w", err)
	}
	return len(names) > 0, nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	ok, err := s.exists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrCollectionMissing)
	}

	opts := options.Find().SetSort(bson.D{{Key: seqField, Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	records := []json.RawMessage{}
	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		clean := make(bson.D, 0, len(doc))
		for _, e := range doc {
			if e.Key == "_id" || e.Key == seqField {
				continue
			}
			clean = append(clean, e)
		}
		data, err := bson.MarshalExtJSON(clean, false, false)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", collection, err)
		}
		records = append(records, data)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return records, nil
}

// Save implements Store by replacing every document of the collection.
func (s *MongoStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(r, false, &doc); err != nil {
			return fmt.Errorf("convert %s[%d]: %w", collection, i, err)
		}
		doc = append(doc, bson.E{Key: seqField, Value: i})
		docs = append(docs, doc)
	}

	ok, err := s.exists(ctx, collection)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.db.CreateCollection(ctx, collection); err != nil {
			return fmt.Errorf("create %s: %w", collection, err)
		}
	}

	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// Names implements Lister.
func (s *MongoStore) Names(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list mongo collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
