package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps each collection as one JSON object in a storage bucket:
// <bucket>/<prefix>/<collection>.json
type SupabaseStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewSupabaseStore builds a store against the Supabase storage API.
func NewSupabaseStore(supabaseURL, key, bucket, prefix string) *SupabaseStore {
	client := storage.NewClient(strings.TrimRight(supabaseURL, "/")+"/storage/v1", key, nil)
	return &SupabaseStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *SupabaseStore) objectPath(collection string) string {
	return path.Join(s.prefix, collection+".json")
}

// Load implements Store.
func (s *SupabaseStore) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	objectPath := s.objectPath(collection)
	data, err := s.client.DownloadFile(s.bucket, objectPath)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, fmt.Errorf("%s/%s: %w", s.bucket, objectPath, ErrCollectionMissing)
		}
		return nil, fmt.Errorf("download %s/%s: %w", s.bucket, objectPath, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", s.bucket, objectPath, err)
	}
	return records, nil
}

// Save implements Store by upserting the collection object.
func (s *SupabaseStore) Save(_ context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	contentType := "application/json"
	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	objectPath := s.objectPath(collection)
	if _, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), options); err != nil {
		return fmt.Errorf("upload %s/%s: %w", s.bucket, objectPath, err)
	}
	return nil
}

// Names implements Lister from the objects under the prefix.
func (s *SupabaseStore) Names(_ context.Context) ([]string, error) {
	objects, err := s.client.ListFiles(s.bucket, s.prefix, storage.FileSearchOptions{Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", s.bucket, s.prefix, err)
	}
	var names []string
	for _, o := range objects {
		if name, ok := strings.CutSuffix(o.Name, ".json"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
