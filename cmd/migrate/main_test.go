package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/store"
)

func TestCopyCollections(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()

	src, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, src.Save(ctx, store.Categories, []json.RawMessage{json.RawMessage(`{"id_category":"cat1"}`)}))
	require.NoError(t, src.Save(ctx, store.Routes, nil))

	dst := store.NewMemory()
	n, err := copyCollections(ctx, src, dst, false, log)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := dst.Load(ctx, store.Categories)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id_category":"cat1"}`, string(got[0]))
}

func TestCopyCollections_DryRun(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()

	src := store.NewMemory()
	require.NoError(t, src.Save(ctx, store.Blogs, nil))
	dst := store.NewMemory()

	n, err := copyCollections(ctx, src, dst, true, log)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	names, err := dst.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}
