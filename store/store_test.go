package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestCollection_AllMissing(t *testing.T) {
	db := NewDB(NewMemory())
	items := Open[item](db, "items")

	_, err := items.All(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCollectionMissing))
}

func TestCollection_MutateSaves(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, Seed(ctx, mem, "items", item{ID: "a"}, item{ID: "b"}))

	items := Open[item](NewDB(mem), "items")
	err := items.Mutate(ctx, func(all []item) ([]item, error) {
		return append(all, item{ID: "c"}), nil
	})
	require.NoError(t, err)

	got, err := items.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestCollection_MutateErrorLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, Seed(ctx, mem, "items", item{ID: "a"}))

	items := Open[item](NewDB(mem), "items")
	boom := errors.New("boom")
	err := items.Mutate(ctx, func(all []item) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := items.All(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCollection_MutateIsSerialised(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, Seed(ctx, mem, "items", item{ID: "counter"}))
	items := Open[item](NewDB(mem), "items")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = items.Mutate(ctx, func(all []item) ([]item, error) {
				all[0].Count++
				return all, nil
			})
		}()
	}
	wg.Wait()

	got, err := items.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers, got[0].Count)
}

func TestMemory_SaveCopiesInput(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	rec := json.RawMessage(`{"id":"a"}`)
	require.NoError(t, mem.Save(ctx, "items", []json.RawMessage{rec}))

	rec[2] = 'X'
	got, err := mem.Load(ctx, "items")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a"}`, string(got[0]))

	names, err := mem.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, names)
}
