package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/internal/infrastructure/storage"
)

// barrierStore holds the first n list reads until all of them have happened,
// so every writer starts from the same list generation.
type barrierStore struct {
	*storage.MemoryStore
	mu      sync.Mutex
	pending int
	release chan struct{}
}

func newBarrierStore(n int) *barrierStore {
	return &barrierStore{
		MemoryStore: storage.NewMemoryStore("https://storage.example.com/bucket"),
		pending:     n,
		release:     make(chan struct{}),
	}
}

func (s *barrierStore) Get(ctx context.Context, key string) (*repository.Object, error) {
	obj, err := s.MemoryStore.Get(ctx, key)
	if strings.HasSuffix(key, "list.json") {
		s.mu.Lock()
		waiting := s.pending > 0
		if waiting {
			s.pending--
			if s.pending == 0 {
				close(s.release)
			}
		}
		s.mu.Unlock()
		if waiting {
			<-s.release
		}
	}
	return obj, err
}

func record(id string) []byte {
	return []byte(fmt.Sprintf(`{"id":%q,"url":"https://img/%s.png","createdAt":"2024-03-09T14:30:15Z"}`, id, id))
}

func TestAppendAndList(t *testing.T) {
	store := storage.NewMemoryStore("https://storage.example.com/bucket")
	repo := NewObjectProfileRepository(store, 5)
	ctx := context.Background()

	list, err := repo.List(ctx, "user-1", entity.CategoryGeneratedImages)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Append(ctx, "user-1", entity.CategoryGeneratedImages, "a", record("a")))
	require.NoError(t, repo.Append(ctx, "user-1", entity.CategoryGeneratedImages, "b", record("b")))

	list, err = repo.List(ctx, "user-1", entity.CategoryGeneratedImages)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", gjson.GetBytes(list[0], "id").String())
	assert.Equal(t, "b", gjson.GetBytes(list[1], "id").String())

	obj, err := store.Get(ctx, "user-1/data/gen_images/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(record("a")), string(obj.Data))
}

func TestAppendIsIdempotentPerID(t *testing.T) {
	repo := NewObjectProfileRepository(storage.NewMemoryStore(""), 5)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "user-1", entity.CategoryTexts, "a", record("a")))
	require.NoError(t, repo.Append(ctx, "user-1", entity.CategoryTexts, "a", record("a")))

	list, err := repo.List(ctx, "user-1", entity.CategoryTexts)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestConcurrentAppendsBothSurvive(t *testing.T) {
	store := newBarrierStore(2)
	repo := NewObjectProfileRepository(store, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{"first", "second"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = repo.Append(ctx, "user-1", entity.CategoryDesigns, id, record(id))
		}(i, id)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	list, err := repo.List(ctx, "user-1", entity.CategoryDesigns)
	require.NoError(t, err)
	ids := []string{}
	for _, raw := range list {
		ids = append(ids, gjson.GetBytes(raw, "id").String())
	}
	assert.ElementsMatch(t, []string{"first", "second"}, ids)
}

func TestListMalformed(t *testing.T) {
	store := storage.NewMemoryStore("")
	ctx := context.Background()
	_, err := store.Put(ctx, "user-1/data/orders/list.json", []byte(`{"not":"a list"}`), "application/json", repository.PutOptions{})
	require.NoError(t, err)

	_, err = NewObjectProfileRepository(store, 5).List(ctx, "user-1", entity.CategoryOrders)
	assert.Error(t, err)
}

func TestAppendRejectsInvalidJSON(t *testing.T) {
	repo := NewObjectProfileRepository(storage.NewMemoryStore(""), 5)
	err := repo.Append(context.Background(), "user-1", entity.CategoryOrders, "x", []byte("{"))
	assert.Error(t, err)
}

func TestAppendGivesUpAfterRetries(t *testing.T) {
	store := &conflictStore{MemoryStore: storage.NewMemoryStore("")}
	repo := NewObjectProfileRepository(store, 3)

	err := repo.Append(context.Background(), "user-1", entity.CategoryOrders, "x", record("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPreconditionFailed)
	assert.Equal(t, 3, store.listWrites)
}

// conflictStore rejects every conditional write.
type conflictStore struct {
	*storage.MemoryStore
	listWrites int
}

func (s *conflictStore) Put(ctx context.Context, key string, data []byte, contentType string, opts repository.PutOptions) (int64, error) {
	if opts.IfGeneration != nil {
		s.listWrites++
		return 0, repository.ErrPreconditionFailed
	}
	return s.MemoryStore.Put(ctx, key, data, contentType, opts)
}

func TestProfileRecordsDecode(t *testing.T) {
	repo := NewObjectProfileRepository(storage.NewMemoryStore(""), 5)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, "user-1", entity.CategoryGeneratedImages, "a", record("a")))

	list, err := repo.List(ctx, "user-1", entity.CategoryGeneratedImages)
	require.NoError(t, err)

	var img entity.GeneratedImage
	require.NoError(t, json.Unmarshal(list[0], &img))
	assert.Equal(t, "a", img.ID)
	assert.Equal(t, 2024, img.CreatedAt.Year())
}
