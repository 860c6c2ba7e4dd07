package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fairshoppe/internal/domain/repository"
)

// MemoryStore is an ObjectStore with GCS-like generation semantics, used for
// local development (PROFILE_BACKEND=memory) and tests.
type MemoryStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]repository.Object
	public  map[string]bool
	nextGen int64
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]repository.Object),
		public:  make(map[string]bool),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (*repository.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}

	data := make([]byte, len(obj.Data))
	copy(data, obj.Data)
	obj.Data = data
	return &obj, nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string, opts repository.PutOptions) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.objects[key]
	if opts.IfGeneration != nil {
		want := *opts.IfGeneration
		if want == 0 && exists {
			return 0, repository.ErrPreconditionFailed
		}
		if want != 0 && (!exists || current.Generation != want) {
			return 0, repository.ErrPreconditionFailed
		}
	}

	m.nextGen++
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = repository.Object{
		Key:         key,
		Data:        stored,
		ContentType: contentType,
		Generation:  m.nextGen,
	}
	return m.nextGen, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", m.baseURL, key)
}

func (m *MemoryStore) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %v", err)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionFor(fileType))
	if _, err := m.Put(ctx, key, data, fileType, repository.PutOptions{}); err != nil {
		return "", err
	}
	if isPublic {
		m.mu.Lock()
		m.public[key] = true
		m.mu.Unlock()
	}
	return m.PublicURL(key), nil
}

// GetPublic returns an object stored through UploadFile with isPublic set.
// Profile and user documents are never readable this way.
func (m *MemoryStore) GetPublic(ctx context.Context, key string) (*repository.Object, error) {
	m.mu.Lock()
	public := m.public[key]
	m.mu.Unlock()

	if !public {
		return nil, repository.ErrObjectNotFound
	}
	return m.Get(ctx, key)
}

func (m *MemoryStore) DeleteFile(ctx context.Context, fileURL string) error {
	key := strings.TrimPrefix(fileURL, m.baseURL+"/")

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return repository.ErrObjectNotFound
	}
	delete(m.objects, key)
	delete(m.public, key)
	return nil
}

// Keys lists stored keys with the given prefix.
func (m *MemoryStore) Keys(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *MemoryStore) Close() error {
	return nil
}
