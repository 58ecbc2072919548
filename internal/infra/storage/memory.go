package storage

import (
	"context"
	"sync"
)

// Memory keeps transcoded images in process. Used when no bucket is
// configured and in tests.
type Memory struct {
	mu       sync.Mutex
	objects  map[string][]byte
	maxBytes int
}

func NewMemory(maxBytes int) *Memory {
	return &Memory{objects: make(map[string][]byte), maxBytes: maxBytes}
}

func (m *Memory) Put(_ context.Context, folder, payload string) (StoredImage, error) {
	data, err := Transcode(payload, m.maxBytes)
	if err != nil {
		return StoredImage{}, err
	}

	key := objectKey(folder)
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return StoredImage{Key: key, URL: "/media/" + key}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

var _ ImageStorage = (*Memory)(nil)
