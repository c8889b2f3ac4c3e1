package memstore

import (
	"context"
	"errors"
	"sync"
)

type object struct {
	data        []byte
	contentType string
}

// Store guarda objetos en memoria. Para dev y tests.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object

	// Err, si no es nil, hace fallar todos los Put.
	Err error
}

func New() *Store {
	return &Store{objects: map[string]object{}}
}

func (s *Store) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("memstore: empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.objects[key] = object{data: append([]byte(nil), data...), contentType: contentType}
	return "mem://" + key, nil
}

// Get devuelve el objeto y su content type.
func (s *Store) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), o.data...), o.contentType, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
