package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/i474232898/weather-assistant/internal/weather"
)

var (
	// ErrNotFound is returned when no record exists for a given city.
	ErrNotFound = errors.New("no weather data for city")
)

// MemoryStore is a concurrency-safe in-memory implementation of a weather store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city, value: record
	data map[string]weather.Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]weather.Record),
	}
}

// GetAll returns all records ordered by city.
func (s *MemoryStore) GetAll(_ context.Context) ([]weather.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]weather.Record, 0, len(s.data))
	for _, rec := range s.data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].City < records[j].City })
	return records, nil
}

// Get returns the record for city.
func (s *MemoryStore) Get(_ context.Context, city string) (weather.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[city]
	if !ok {
		return weather.Record{}, ErrNotFound
	}
	return rec, nil
}

// Merge applies the present fields of update to the record for city.
func (s *MemoryStore) Merge(_ context.Context, city string, update weather.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	update.City = city
	s.data[city] = update.ApplyTo(s.data[city])
	return nil
}

// Delete removes the record for city if present.
func (s *MemoryStore) Delete(_ context.Context, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, city)
	return nil
}

// Clear removes every record.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]weather.Record)
	return nil
}
