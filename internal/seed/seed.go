package seed

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-assistant/internal/weather"
)

var validate = validator.New()

// File is the on-disk layout of a seed file.
type File struct {
	Cities []weather.Record `yaml:"cities" validate:"required,min=1,dive"`
}

// DefaultRecords returns the built-in demo cities.
func DefaultRecords() []weather.Record {
	return []weather.Record{
		{City: "Toronto", Temperature: "15°C", Condition: "Sunny", High: "18°C", Low: "10°C"},
		{City: "New York", Temperature: "20°C", Condition: "Partly Cloudy", High: "23°C", Low: "16°C"},
		{City: "London", Temperature: "10°C", Condition: "Rainy", High: "13°C", Low: "7°C"},
		{City: "Sydney", Temperature: "25°C", Condition: "Sunny", High: "27°C", Low: "22°C"},
		{City: "Tokyo", Temperature: "22°C", Condition: "Cloudy", High: "25°C", Low: "18°C"},
		{City: "Mumbai", Temperature: "30°C", Condition: "Sunny", High: "34°C", Low: "26°C"},
		{City: "Shanghai", Temperature: "19°C", Condition: "Rainy", High: "22°C", Low: "16°C"},
		{City: "Istanbul", Temperature: "16°C", Condition: "Cloudy", High: "20°C", Low: "13°C"},
		{City: "Cairo", Temperature: "35°C", Condition: "Sunny", High: "38°C", Low: "22°C"},
		{City: "Buenos Aires", Temperature: "17°C", Condition: "Cloudy", High: "20°C", Low: "14°C"},
		{City: "Los Angeles", Temperature: "28°C", Condition: "Sunny", High: "30°C", Low: "21°C"},
		{City: "Paris", Temperature: "12°C", Condition: "Rainy", High: "15°C", Low: "8°C"},
		{City: "Berlin", Temperature: "14°C", Condition: "Cloudy", High: "18°C", Low: "9°C"},
		{City: "Madrid", Temperature: "23°C", Condition: "Sunny", High: "29°C", Low: "16°C"},
		{City: "Bangkok", Temperature: "34°C", Condition: "Cloudy", High: "36°C", Low: "28°C"},
		{City: "Jakarta", Temperature: "32°C", Condition: "Rainy", High: "35°C", Low: "26°C"},
		{City: "São Paulo", Temperature: "19°C", Condition: "Rainy", High: "21°C", Low: "16°C"},
		{City: "Moscow", Temperature: "5°C", Condition: "Snowy", High: "7°C", Low: "-1°C"},
		{City: "Seoul", Temperature: "11°C", Condition: "Windy", High: "14°C", Low: "7°C"},
		{City: "Beijing", Temperature: "15°C", Condition: "Clear", High: "17°C", Low: "10°C"},
	}
}

// LoadFile reads seed records from a YAML file.
func LoadFile(path string) ([]weather.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML seed data.
func Parse(data []byte) ([]weather.Record, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return f.Cities, nil
}

// Seeder resets a store to a known set of records.
type Seeder struct {
	store   weather.Store
	records []weather.Record
}

// New creates a Seeder. A nil records slice selects DefaultRecords.
func New(store weather.Store, records []weather.Record) *Seeder {
	if records == nil {
		records = DefaultRecords()
	}
	return &Seeder{store: store, records: records}
}

// Run clears the store and writes every record. It returns how many were written.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	if err := s.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear weather records: %w", err)
	}
	log.Println("INFO: cleared weather records")

	for i, rec := range s.records {
		if err := s.store.Merge(ctx, rec.City, weather.UpdateFromRecord(rec)); err != nil {
			return i, fmt.Errorf("seed %s: %w", rec.City, err)
		}
	}
	log.Printf("INFO: seeded %d cities", len(s.records))
	return len(s.records), nil
}
