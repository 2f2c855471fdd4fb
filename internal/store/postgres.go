package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i474232898/weather-assistant/internal/weather"
)

// PostgresStore keeps weather records in the weather_records table, one row per city.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ConnectPostgres opens a pool for databaseURL and verifies the connection.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is not configured")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresStore(pool), nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
		log.Println("INFO: postgres pool closed")
	}
}

const selectColumns = `city, COALESCE(temperature, ''), COALESCE(high, ''), COALESCE(low, ''), COALESCE(condition, '')`

// GetAll returns all records ordered by city.
func (s *PostgresStore) GetAll(ctx context.Context) ([]weather.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM weather_records ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather records: %w", err)
	}
	defer rows.Close()

	records := make([]weather.Record, 0)
	for rows.Next() {
		var rec weather.Record
		if err := rows.Scan(&rec.City, &rec.Temperature, &rec.High, &rec.Low, &rec.Condition); err != nil {
			return nil, fmt.Errorf("failed to scan weather record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weather records: %w", err)
	}
	return records, nil
}

// Get returns the record for city.
func (s *PostgresStore) Get(ctx context.Context, city string) (weather.Record, error) {
	var rec weather.Record
	err := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM weather_records WHERE city = $1`, city).
		Scan(&rec.City, &rec.Temperature, &rec.High, &rec.Low, &rec.Condition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return weather.Record{}, ErrNotFound
		}
		return weather.Record{}, fmt.Errorf("failed to get weather for %s: %w", city, err)
	}
	return rec, nil
}

// Merge upserts the row for city. Absent fields are sent as NULL and keep their stored value.
func (s *PostgresStore) Merge(ctx context.Context, city string, update weather.Update) error {
	query := `
		INSERT INTO weather_records (city, temperature, high, low, condition)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (city)
		DO UPDATE SET
			temperature = COALESCE(EXCLUDED.temperature, weather_records.temperature),
			high = COALESCE(EXCLUDED.high, weather_records.high),
			low = COALESCE(EXCLUDED.low, weather_records.low),
			condition = COALESCE(EXCLUDED.condition, weather_records.condition),
			updated_at = NOW()
	`
	_, err := s.pool.Exec(ctx, query,
		city,
		nullable(update.Temperature),
		nullable(update.High),
		nullable(update.Low),
		nullable(update.Condition),
	)
	if err != nil {
		return fmt.Errorf("failed to merge weather for %s: %w", city, err)
	}
	return nil
}

// Delete removes the row for city. Zero affected rows is not an error.
func (s *PostgresStore) Delete(ctx context.Context, city string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM weather_records WHERE city = $1`, city); err != nil {
		return fmt.Errorf("failed to delete weather for %s: %w", city, err)
	}
	return nil
}

// Clear removes every row.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM weather_records`); err != nil {
		return fmt.Errorf("failed to clear weather records: %w", err)
	}
	return nil
}

func nullable(f weather.Field) *string {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}
