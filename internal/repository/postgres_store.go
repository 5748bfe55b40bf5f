package repository

import (
	"database/sql"
	"fmt"

	"concesionaria/internal/db"
	"concesionaria/internal/entities"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same scan code
// serves plain calls and Atomically transactions.
type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// PostgresStore persists bookings in a flat table plus a single-row capacity
// table. Atomically wraps the caller's sequence in a transaction holding a
// table lock, so admission's check-then-commit is serialized across
// processes, not just goroutines.
type PostgresStore struct {
	DB *sql.DB
	q  querier
}

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	make TEXT NOT NULL,
	model TEXT NOT NULL,
	vin CHAR(17) NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS dealership_capacity (
	id SMALLINT PRIMARY KEY CHECK (id = 1),
	capacity INT NOT NULL CHECK (capacity >= 1)
);`

// NewPostgresStore ensures the schema and seeds the capacity row with the
// configured value only if no row exists yet, so restarts do not clobber a
// capacity an operator set at runtime.
func NewPostgresStore(database *sql.DB, initialCapacity int) (*PostgresStore, error) {
	if _, err := database.Exec(schema); err != nil {
		return nil, fmt.Errorf("error creating booking schema: %w", err)
	}
	_, err := database.Exec(
		`INSERT INTO dealership_capacity (id, capacity) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`,
		initialCapacity,
	)
	if err != nil {
		return nil, fmt.Errorf("error seeding dealership capacity: %w", err)
	}
	return &PostgresStore{DB: database, q: database}, nil
}

func (s *PostgresStore) Insert(b entities.Booking) error {
	row := db.BookingRowFromEntity(b)
	_, err := s.q.Exec(`
		INSERT INTO bookings (name, email, phone_number, make, model, vin, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.Name, row.Email, row.PhoneNumber,
		row.Make, row.Model, row.VIN,
		row.StartTime, row.EndTime,
	)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindOverlapping(w entities.TimeWindow) ([]entities.Booking, error) {
	// Inclusive bounds on purpose: bookings touching the window's endpoints
	// count as overlapping.
	return s.queryBookings(`
		SELECT name, email, phone_number, make, model, vin, start_time, end_time
		FROM bookings
		WHERE start_time <= $2 AND end_time >= $1
		ORDER BY id`, w.Start, w.End)
}

func (s *PostgresStore) FindWithin(w entities.TimeWindow) ([]entities.Booking, error) {
	return s.queryBookings(`
		SELECT name, email, phone_number, make, model, vin, start_time, end_time
		FROM bookings
		WHERE start_time >= $1 AND end_time <= $2
		ORDER BY id`, w.Start, w.End)
}

func (s *PostgresStore) FindByVIN(vin string) ([]entities.Booking, error) {
	return s.queryBookings(`
		SELECT name, email, phone_number, make, model, vin, start_time, end_time
		FROM bookings
		WHERE vin = $1
		ORDER BY id`, vin)
}

func (s *PostgresStore) GetCapacity() (int, error) {
	var capacity int
	err := s.q.QueryRow(`SELECT capacity FROM dealership_capacity WHERE id = 1`).Scan(&capacity)
	if err != nil {
		return 0, fmt.Errorf("error reading dealership capacity: %w", err)
	}
	return capacity, nil
}

func (s *PostgresStore) SetCapacity(capacity int) error {
	_, err := s.q.Exec(`UPDATE dealership_capacity SET capacity = $1 WHERE id = 1`, capacity)
	if err != nil {
		return fmt.Errorf("error updating dealership capacity: %w", err)
	}
	return nil
}

func (s *PostgresStore) Atomically(fn func(tx Store) error) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	if _, err := tx.Exec(`LOCK TABLE bookings IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		tx.Rollback()
		return fmt.Errorf("error locking bookings table: %w", err)
	}
	if err := fn(&PostgresStore{DB: s.DB, q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryBookings(query string, args ...interface{}) ([]entities.Booking, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.Booking
	for rows.Next() {
		var row db.BookingRow
		if err := rows.Scan(
			&row.Name, &row.Email, &row.PhoneNumber,
			&row.Make, &row.Model, &row.VIN,
			&row.StartTime, &row.EndTime,
		); err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, row.ToEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}
