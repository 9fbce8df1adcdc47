package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"officeBooker/internal/config"
	"officeBooker/internal/lib/errs"
	"officeBooker/internal/models"
	"officeBooker/internal/storage"
)

const (
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"

	// bookingLockSpace is the first key of the per-office advisory lock.
	bookingLockSpace = 0x0ff1ce
)

type Storage struct {
	DB *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(dbCfg *config.Database) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errs.Storage("storage.postgres.Open", fmt.Errorf("failed to connect to the database: %w", err))
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errs.Storage("storage.postgres.Open", fmt.Errorf("failed to connect to the database: %w", err))
	}

	return db, nil
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	db, err := Open(dbCfg)
	if err != nil {
		return nil, err
	}

	return New(db), nil
}

func New(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back when fn
// returns an error or panics and committed otherwise.
func (s *Storage) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) (err error) {
	const op = "storage.postgres.WithTx"

	tx, err := s.DB.BeginTx(ctx, opts)
	if err != nil {
		return errs.Storage(op, fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			_ = tx.Rollback()
			return
		}

		if cerr := tx.Commit(); cerr != nil {
			err = errs.Storage(op, fmt.Errorf("failed to commit transaction: %w", cerr))
		}
	}()

	return fn(tx)
}

func (s *Storage) IsOfficeAvailable(ctx context.Context, officeNumber int, start, end time.Time) (bool, error) {
	const op = "storage.postgres.IsOfficeAvailable"

	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE office_number = $1
			AND start_time < $3 AND end_time > $2
		)`

	var taken bool
	err := s.DB.QueryRowContext(ctx, query, officeNumber, start, end).Scan(&taken)
	if err != nil {
		return false, errs.Storage(op, fmt.Errorf("failed to check availability: %w", err))
	}

	return !taken, nil
}

// GetOfficeOccupancy returns the earliest booking overlapping [start, end),
// or nil when the window is free.
func (s *Storage) GetOfficeOccupancy(ctx context.Context, officeNumber int, start, end time.Time) (*models.Occupancy, error) {
	const op = "storage.postgres.GetOfficeOccupancy"

	occupancy, err := occupancyOf(ctx, s.DB, officeNumber, start, end)
	if err != nil {
		return nil, errs.Storage(op, err)
	}

	return occupancy, nil
}

// BookOffice inserts the booking if no overlapping row exists. The re-check
// and the insert share one serializable transaction holding a per-office
// advisory lock, so concurrent writers for the same office are serialised.
func (s *Storage) BookOffice(ctx context.Context, booking models.Booking) (int, error) {
	const op = "storage.postgres.BookOffice"

	insertQuery := `
		INSERT INTO bookings (office_number, user_name, user_email, user_phone, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int
	err := s.WithTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, bookingLockSpace, booking.OfficeNumber)
		if err != nil {
			return errs.Storage(op, fmt.Errorf("failed to lock office: %w", err))
		}

		occupancy, err := occupancyOf(ctx, tx, booking.OfficeNumber, booking.StartTime, booking.EndTime)
		if err != nil {
			return errs.Storage(op, err)
		}

		if occupancy != nil {
			return &storage.ConflictError{Occupancy: *occupancy}
		}

		err = tx.QueryRowContext(ctx, insertQuery,
			booking.OfficeNumber,
			booking.UserName,
			booking.UserEmail,
			booking.UserPhone,
			booking.StartTime,
			booking.EndTime,
		).Scan(&id)
		if err != nil {
			return errs.Storage(op, fmt.Errorf("failed to book office: %w", err))
		}

		return nil
	})
	if err != nil {
		if isOverlapRejection(err) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrOfficeOccupied)
		}

		return 0, err
	}

	return id, nil
}

// ListBookings returns the bookings of an office intersecting [from, to),
// ordered by start time.
func (s *Storage) ListBookings(ctx context.Context, officeNumber int, from, to time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	query := `
		SELECT id, office_number, user_name, user_email, user_phone, start_time, end_time
		FROM bookings
		WHERE office_number = $1
		AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC, id ASC`

	rows, err := s.DB.QueryContext(ctx, query, officeNumber, from, to)
	if err != nil {
		return nil, errs.Storage(op, fmt.Errorf("failed to get bookings: %w", err))
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err = rows.Scan(
			&booking.ID,
			&booking.OfficeNumber,
			&booking.UserName,
			&booking.UserEmail,
			&booking.UserPhone,
			&booking.StartTime,
			&booking.EndTime,
		)
		if err != nil {
			return nil, errs.Storage(op, fmt.Errorf("failed to scan booking: %w", err))
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.Storage(op, fmt.Errorf("error iterating bookings: %w", err))
	}

	return bookings, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func occupancyOf(ctx context.Context, q rowQuerier, officeNumber int, start, end time.Time) (*models.Occupancy, error) {
	query := `
		SELECT user_name, start_time, end_time
		FROM bookings
		WHERE office_number = $1
		AND start_time < $3 AND end_time > $2
		ORDER BY start_time ASC, id ASC
		LIMIT 1`

	var occupancy models.Occupancy
	err := q.QueryRowContext(ctx, query, officeNumber, start, end).Scan(
		&occupancy.UserName,
		&occupancy.StartTime,
		&occupancy.EndTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get occupancy: %w", err)
	}

	return &occupancy, nil
}

func isOverlapRejection(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == codeExclusionViolation || pqErr.Code == codeSerializationFailure
}
