package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/models"
	"officeBooker/internal/storage"
)

type Status string

const (
	StatusAvailable     Status = "available"
	StatusOccupied      Status = "occupied"
	StatusUnavailable   Status = "unavailable"
	StatusInvalidOffice Status = "invalid_office"
	StatusInvalidWindow Status = "invalid_window"
	StatusBooked        Status = "booked"
)

const (
	msgInvalidOffice = "Invalid office number. Please choose between 1 and %d."
	msgInvalidWindow = "Start time must be before end time."
	msgUnavailable   = "The office is not available for the specified time."
	msgBooked        = "Office %d has been successfully booked."
	msgAvailable     = "Office %d is available for booking."
	msgOccupied      = "Office %d is occupied by %s from %s until %s."
)

// Result is the outcome of an availability check or booking attempt.
// Known rejections are results, not errors.
type Result struct {
	Status    Status
	Message   string
	Occupancy *models.Occupancy
	BookingID int
}

func (r Result) String() string {
	return r.Message
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OfficeStore
type OfficeStore interface {
	IsOfficeAvailable(ctx context.Context, officeNumber int, start, end time.Time) (bool, error)
	GetOfficeOccupancy(ctx context.Context, officeNumber int, start, end time.Time) (*models.Occupancy, error)
	BookOffice(ctx context.Context, booking models.Booking) (int, error)
	ListBookings(ctx context.Context, officeNumber int, from, to time.Time) ([]models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
}

type Service struct {
	log         *slog.Logger
	store       OfficeStore
	notifier    Notifier
	officeCount int
}

func New(log *slog.Logger, store OfficeStore, notifier Notifier, officeCount int) *Service {
	return &Service{
		log:         log,
		store:       store,
		notifier:    notifier,
		officeCount: officeCount,
	}
}

func (s *Service) IsValidOffice(officeNumber int) bool {
	return officeNumber >= 1 && officeNumber <= s.officeCount
}

func (s *Service) CheckAvailability(ctx context.Context, officeNumber int, start, end time.Time) (Result, error) {
	const op = "services.booking.CheckAvailability"

	log := s.log.With(slog.String("op", op), slog.Int("office_number", officeNumber))

	if res, ok := s.rejectInput(officeNumber, start, end); !ok {
		log.Info("availability check rejected", slog.String("result", string(res.Status)))
		return res, nil
	}

	available, err := s.store.IsOfficeAvailable(ctx, officeNumber, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if available {
		return Result{
			Status:  StatusAvailable,
			Message: fmt.Sprintf(msgAvailable, officeNumber),
		}, nil
	}

	occupancy, err := s.store.GetOfficeOccupancy(ctx, officeNumber, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if occupancy != nil {
		return occupied(officeNumber, *occupancy), nil
	}

	return unavailable(), nil
}

// BookOffice books the office when the window is free and then sends the
// confirmation. Notification failures are logged and do not undo the booking.
func (s *Service) BookOffice(ctx context.Context, req models.Booking) (Result, error) {
	const op = "services.booking.BookOffice"

	log := s.log.With(slog.String("op", op), slog.Int("office_number", req.OfficeNumber))

	if res, ok := s.rejectInput(req.OfficeNumber, req.StartTime, req.EndTime); !ok {
		log.Info("booking rejected", slog.String("result", string(res.Status)))
		return res, nil
	}

	occupancy, err := s.store.GetOfficeOccupancy(ctx, req.OfficeNumber, req.StartTime, req.EndTime)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if occupancy != nil {
		log.Info("office already occupied", slog.String("occupant", occupancy.UserName))
		return occupied(req.OfficeNumber, *occupancy), nil
	}

	id, err := s.store.BookOffice(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrOfficeOccupied) {
			log.Info("office taken by a concurrent booking", sl.Err(err))
			return s.lostRace(ctx, req, err)
		}

		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	req.ID = id

	log.Info("office booked", slog.Int("booking_id", id))

	if err := s.notifier.SendBookingConfirmation(ctx, req); err != nil {
		log.Warn("booking confirmation not fully delivered", sl.Err(err))
	}

	return Result{
		Status:    StatusBooked,
		Message:   fmt.Sprintf(msgBooked, req.OfficeNumber),
		BookingID: id,
	}, nil
}

// ListBookings returns the bookings of an office intersecting [from, to).
func (s *Service) ListBookings(ctx context.Context, officeNumber int, from, to time.Time) ([]models.Booking, error) {
	const op = "services.booking.ListBookings"

	if !s.IsValidOffice(officeNumber) {
		return nil, errs.Validation("office_number", fmt.Sprintf(msgInvalidOffice, s.officeCount))
	}

	if !from.Before(to) {
		return nil, errs.Validation("window", msgInvalidWindow)
	}

	bookings, err := s.store.ListBookings(ctx, officeNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Service) rejectInput(officeNumber int, start, end time.Time) (Result, bool) {
	if !s.IsValidOffice(officeNumber) {
		return Result{
			Status:  StatusInvalidOffice,
			Message: fmt.Sprintf(msgInvalidOffice, s.officeCount),
		}, false
	}

	if !start.Before(end) {
		return Result{
			Status:  StatusInvalidWindow,
			Message: msgInvalidWindow,
		}, false
	}

	return Result{}, true
}

func (s *Service) lostRace(ctx context.Context, req models.Booking, cause error) (Result, error) {
	var conflict *storage.ConflictError
	if errors.As(cause, &conflict) {
		return occupied(req.OfficeNumber, conflict.Occupancy), nil
	}

	occupancy, err := s.store.GetOfficeOccupancy(ctx, req.OfficeNumber, req.StartTime, req.EndTime)
	if err != nil {
		s.log.Warn("failed to resolve occupant after conflict", sl.Err(err))
		return unavailable(), nil
	}

	if occupancy == nil {
		return unavailable(), nil
	}

	return occupied(req.OfficeNumber, *occupancy), nil
}

func occupied(officeNumber int, o models.Occupancy) Result {
	return Result{
		Status: StatusOccupied,
		Message: fmt.Sprintf(msgOccupied,
			officeNumber,
			o.UserName,
			o.StartTime.Format(models.TimeLayout),
			o.EndTime.Format(models.TimeLayout),
		),
		Occupancy: &o,
	}
}

func unavailable() Result {
	return Result{
		Status:  StatusUnavailable,
		Message: msgUnavailable,
	}
}
