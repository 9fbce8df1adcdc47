package storage

import (
	"errors"
	"fmt"

	"officeBooker/internal/models"
)

var ErrOfficeOccupied = errors.New("office occupied")

// ConflictError is returned by the write path when an overlapping booking
// already holds the requested window.
type ConflictError struct {
	Occupancy models.Occupancy
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("office occupied by %s from %s until %s",
		e.Occupancy.UserName,
		e.Occupancy.StartTime.Format(models.TimeLayout),
		e.Occupancy.EndTime.Format(models.TimeLayout),
	)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrOfficeOccupied
}
