// Package officeparam parses the path and query parameters shared by the
// office handlers.
package officeparam

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"officeBooker/internal/models"
)

var (
	ErrNumberRequired = errors.New("office number is required")
	ErrNumberFormat   = errors.New("invalid office number format")
)

func Number(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "number")
	if raw == "" {
		return 0, ErrNumberRequired
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrNumberFormat
	}

	return n, nil
}

// Time reads a required query parameter in models.TimeLayout.
func Time(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}

	t, err := time.Parse(models.TimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format, expected YYYY-MM-DD HH:MM", name)
	}

	return t, nil
}
