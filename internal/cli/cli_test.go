package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/handlers/slogdiscard"
	"officeBooker/internal/models"
	"officeBooker/internal/services/booking"
)

type fakeService struct {
	checks   []int
	bookings []models.Booking

	checkResult booking.Result
	bookResult  booking.Result
	err         error
}

func (f *fakeService) CheckAvailability(_ context.Context, office int, _, _ time.Time) (booking.Result, error) {
	f.checks = append(f.checks, office)
	return f.checkResult, f.err
}

func (f *fakeService) BookOffice(_ context.Context, req models.Booking) (booking.Result, error) {
	f.bookings = append(f.bookings, req)
	return f.bookResult, f.err
}

func run(t *testing.T, svc *fakeService, input ...string) string {
	t.Helper()

	var out bytes.Buffer
	c := New(slogdiscard.NewDiscardLogger(), svc, 5, strings.NewReader(strings.Join(input, "\n")+"\n"), &out)

	require.NoError(t, c.Run(context.Background()))

	return out.String()
}

func TestRun_CheckAvailability(t *testing.T) {
	t.Parallel()

	svc := &fakeService{checkResult: booking.Result{
		Status:  booking.StatusAvailable,
		Message: "Office 2 is available for booking.",
	}}

	out := run(t, svc, "1", "2", "2025-01-01 09:00", "2025-01-01 10:00", "3")

	assert.Equal(t, []int{2}, svc.checks)
	assert.Contains(t, out, "Office 2 is available for booking.")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_Book(t *testing.T) {
	t.Parallel()

	svc := &fakeService{bookResult: booking.Result{
		Status:  booking.StatusBooked,
		Message: "Office 3 has been successfully booked.",
	}}

	out := run(t, svc,
		"2", "3", "2025-01-01 09:00", "2025-01-01 10:00",
		"Alice", "alice@example.com", "+48 123-456-789",
		"q",
	)

	require.Len(t, svc.bookings, 1)
	assert.Equal(t, models.Booking{
		OfficeNumber: 3,
		UserName:     "Alice",
		UserEmail:    "alice@example.com",
		UserPhone:    "+48 123-456-789",
		StartTime:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}, svc.bookings[0])
	assert.Contains(t, out, "Office 3 has been successfully booked.")
}

func TestRun_RepromptsOnBadTime(t *testing.T) {
	t.Parallel()

	svc := &fakeService{checkResult: booking.Result{Status: booking.StatusAvailable, Message: "ok"}}

	out := run(t, svc, "1", "1", "tomorrow", "2025-01-01 09:00", "2025-01-01 10:00", "quit")

	assert.Equal(t, []int{1}, svc.checks)
	assert.Equal(t, 1, strings.Count(out, "Invalid date format. Please use YYYY-MM-DD HH:MM"))
}

func TestRun_ErrorsDoNotStopTheLoop(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		svc      *fakeService
		input    []string
		expected string
	}{
		{
			name:     "Office not a number",
			svc:      &fakeService{},
			input:    []string{"1", "five"},
			expected: "Invalid input: Office number must be a number between 1 and 5",
		},
		{
			name:     "Short name",
			svc:      &fakeService{},
			input:    []string{"2", "1", "2025-01-01 09:00", "2025-01-01 10:00", "A"},
			expected: "Invalid input: Name must be at least 2 characters long",
		},
		{
			name:     "Bad email",
			svc:      &fakeService{},
			input:    []string{"2", "1", "2025-01-01 09:00", "2025-01-01 10:00", "Alice", "alice"},
			expected: "Invalid input: Invalid email address",
		},
		{
			name:     "Bad phone",
			svc:      &fakeService{},
			input:    []string{"2", "1", "2025-01-01 09:00", "2025-01-01 10:00", "Alice", "a@b.io", "12ab"},
			expected: "Invalid input: Invalid phone number format",
		},
		{
			name:     "Storage failure",
			svc:      &fakeService{err: errs.Storage("storage.postgres.IsOfficeAvailable", errors.New("connection refused"))},
			input:    []string{"1", "1", "2025-01-01 09:00", "2025-01-01 10:00"},
			expected: "Error: ",
		},
		{
			name:     "Unexpected failure",
			svc:      &fakeService{err: errors.New("boom")},
			input:    []string{"1", "1", "2025-01-01 09:00", "2025-01-01 10:00"},
			expected: "An unexpected error occurred: boom",
		},
		{
			name:     "Unknown choice",
			svc:      &fakeService{},
			input:    []string{"7"},
			expected: "Invalid choice. Please try again.",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := run(t, tc.svc, append(tc.input, "3")...)

			assert.Contains(t, out, tc.expected)
			assert.Contains(t, out, "Goodbye!")
			assert.Empty(t, tc.svc.bookings)
		})
	}
}

func TestRun_EndOfInput(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}

	out := run(t, svc, "1", "2")

	assert.Empty(t, svc.checks)
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(slogdiscard.NewDiscardLogger(), &fakeService{}, 5, strings.NewReader("1\n"), &bytes.Buffer{})

	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}
