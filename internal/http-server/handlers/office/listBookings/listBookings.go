package listBookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"officeBooker/internal/http-server/handlers/office/officeparam"
	"officeBooker/internal/lib/api/response"
	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/models"
)

type BookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	ListBookings(ctx context.Context, officeNumber int, from, to time.Time) ([]models.Booking, error)
}

func New(log *slog.Logger, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.office.listBookings.New"

		log := log.With(slog.String("op", op))

		officeNumber, err := officeparam.Number(r)
		if err != nil {
			log.Error("bad office number", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		from, err := officeparam.Time(r, "from")
		if err != nil {
			log.Error("bad from time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		to, err := officeparam.Time(r, "to")
		if err != nil {
			log.Error("bad to time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		bookings, err := lister.ListBookings(r.Context(), officeNumber, from, to)
		if err != nil {
			var validationErr *errs.ValidationError
			if errors.As(err, &validationErr) {
				log.Info("listing rejected", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(validationErr.Reason))
				return
			}

			log.Error("failed to list bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list bookings"))
			return
		}

		log.Info("bookings listed", slog.Int("office_number", officeNumber), slog.Int("count", len(bookings)))

		responseOK(w, r, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookings []models.Booking) {
	if bookings == nil {
		bookings = []models.Booking{}
	}

	render.JSON(w, r, BookingsResponse{
		Response: response.OK(),
		Bookings: bookings,
	})
}
