package checkAvailability

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"officeBooker/internal/http-server/handlers/office/officeparam"
	"officeBooker/internal/lib/api/response"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/models"
	"officeBooker/internal/services/booking"
)

type AvailabilityResponse struct {
	response.Response
	Result    booking.Status    `json:"result,omitempty"`
	Message   string            `json:"message,omitempty"`
	Occupancy *models.Occupancy `json:"occupancy,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AvailabilityChecker
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, officeNumber int, start, end time.Time) (booking.Result, error)
}

func New(log *slog.Logger, checker AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.office.checkAvailability.New"

		log := log.With(slog.String("op", op))

		officeNumber, err := officeparam.Number(r)
		if err != nil {
			log.Error("bad office number", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int("office_number", officeNumber))

		start, err := officeparam.Time(r, "start")
		if err != nil {
			log.Error("bad start time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		end, err := officeparam.Time(r, "end")
		if err != nil {
			log.Error("bad end time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		res, err := checker.CheckAvailability(r.Context(), officeNumber, start, end)
		if err != nil {
			log.Error("failed to check availability", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to check availability"))
			return
		}

		switch res.Status {
		case booking.StatusInvalidOffice, booking.StatusInvalidWindow:
			log.Info("availability check rejected", slog.String("result", string(res.Status)))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, AvailabilityResponse{
				Response: response.Error(res.Message),
				Result:   res.Status,
			})
			return
		}

		log.Info("availability checked", slog.String("result", string(res.Status)))

		responseOK(w, r, res)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, res booking.Result) {
	render.JSON(w, r, AvailabilityResponse{
		Response:  response.OK(),
		Result:    res.Status,
		Message:   res.Message,
		Occupancy: res.Occupancy,
	})
}
