package bookOffice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"officeBooker/internal/http-server/handlers/office/officeparam"
	"officeBooker/internal/lib/api/response"
	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/lib/validation"
	"officeBooker/internal/models"
	"officeBooker/internal/services/booking"
)

type BookingRequest struct {
	UserName  string `json:"user_name" validate:"required,min=2"`
	UserEmail string `json:"user_email" validate:"required,email"`
	UserPhone string `json:"user_phone" validate:"required,phone"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02 15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02 15:04"`
}

type BookingResponse struct {
	response.Response
	Result    booking.Status    `json:"result,omitempty"`
	Message   string            `json:"message,omitempty"`
	BookingID int               `json:"booking_id,omitempty"`
	Occupancy *models.Occupancy `json:"occupancy,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OfficeBooker
type OfficeBooker interface {
	BookOffice(ctx context.Context, req models.Booking) (booking.Result, error)
}

func New(log *slog.Logger, booker OfficeBooker) http.HandlerFunc {
	validate := validation.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.office.bookOffice.New"

		log := log.With(slog.String("op", op))

		officeNumber, err := officeparam.Number(r)
		if err != nil {
			log.Error("bad office number", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int("office_number", officeNumber))

		var req BookingRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.String("user_name", req.UserName))

		if err = validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}

			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to validate request"))
			return
		}

		// formats were checked by the datetime tag
		start, _ := time.Parse(models.TimeLayout, req.StartTime)
		end, _ := time.Parse(models.TimeLayout, req.EndTime)

		res, err := booker.BookOffice(r.Context(), models.Booking{
			OfficeNumber: officeNumber,
			UserName:     req.UserName,
			UserEmail:    req.UserEmail,
			UserPhone:    req.UserPhone,
			StartTime:    start,
			EndTime:      end,
		})
		if err != nil {
			log.Error("failed to book office", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to book office"))
			return
		}

		switch res.Status {
		case booking.StatusBooked:
		case booking.StatusInvalidOffice, booking.StatusInvalidWindow:
			log.Info("booking rejected", slog.String("result", string(res.Status)))
			responseRejected(w, r, http.StatusBadRequest, res)
			return
		default:
			log.Info("office not booked", slog.String("result", string(res.Status)))
			responseRejected(w, r, http.StatusConflict, res)
			return
		}

		log.Info("office booked", slog.Int("booking_id", res.BookingID))

		responseOK(w, r, res)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, res booking.Result) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response:  response.OK(),
		Result:    res.Status,
		Message:   res.Message,
		BookingID: res.BookingID,
	})
}

func responseRejected(w http.ResponseWriter, r *http.Request, status int, res booking.Result) {
	render.Status(r, status)
	render.JSON(w, r, BookingResponse{
		Response:  response.Error(res.Message),
		Result:    res.Status,
		Occupancy: res.Occupancy,
	})
}
