package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Temutjin2k/cabshare/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/validator"
)

type BookingService interface {
	Quote(ctx context.Context, req *models.TripRequest) (*models.FareQuote, error)
	FindMatches(ctx context.Context, q models.MatchQuery) ([]models.Match, error)
	Create(ctx context.Context, req *models.TripRequest) (*models.BookingResult, error)
	Get(ctx context.Context, id uuid.UUID, caller *models.User) (*models.BookingDetails, error)
	Cancel(ctx context.Context, id uuid.UUID, caller *models.User) (*models.Booking, error)
}

type Booking struct {
	service BookingService
	l       logger.Logger
}

func NewBooking(service BookingService, l logger.Logger) *Booking {
	return &Booking{
		service: service,
		l:       l,
	}
}

// Quote godoc
// @Summary      Preview a fare
// @Description  Prices a new ride, or joining the given shared ride, without booking
// @Tags         Fares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.QuoteRequest  true  "Trip to price"
// @Success      200      {object}  models.FareQuote
// @Failure      404,409,422  {object}  map[string]any
// @Router       /fares/quote [post]
func (h *Booking) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionQuoteFare)
	user := models.UserFromContext(ctx)

	var req dto.QuoteRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Warn(ctx, "failed to read request JSON data", "error", err.Error())
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	quote, err := h.service.Quote(ctx, req.ToModel(user.ID))
	if err != nil {
		logServiceError(ctx, h.l, "failed to quote fare", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"fare": quote}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

// FindMatches godoc
// @Summary      Find shared rides to join
// @Description  Ranks open shared rides on the date by how well they fit the trip
// @Tags         Shared rides
// @Produce      json
// @Security     BearerAuth
// @Param        pickup   query     string  true   "Pickup location"
// @Param        dropoff  query     string  true   "Dropoff location"
// @Param        date     query     string  true   "Pickup date, YYYY-MM-DD"
// @Param        seats    query     int     false  "Seats needed (default 1)"
// @Success      200      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Router       /rides/shared/matches [get]
func (h *Booking) FindMatches(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionFindMatches)
	user := models.UserFromContext(ctx)

	v := validator.New()
	q := dto.ParseMatchQuery(r.URL.Query(), v)
	q.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid match query")
		failedValidationResponse(w, v.Errors)
		return
	}

	matches, err := h.service.FindMatches(ctx, q.ToModel(user.ID))
	if err != nil {
		logServiceError(ctx, h.l, "failed to find shared ride matches", err)
		serviceErrorResponse(w, err)
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}

	if err := writeJSON(w, http.StatusOK, envelope{"matches": matches, "count": len(matches)}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

// Create godoc
// @Summary      Book a ride or join a shared ride
// @Description  Creates a standalone or shared booking; with join_shared_ride_id joins that ride
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.CreateBookingRequest  true  "Trip submission"
// @Success      201      {object}  dto.BookingResponse
// @Failure      400,404,409,422  {object}  map[string]any
// @Router       /bookings [post]
func (h *Booking) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionCreateBooking)
	user := models.UserFromContext(ctx)

	var req dto.CreateBookingRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Warn(ctx, "failed to read request JSON data", "error", err.Error())
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	result, err := h.service.Create(ctx, req.ToModel(user.ID))
	if err != nil {
		logServiceError(ctx, h.l, "failed to create booking", err)
		serviceErrorResponse(w, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", "/bookings/"+result.Booking.ID.String())

	if err := writeJSON(w, http.StatusCreated, envelope{"result": dto.NewBookingResponse(result)}, headers); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

// Get godoc
// @Summary      Get a booking
// @Description  Returns the booking with its payment and, for a shared ride, its participants
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200         {object}  models.BookingDetails
// @Failure      400,403,404  {object}  map[string]any
// @Router       /bookings/{booking_id} [get]
func (h *Booking) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionGetBooking)

	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	details, err := h.service.Get(ctx, bookingID, models.UserFromContext(ctx))
	if err != nil {
		logServiceError(ctx, h.l, "failed to get booking", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"booking": details}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancelling a shared ride cancels its participants; cancelling a participant frees its seats
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200         {object}  map[string]any
// @Failure      400,403,404,409  {object}  map[string]any
// @Router       /bookings/{booking_id}/cancel [post]
func (h *Booking) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionCancelBooking)

	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Cancel(ctx, bookingID, models.UserFromContext(ctx))
	if err != nil {
		logServiceError(ctx, h.l, "failed to cancel booking", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"message":    "Booking cancelled successfully",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}

func (h *Booking) bookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("booking_id"))
	if err != nil {
		h.l.Warn(r.Context(), "invalid booking uuid format")
		badRequestResponse(w, "invalid booking uuid format")
		return uuid.Nil, false
	}
	return id, true
}

// logServiceError logs client errors at warn level and the rest at error level.
func logServiceError(ctx context.Context, l logger.Logger, msg string, err error) {
	if code := GetCode(err); code < http.StatusInternalServerError {
		l.Warn(wrap.ErrorCtx(ctx, err), msg, "error", err.Error(), "status", code)
		return
	}
	l.Error(wrap.ErrorCtx(ctx, err), msg, err)
}
