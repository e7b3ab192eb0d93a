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

type Driver struct {
	service DriverService
	l       logger.Logger
}

type DriverService interface {
	Accept(ctx context.Context, bookingID uuid.UUID, caller *models.User) (*models.Booking, error)
	AdvanceStatus(ctx context.Context, bookingID uuid.UUID, to types.BookingStatus, caller *models.User) (*models.Booking, error)
}

func NewDriver(service DriverService, l logger.Logger) *Driver {
	return &Driver{
		service: service,
		l:       l,
	}
}

// Accept godoc
// @Summary      Accept a booking
// @Description  Assigns the calling driver to a confirmed booking; a shared ride takes its participants along
// @Tags         Driver
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string  true  "Booking ID"
// @Success      200         {object}  map[string]any
// @Failure      400,403,404,409  {object}  map[string]any
// @Router       /driver/bookings/{booking_id}/accept [post]
func (h *Driver) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionAcceptBooking)

	bookingID, err := uuid.Parse(r.PathValue("booking_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid booking uuid format")
		badRequestResponse(w, "invalid booking uuid format")
		return
	}

	booking, err := h.service.Accept(ctx, bookingID, models.UserFromContext(ctx))
	if err != nil {
		logServiceError(ctx, h.l, "failed to accept booking", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"booking": booking,
		"message": "Booking accepted",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}

	h.l.Info(ctx, "booking accepted", "booking_id", booking.ID)
}

// AdvanceStatus godoc
// @Summary      Report trip progress
// @Description  Moves an assigned booking one step forward: on_the_way, picked_up, in_transit, completed
// @Tags         Driver
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      string                     true  "Booking ID"
// @Param        request     body      dto.AdvanceStatusRequest  true  "Target status"
// @Success      200         {object}  map[string]any
// @Failure      400,403,404,409,422  {object}  map[string]any
// @Router       /driver/bookings/{booking_id}/status [post]
func (h *Driver) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionAdvanceStatus)

	bookingID, err := uuid.Parse(r.PathValue("booking_id"))
	if err != nil {
		h.l.Warn(ctx, "invalid booking uuid format")
		badRequestResponse(w, "invalid booking uuid format")
		return
	}

	var req dto.AdvanceStatusRequest
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

	booking, err := h.service.AdvanceStatus(ctx, bookingID, types.BookingStatus(req.Status), models.UserFromContext(ctx))
	if err != nil {
		logServiceError(ctx, h.l, "failed to advance booking status", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"booking_id": booking.ID,
		"status":     booking.Status,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
	}
}
