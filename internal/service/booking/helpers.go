package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/validator"
	"github.com/google/uuid"
)

func checkEndpoints(v *validator.Validator, pickup, dropoff string, seats int) {
	v.Check(strings.TrimSpace(pickup) != "", "pickup_location", "must be provided")
	v.Check(strings.TrimSpace(dropoff) != "", "dropoff_location", "must be provided")
	v.Check(seats >= 1, "passenger_count", "must be at least 1")
}

func validateTrip(req *models.TripRequest) error {
	v := validator.New()

	checkEndpoints(v, req.PickupLocation, req.DropoffLocation, req.PassengerCount)
	v.Check(req.UserID != uuid.Nil, "user_id", "must be provided")
	v.Check(strings.TrimSpace(req.PassengerName) != "", "passenger_name", "must be provided")
	v.Check(validator.Matches(req.PassengerPhone, validator.PhoneRX), "passenger_phone", "must be a valid mobile number")

	if req.PaymentMethod != "" {
		v.Check(validator.PermittedValue(req.PaymentMethod, types.PaymentCash, types.PaymentUPI, types.PaymentCard),
			"payment_method", "must be cash, upi or card")
	}

	// a joiner rides on the primary's vehicle, date and time
	if !req.IsJoin() {
		v.Check(req.VehicleID != uuid.Nil, "vehicle_id", "must be provided")
		v.Check(validator.IsDate(req.PickupDate), "pickup_date", "must be a date in YYYY-MM-DD format")
		v.Check(validator.Matches(req.PickupTime, validator.ClockRX), "pickup_time", "must be a time in HH:MM format")
	}

	return types.NewValidationErrors(v.Errors)
}

func validateQuote(req *models.TripRequest) error {
	v := validator.New()
	checkEndpoints(v, req.PickupLocation, req.DropoffLocation, req.PassengerCount)
	if !req.IsJoin() {
		v.Check(req.VehicleID != uuid.Nil, "vehicle_id", "must be provided")
	}
	return types.NewValidationErrors(v.Errors)
}

func validateMatchQuery(q models.MatchQuery) error {
	v := validator.New()
	checkEndpoints(v, q.Pickup, q.Dropoff, q.Seats)
	v.Check(validator.IsDate(q.Date), "date", "must be a date in YYYY-MM-DD format")
	return types.NewValidationErrors(v.Errors)
}

// newBooking fills the rider-supplied fields of a confirmed booking.
func newBooking(req *models.TripRequest) *models.Booking {
	method := req.PaymentMethod
	if method == "" {
		method = types.PaymentCash
	}

	return &models.Booking{
		ID:                uuid.New(),
		UserID:            req.UserID,
		VehicleID:         req.VehicleID,
		PickupLocation:    strings.TrimSpace(req.PickupLocation),
		DropoffLocation:   strings.TrimSpace(req.DropoffLocation),
		PickupDate:        req.PickupDate,
		PickupTime:        req.PickupTime,
		PassengerName:     strings.TrimSpace(req.PassengerName),
		PassengerPhone:    req.PassengerPhone,
		PassengerCount:    req.PassengerCount,
		SpecialRequests:   req.SpecialRequests,
		RouteSegmentStart: strings.TrimSpace(req.PickupLocation),
		RouteSegmentEnd:   strings.TrimSpace(req.DropoffLocation),
		Status:            types.StatusConfirmed,
		PaymentMethod:     method,
	}
}

func newPayment(b *models.Booking) *models.Payment {
	return &models.Payment{
		ID:        uuid.New(),
		BookingID: b.ID,
		UserID:    b.UserID,
		Amount:    b.EstimatedFare,
		Method:    b.PaymentMethod,
		Status:    types.PaymentPending,
	}
}

func createdMessage(q *models.FareQuote) string {
	if !q.Shared {
		return "Booking created successfully"
	}
	return fmt.Sprintf("Shared ride created. You pay ₹%.0f for %s km", fare.Round(q.AmountDue), km(q.Distance))
}

func joinedMessage(q *models.FareQuote) string {
	return fmt.Sprintf("Successfully joined shared ride. You pay ₹%.0f for %s km", fare.Round(q.AmountDue), km(q.Distance))
}

func km(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// publish emits an event after commit. Failures are logged and never undo the booking.
func (s *Service) publish(ctx context.Context, event types.BookingEvent, b *models.Booking) {
	if s.events == nil {
		return
	}

	var correlationID string
	if lc, ok := wrap.FromContext(ctx); ok {
		correlationID = lc.RequestID
	}

	if err := s.events.PublishBookingEvent(ctx, models.NewBookingEvent(event, b, correlationID)); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionPublishEvent)
		s.log.Error(wrap.ErrorCtx(ctx, err), "failed to publish booking event", err, "event", event)
	}
}
