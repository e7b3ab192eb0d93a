package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/pkg/validator"
)

// MatchQuery is read from the query string of GET /rides/shared/matches.
type MatchQuery struct {
	Pickup  string
	Dropoff string
	Date    string
	Seats   int
}

// ParseMatchQuery reads pickup, dropoff, date and seats (default 1).
func ParseMatchQuery(q url.Values, v *validator.Validator) MatchQuery {
	m := MatchQuery{
		Pickup:  strings.TrimSpace(q.Get("pickup")),
		Dropoff: strings.TrimSpace(q.Get("dropoff")),
		Date:    q.Get("date"),
		Seats:   1,
	}

	if raw := q.Get("seats"); raw != "" {
		seats, err := strconv.Atoi(raw)
		if err != nil {
			v.AddError("seats", "must be an integer value")
		}
		m.Seats = seats
	}

	return m
}

func (m MatchQuery) Validate(v *validator.Validator) {
	v.Check(m.Pickup != "", "pickup", "must be provided")
	v.Check(m.Dropoff != "", "dropoff", "must be provided")
	v.Check(validator.IsDate(m.Date), "date", "must be a date in YYYY-MM-DD format")
	v.Check(m.Seats >= 1, "seats", "must be at least 1")
}

func (m MatchQuery) ToModel(userID uuid.UUID) models.MatchQuery {
	return models.MatchQuery{
		Pickup:        m.Pickup,
		Dropoff:       m.Dropoff,
		Date:          m.Date,
		Seats:         m.Seats,
		ExcludeUserID: userID,
	}
}
