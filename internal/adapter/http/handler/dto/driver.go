package dto

import (
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/validator"
)

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// Validate accepts only the statuses a driver reports.
func (r *AdvanceStatusRequest) Validate(v *validator.Validator) {
	v.Check(r.Status != "", "status", "must be provided")
	if r.Status != "" {
		v.Check(validator.PermittedValue(types.BookingStatus(r.Status),
			types.StatusOnTheWay, types.StatusPickedUp, types.StatusInTransit, types.StatusCompleted),
			"status", "must be one of on_the_way, picked_up, in_transit or completed")
	}
}
