package reservation

import (
	"errors"
	"time"

	"github.com/simp-lee/gohotel/internal/domain"
)

// Validator checks the date rules of a reservation against a clock.
type Validator struct {
	now          func() time.Time
	horizonYears int
}

// NewValidator creates a Validator. A nil now uses time.Now.
func NewValidator(now func() time.Time, horizonYears int) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now, horizonYears: horizonYears}
}

// Validate requires DateDebut < DateFin, then DateDebut no later than today
// plus the booking horizon.
func (v *Validator) Validate(in domain.ReservationInput) error {
	if !in.DateDebut.Before(in.DateFin.Time) {
		return domain.NewRuleError(domain.ErrInvalidDateRange)
	}
	if in.DateDebut.After(v.Limit().Time) {
		return domain.NewRuleError(domain.ErrHorizonExceeded)
	}
	return nil
}

// Limit returns the last date on which a stay may start.
func (v *Validator) Limit() domain.Date {
	return domain.DateOf(v.now()).AddYears(v.horizonYears)
}

// rejectReason labels a refused write for metrics.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "date_range"
	case errors.Is(err, domain.ErrHorizonExceeded):
		return "horizon"
	case errors.Is(err, domain.ErrUnknownClient):
		return "unknown_client"
	case errors.Is(err, domain.ErrUnknownChambre):
		return "unknown_chambre"
	case domain.IsAlreadyExists(err):
		return "duplicate"
	default:
		return "other"
	}
}
