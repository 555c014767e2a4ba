package reservation

import (
	"github.com/simp-lee/gohotel/internal/domain"
)

// ReservationRequest is the body of create and update requests, from JSON or
// from the HTML form. Dates are calendar dates in YYYY-MM-DD form.
type ReservationRequest struct {
	ClientID  uint   `json:"clientId" form:"clientId" binding:"required"`
	ChambreID uint   `json:"chambreId" form:"chambreId" binding:"required"`
	DateDebut string `json:"dateDebut" form:"dateDebut" binding:"required,datetime=2006-01-02"`
	DateFin   string `json:"dateFin" form:"dateFin" binding:"required,datetime=2006-01-02"`
}

// Input parses the request into the service input.
func (r ReservationRequest) Input() (domain.ReservationInput, error) {
	debut, err := domain.ParseDate(r.DateDebut)
	if err != nil {
		return domain.ReservationInput{}, domain.NewAppError(domain.CodeValidation, "dateDebut must be a YYYY-MM-DD date", err)
	}
	fin, err := domain.ParseDate(r.DateFin)
	if err != nil {
		return domain.ReservationInput{}, domain.NewAppError(domain.CodeValidation, "dateFin must be a YYYY-MM-DD date", err)
	}
	return domain.ReservationInput{
		ClientID:  r.ClientID,
		ChambreID: r.ChambreID,
		DateDebut: debut,
		DateFin:   fin,
	}, nil
}

// CreatedResponse is returned by a create when the stored view cannot be
// read back.
type CreatedResponse struct {
	ID uint `json:"id"`
}
