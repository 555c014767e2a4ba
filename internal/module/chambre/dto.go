package chambre

import "github.com/simp-lee/gohotel/internal/domain"

// ChambreRequest is the body of a create request, from JSON or from the HTML
// form. Disponibilite defaults to true when omitted.
type ChambreRequest struct {
	Numero        int   `json:"numero" form:"numero"`
	Capacite      int   `json:"capacite" form:"capacite"`
	Disponibilite *bool `json:"disponibilite" form:"disponibilite"`
}

// Input converts the request to the service input.
func (r ChambreRequest) Input() domain.ChambreInput {
	available := true
	if r.Disponibilite != nil {
		available = *r.Disponibilite
	}
	return domain.ChambreInput{
		Numero:        r.Numero,
		Capacite:      r.Capacite,
		Disponibilite: available,
	}
}

// ChambreUpdateRequest is the body of an update. All three fields are
// replaced, so disponibilite must be sent explicitly.
type ChambreUpdateRequest struct {
	Numero        int   `json:"numero" form:"numero"`
	Capacite      int   `json:"capacite" form:"capacite"`
	Disponibilite *bool `json:"disponibilite" form:"disponibilite" binding:"required"`
}

// Input converts the request to the service input.
func (r ChambreUpdateRequest) Input() domain.ChambreInput {
	return ChambreRequest(r).Input()
}

// CreatedResponse is returned by a successful create.
type CreatedResponse struct {
	ID uint `json:"id"`
}

// AvailabilityResponse is returned by the availability lookup.
type AvailabilityResponse struct {
	ID            uint `json:"id"`
	Disponibilite bool `json:"disponibilite"`
}
