package client

import "github.com/simp-lee/gohotel/internal/domain"

// ClientRequest is the body of create and update requests, from JSON or from
// the HTML form. Only presence is checked here; the business rules run in
// the service.
type ClientRequest struct {
	Nom         string `json:"nom" form:"nom" binding:"required,max=100"`
	Telephone   string `json:"telephone" form:"telephone" binding:"required,max=32"`
	Email       string `json:"email" form:"email" binding:"required,max=255"`
	NbPersonnes int    `json:"nbPersonnes" form:"nbPersonnes"`
}

// Input converts the request to the service input.
func (r ClientRequest) Input() domain.ClientInput {
	return domain.ClientInput{
		Nom:         r.Nom,
		Telephone:   r.Telephone,
		Email:       r.Email,
		NbPersonnes: r.NbPersonnes,
	}
}

// CreatedResponse is returned by a successful create.
type CreatedResponse struct {
	ID uint `json:"id"`
}
