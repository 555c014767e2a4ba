package domain

import "context"

// Reservation books one Chambre for one Client over [DateDebut, DateFin).
//
// The association fields only declare the foreign keys; they are never
// loaded or serialized.
type Reservation struct {
	BaseModel
	ClientID  uint `gorm:"not null;index" json:"clientId"`
	ChambreID uint `gorm:"not null;uniqueIndex:idx_reservation_chambre_debut" json:"chambreId"`
	DateDebut Date `gorm:"type:date;not null;uniqueIndex:idx_reservation_chambre_debut" json:"dateDebut"`
	DateFin   Date `gorm:"type:date;not null" json:"dateFin"`

	Client  *Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Chambre *Chambre `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// ReservationView is the read shape of a reservation, enriched with the
// display fields of the referenced room and client.
type ReservationView struct {
	ID                   uint   `json:"id"`
	ClientID             uint   `json:"clientId"`
	ChambreID            uint   `json:"chambreId"`
	DateDebut            Date   `json:"dateDebut"`
	DateFin              Date   `json:"dateFin"`
	ChambreNumero        int    `json:"chambreNumero"`
	ChambreCapacite      int    `json:"chambreCapacite"`
	ChambreDisponibilite bool   `json:"chambreDisponibilite"`
	ClientNom            string `json:"clientNom"`
}

// ReservationInput carries the mutable fields of a Reservation for create and update.
type ReservationInput struct {
	ClientID  uint
	ChambreID uint
	DateDebut Date
	DateFin   Date
}

// ReservationRepository defines the data access interface for reservations.
//
// FindByID returns (nil, nil) when no reservation has the given ID.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	FindAll(ctx context.Context) ([]ReservationView, error)
	FindByID(ctx context.Context, id uint) (*ReservationView, error)
	Update(ctx context.Context, reservation *Reservation) error
	Delete(ctx context.Context, id uint) error
}

// ReservationService defines the business logic interface for reservations.
type ReservationService interface {
	FindAll(ctx context.Context) ([]ReservationView, error)
	FindByID(ctx context.Context, id uint) (*ReservationView, error)
	Create(ctx context.Context, in ReservationInput) (uint, error)
	Update(ctx context.Context, id uint, in ReservationInput) (*ReservationView, error)
	Delete(ctx context.Context, id uint) error
}
