package domain

import "context"

// Chambre is a bookable hotel room.
//
// Disponibilite is set by staff only; creating or deleting a reservation
// does not change it.
type Chambre struct {
	BaseModel
	Numero        int  `gorm:"uniqueIndex;not null" json:"numero"`
	Capacite      int  `gorm:"not null" json:"capacite"`
	Disponibilite bool `gorm:"not null" json:"disponibilite"`
}

// ChambreInput carries the mutable fields of a Chambre for create and update.
type ChambreInput struct {
	Numero        int
	Capacite      int
	Disponibilite bool
}

// ChambreRepository defines the data access interface for rooms.
//
// FindByID returns (nil, nil) when no room has the given ID.
type ChambreRepository interface {
	Create(ctx context.Context, chambre *Chambre) error
	FindAll(ctx context.Context) ([]Chambre, error)
	FindByID(ctx context.Context, id uint) (*Chambre, error)
	Update(ctx context.Context, chambre *Chambre) error
	Delete(ctx context.Context, id uint) error
	IsAvailable(ctx context.Context, id uint) (bool, error)
}

// ChambreService defines the business logic interface for rooms.
type ChambreService interface {
	FindAll(ctx context.Context) ([]Chambre, error)
	FindByID(ctx context.Context, id uint) (*Chambre, error)
	Create(ctx context.Context, in ChambreInput) (uint, error)
	Update(ctx context.Context, id uint, in ChambreInput) (*Chambre, error)
	Delete(ctx context.Context, id uint) error
	IsAvailable(ctx context.Context, id uint) (bool, error)
}
