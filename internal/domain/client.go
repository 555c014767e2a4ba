package domain

import "context"

// Client is a hotel guest.
type Client struct {
	BaseModel
	Nom         string `gorm:"size:100;not null;index" json:"nom"`
	Telephone   string `gorm:"size:32;not null" json:"telephone"`
	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	NbPersonnes int    `gorm:"not null" json:"nbPersonnes"`
}

// ClientInput carries the mutable fields of a Client for create and update.
type ClientInput struct {
	Nom         string
	Telephone   string
	Email       string
	NbPersonnes int
}

// ClientRepository defines the data access interface for clients.
//
// FindByID returns (nil, nil) when no client has the given ID.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, id uint) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uint) error
}

// ClientService defines the business logic interface for clients.
type ClientService interface {
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, id uint) (*Client, error)
	Create(ctx context.Context, in ClientInput) (uint, error)
	Update(ctx context.Context, id uint, in ClientInput) (*Client, error)
	Delete(ctx context.Context, id uint) error
}
