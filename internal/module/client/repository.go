package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const entity = "client"

var errClientInUse = domain.NewAppError(domain.CodeInUse,
	domain.ErrClientHasReservations.Error(), domain.ErrClientHasReservations)

// clientRepository implements domain.ClientRepository using GORM.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a ClientRepository backed by db.
func NewClientRepository(db *gorm.DB) domain.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	return pkg.MapStoreError(entity, r.db.WithContext(ctx).Create(c).Error)
}

// FindAll returns every client ordered by name.
func (r *clientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := r.db.WithContext(ctx).Order("nom, id").Find(&clients).Error; err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	return clients, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	return &c, nil
}

// Update overwrites every mutable field of the client identified by c.ID.
func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	result := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", c.ID).Updates(map[string]any{
		"nom":          c.Nom,
		"telephone":    c.Telephone,
		"email":        c.Email,
		"nb_personnes": c.NbPersonnes,
	})
	if result.Error != nil {
		return pkg.MapStoreError(entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// Delete removes the client unless a reservation still references it. The
// count and the delete share one transaction, and the RESTRICT foreign key
// catches a reservation inserted concurrently.
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.Reservation{}).Where("client_id = ?", id).Count(&refs).Error; err != nil {
			return pkg.MapStoreError(entity, err)
		}
		if refs > 0 {
			return errClientInUse
		}

		result := tx.Delete(&domain.Client{}, id)
		if result.Error != nil {
			if pkg.IsForeignKeyViolation(result.Error) {
				return errClientInUse
			}
			return pkg.MapStoreError(entity, result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound()
		}
		return nil
	})
}

func notFound() error {
	return domain.NewAppError(domain.CodeNotFound, "client not found", nil)
}
