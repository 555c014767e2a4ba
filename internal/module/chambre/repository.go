package chambre

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const entity = "chambre"

var errChambreInUse = domain.NewAppError(domain.CodeInUse,
	domain.ErrChambreInUse.Error(), domain.ErrChambreInUse)

// chambreRepository implements domain.ChambreRepository using GORM.
type chambreRepository struct {
	db *gorm.DB
}

// NewChambreRepository creates a ChambreRepository backed by db.
func NewChambreRepository(db *gorm.DB) domain.ChambreRepository {
	return &chambreRepository{db: db}
}

func (r *chambreRepository) Create(ctx context.Context, ch *domain.Chambre) error {
	return pkg.MapStoreError(entity, r.db.WithContext(ctx).Create(ch).Error)
}

// FindAll returns every room ordered by number.
func (r *chambreRepository) FindAll(ctx context.Context) ([]domain.Chambre, error) {
	var chambres []domain.Chambre
	if err := r.db.WithContext(ctx).Order("numero").Find(&chambres).Error; err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	return chambres, nil
}

func (r *chambreRepository) FindByID(ctx context.Context, id uint) (*domain.Chambre, error) {
	var ch domain.Chambre
	err := r.db.WithContext(ctx).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	return &ch, nil
}

// Update overwrites numero, capacite and disponibilite. The map form makes
// GORM write disponibilite even when it is false.
func (r *chambreRepository) Update(ctx context.Context, ch *domain.Chambre) error {
	result := r.db.WithContext(ctx).Model(&domain.Chambre{}).Where("id = ?", ch.ID).Updates(map[string]any{
		"numero":        ch.Numero,
		"capacite":      ch.Capacite,
		"disponibilite": ch.Disponibilite,
	})
	if result.Error != nil {
		return pkg.MapStoreError(entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// Delete removes the room unless a reservation still references it.
func (r *chambreRepository) Delete(ctx context.Context, id uint) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.Reservation{}).Where("chambre_id = ?", id).Count(&refs).Error; err != nil {
			return pkg.MapStoreError(entity, err)
		}
		if refs > 0 {
			return errChambreInUse
		}

		result := tx.Delete(&domain.Chambre{}, id)
		if result.Error != nil {
			if pkg.IsForeignKeyViolation(result.Error) {
				return errChambreInUse
			}
			return pkg.MapStoreError(entity, result.Error)
		}
		if result.RowsAffected == 0 {
			return notFound()
		}
		return nil
	})
}

// IsAvailable reports whether a room with that id exists and is marked available.
func (r *chambreRepository) IsAvailable(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Chambre{}).
		Where("id = ? AND disponibilite = ?", id, true).
		Count(&n).Error
	if err != nil {
		return false, pkg.MapStoreError(entity, err)
	}
	return n > 0, nil
}

func notFound() error {
	return domain.NewAppError(domain.CodeNotFound, "chambre not found", nil)
}
