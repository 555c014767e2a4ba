package reservation

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const entity = "reservation"

const viewColumns = "r.id, r.client_id, r.chambre_id, r.date_debut, r.date_fin, " +
	"ch.numero AS chambre_numero, ch.capacite AS chambre_capacite, " +
	"ch.disponibilite AS chambre_disponibilite, c.nom AS client_nom"

// reservationRepository implements domain.ReservationRepository using GORM.
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a ReservationRepository backed by db.
func NewReservationRepository(db *gorm.DB) domain.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return mapWriteError(r.db.WithContext(ctx).Omit("Client", "Chambre").Create(res).Error)
}

// FindAll returns the joined view of every reservation ordered by start date.
func (r *reservationRepository) FindAll(ctx context.Context) ([]domain.ReservationView, error) {
	var views []domain.ReservationView
	if err := r.view(ctx).Order("r.date_debut, r.id").Scan(&views).Error; err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	return views, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*domain.ReservationView, error) {
	var views []domain.ReservationView
	if err := r.view(ctx).Where("r.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, pkg.MapStoreError(entity, err)
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	result := r.db.WithContext(ctx).Model(&domain.Reservation{}).Where("id = ?", res.ID).Updates(map[string]any{
		"client_id":  res.ClientID,
		"chambre_id": res.ChambreID,
		"date_debut": res.DateDebut,
		"date_fin":   res.DateFin,
	})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Reservation{}, id)
	if result.Error != nil {
		return pkg.MapStoreError(entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

func (r *reservationRepository) view(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reservations AS r").
		Select(viewColumns).
		Joins("JOIN chambres ch ON ch.id = r.chambre_id").
		Joins("JOIN clients c ON c.id = r.client_id")
}

// mapWriteError maps a foreign-key failure, raised when a referenced client
// or room vanished after the existence check, to a validation error.
func mapWriteError(err error) error {
	if pkg.IsForeignKeyViolation(err) {
		return domain.NewAppError(domain.CodeValidation, "referenced client or chambre does not exist", err)
	}
	return pkg.MapStoreError(entity, err)
}

func notFound() error {
	return domain.NewAppError(domain.CodeNotFound, "reservation not found", nil)
}
