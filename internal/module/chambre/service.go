package chambre

import (
	"context"
	"log/slog"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/metrics"
)

// chambreService implements domain.ChambreService.
type chambreService struct {
	repo    domain.ChambreRepository
	metrics *metrics.Metrics
}

// NewChambreService creates a ChambreService. m may be nil.
func NewChambreService(repo domain.ChambreRepository, m *metrics.Metrics) domain.ChambreService {
	return &chambreService{repo: repo, metrics: m}
}

func (s *chambreService) FindAll(ctx context.Context) ([]domain.Chambre, error) {
	return s.repo.FindAll(ctx)
}

func (s *chambreService) FindByID(ctx context.Context, id uint) (*domain.Chambre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *chambreService) Create(ctx context.Context, in domain.ChambreInput) (uint, error) {
	if err := Validate(in); err != nil {
		return 0, err
	}

	ch := &domain.Chambre{Numero: in.Numero, Capacite: in.Capacite, Disponibilite: in.Disponibilite}
	if err := s.repo.Create(ctx, ch); err != nil {
		s.logStoreFailure(ctx, "create", err)
		return 0, err
	}
	return ch.ID, nil
}

// Update replaces all three mutable fields and returns the stored record.
func (s *chambreService) Update(ctx context.Context, id uint, in domain.ChambreInput) (*domain.Chambre, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	ch := &domain.Chambre{
		BaseModel:     domain.BaseModel{ID: id},
		Numero:        in.Numero,
		Capacite:      in.Capacite,
		Disponibilite: in.Disponibilite,
	}
	if err := s.repo.Update(ctx, ch); err != nil {
		s.logStoreFailure(ctx, "update", err)
		return nil, err
	}

	fresh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, notFound()
	}
	return fresh, nil
}

func (s *chambreService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if domain.IsInUse(err) {
		s.metrics.DeleteBlocked(entity)
		slog.WarnContext(ctx, "chambre delete blocked by reservations", slog.Uint64("chambre_id", uint64(id)))
		return err
	}
	s.logStoreFailure(ctx, "delete", err)
	return err
}

func (s *chambreService) IsAvailable(ctx context.Context, id uint) (bool, error) {
	return s.repo.IsAvailable(ctx, id)
}

func (s *chambreService) logStoreFailure(ctx context.Context, op string, err error) {
	if domain.IsInternal(err) {
		slog.ErrorContext(ctx, "chambre store failure", slog.String("op", op), slog.Any("error", err))
	}
}
