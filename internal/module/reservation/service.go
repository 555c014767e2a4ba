package reservation

import (
	"context"
	"log/slog"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/metrics"
)

// reservationService implements domain.ReservationService.
type reservationService struct {
	repo      domain.ReservationRepository
	clients   domain.ClientRepository
	chambres  domain.ChambreRepository
	validator *Validator
	metrics   *metrics.Metrics
}

// NewReservationService creates a ReservationService. m may be nil.
func NewReservationService(
	repo domain.ReservationRepository,
	clients domain.ClientRepository,
	chambres domain.ChambreRepository,
	v *Validator,
	m *metrics.Metrics,
) domain.ReservationService {
	return &reservationService{repo: repo, clients: clients, chambres: chambres, validator: v, metrics: m}
}

func (s *reservationService) FindAll(ctx context.Context) ([]domain.ReservationView, error) {
	return s.repo.FindAll(ctx)
}

func (s *reservationService) FindByID(ctx context.Context, id uint) (*domain.ReservationView, error) {
	return s.repo.FindByID(ctx, id)
}

// Create checks the dates, then that both referenced records exist, and
// stores the reservation.
func (s *reservationService) Create(ctx context.Context, in domain.ReservationInput) (uint, error) {
	if err := s.check(ctx, in); err != nil {
		return 0, s.reject(ctx, err)
	}

	res := &domain.Reservation{
		ClientID:  in.ClientID,
		ChambreID: in.ChambreID,
		DateDebut: in.DateDebut,
		DateFin:   in.DateFin,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return 0, s.reject(ctx, err)
	}
	s.metrics.ReservationCreated()
	return res.ID, nil
}

// Update applies the same checks to the proposed values and returns the
// stored view.
func (s *reservationService) Update(ctx context.Context, id uint, in domain.ReservationInput) (*domain.ReservationView, error) {
	if err := s.check(ctx, in); err != nil {
		return nil, s.reject(ctx, err)
	}

	res := &domain.Reservation{
		BaseModel: domain.BaseModel{ID: id},
		ClientID:  in.ClientID,
		ChambreID: in.ChambreID,
		DateDebut: in.DateDebut,
		DateFin:   in.DateFin,
	}
	if err := s.repo.Update(ctx, res); err != nil {
		return nil, s.reject(ctx, err)
	}

	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, notFound()
	}
	return view, nil
}

func (s *reservationService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if domain.IsInternal(err) {
		slog.ErrorContext(ctx, "reservation store failure", slog.String("op", "delete"), slog.Any("error", err))
	}
	return err
}

func (s *reservationService) check(ctx context.Context, in domain.ReservationInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NewRuleError(domain.ErrUnknownClient)
	}

	ch, err := s.chambres.FindByID(ctx, in.ChambreID)
	if err != nil {
		return err
	}
	if ch == nil {
		return domain.NewRuleError(domain.ErrUnknownChambre)
	}
	return nil
}

// reject records a refused write and passes err through.
func (s *reservationService) reject(ctx context.Context, err error) error {
	switch {
	case domain.IsInternal(err):
		slog.ErrorContext(ctx, "reservation store failure", slog.Any("error", err))
	case domain.IsNotFound(err):
	default:
		s.metrics.ReservationRejected(rejectReason(err))
	}
	return err
}
