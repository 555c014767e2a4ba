package client

import (
	"context"
	"log/slog"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/metrics"
)

// clientService implements domain.ClientService.
type clientService struct {
	repo    domain.ClientRepository
	metrics *metrics.Metrics
}

// NewClientService creates a ClientService. m may be nil.
func NewClientService(repo domain.ClientRepository, m *metrics.Metrics) domain.ClientService {
	return &clientService{repo: repo, metrics: m}
}

func (s *clientService) FindAll(ctx context.Context) ([]domain.Client, error) {
	return s.repo.FindAll(ctx)
}

// FindByID returns (nil, nil) when the client does not exist.
func (s *clientService) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates in and stores a new client, returning its id.
func (s *clientService) Create(ctx context.Context, in domain.ClientInput) (uint, error) {
	in = Normalize(in)
	if err := Validate(in); err != nil {
		return 0, err
	}

	c := &domain.Client{
		Nom:         in.Nom,
		Telephone:   in.Telephone,
		Email:       in.Email,
		NbPersonnes: in.NbPersonnes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logStoreFailure(ctx, "create", err)
		return 0, err
	}
	return c.ID, nil
}

// Update re-validates the full field set, overwrites the stored client and
// returns the record as read back from the store.
func (s *clientService) Update(ctx context.Context, id uint, in domain.ClientInput) (*domain.Client, error) {
	in = Normalize(in)
	if err := Validate(in); err != nil {
		return nil, err
	}

	c := &domain.Client{
		BaseModel:   domain.BaseModel{ID: id},
		Nom:         in.Nom,
		Telephone:   in.Telephone,
		Email:       in.Email,
		NbPersonnes: in.NbPersonnes,
	}
	if err := s.repo.Update(ctx, c); err != nil {
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

// Delete removes a client that no reservation references.
func (s *clientService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if domain.IsInUse(err) {
		s.metrics.DeleteBlocked(entity)
		slog.WarnContext(ctx, "client delete blocked by reservations", slog.Uint64("client_id", uint64(id)))
		return err
	}
	s.logStoreFailure(ctx, "delete", err)
	return err
}

func (s *clientService) logStoreFailure(ctx context.Context, op string, err error) {
	if domain.IsInternal(err) {
		slog.ErrorContext(ctx, "client store failure", slog.String("op", op), slog.Any("error", err))
	}
}
