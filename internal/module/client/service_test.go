package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/metrics"
)

// --- fake repository ---

type fakeClientRepo struct {
	clients map[uint]domain.Client
	nextID  uint
	// hooks for error injection
	createErr error
	updateErr error
	deleteErr error
	findErr   error
}

func newFakeRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uint]domain.Client), nextID: 1}
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.clients {
		if existing.Email == c.Email {
			return domain.NewAppError(domain.CodeAlreadyExists, "client already exists", nil)
		}
	}
	c.ID = f.nextID
	f.nextID++
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) FindAll(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uint) (*domain.Client, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *domain.Client) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.clients[c.ID]; !ok {
		return notFound()
	}
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.clients[id]; !ok {
		return notFound()
	}
	delete(f.clients, id)
	return nil
}

// --- tests ---

func TestClientService_Create_Valid(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)

	id, err := svc.Create(context.Background(), domain.ClientInput{
		Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a positive id")
	}
	if got := repo.clients[id]; got.Nom != "Martin" || got.NbPersonnes != 2 {
		t.Errorf("stored client = %+v", got)
	}
}

func TestClientService_Create_NameWithDigit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)

	_, err := svc.Create(context.Background(), domain.ClientInput{
		Nom: "Martin2", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2,
	})
	if !domain.IsValidation(err) || !errors.Is(err, domain.ErrNameHasDigit) {
		t.Fatalf("Create = %v, want name rule violation", err)
	}
	if len(repo.clients) != 0 {
		t.Error("invalid client must not be stored")
	}
}

func TestClientService_Create_TrimsInput(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)

	id, err := svc.Create(context.Background(), domain.ClientInput{
		Nom: " Martin ", Telephone: " 0612345678 ", Email: " a@b.com ", NbPersonnes: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := repo.clients[id]; got.Nom != "Martin" || got.Email != "a@b.com" || got.Telephone != "0612345678" {
		t.Errorf("stored client = %+v", got)
	}
}

func TestClientService_Create_StoreError(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = domain.NewAppError(domain.CodeInternal, "client store error", errors.New("disk full"))
	svc := NewClientService(repo, nil)

	_, err := svc.Create(context.Background(), domain.ClientInput{
		Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2,
	})
	if !domain.IsInternal(err) {
		t.Fatalf("Create = %v, want internal error", err)
	}
}

func TestClientService_Update(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)
	ctx := context.Background()

	id, _ := svc.Create(ctx, domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2})

	got, err := svc.Update(ctx, id, domain.ClientInput{Nom: "Durand", Telephone: "0712345678", Email: "d@b.com", NbPersonnes: 3})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != id || got.Nom != "Durand" || got.NbPersonnes != 3 {
		t.Errorf("Update returned %+v", got)
	}
}

func TestClientService_Update_Invalid(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)
	ctx := context.Background()

	id, _ := svc.Create(ctx, domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2})

	_, err := svc.Update(ctx, id, domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 0})
	if !errors.Is(err, domain.ErrInvalidPartySize) {
		t.Fatalf("Update = %v, want party size rule", err)
	}
	if repo.clients[id].NbPersonnes != 2 {
		t.Error("rejected update changed the stored client")
	}
}

func TestClientService_Update_NotFound(t *testing.T) {
	svc := NewClientService(newFakeRepo(), nil)

	_, err := svc.Update(context.Background(), 99, domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2})
	if !domain.IsNotFound(err) {
		t.Fatalf("Update = %v, want not found", err)
	}
}

func TestClientService_Delete_InUseCountsBlockedDelete(t *testing.T) {
	repo := newFakeRepo()
	repo.deleteErr = errClientInUse
	reg := prometheus.NewRegistry()
	svc := NewClientService(repo, metrics.New(reg))

	err := svc.Delete(context.Background(), 1)
	if !domain.IsInUse(err) || !errors.Is(err, domain.ErrClientHasReservations) {
		t.Fatalf("Delete = %v, want in-use error", err)
	}

	want := `
# HELP gohotel_deletes_blocked_total Deletes refused because reservations still reference the entity.
# TYPE gohotel_deletes_blocked_total counter
gohotel_deletes_blocked_total{entity="client"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "gohotel_deletes_blocked_total"); err != nil {
		t.Error(err)
	}
}

func TestClientService_Delete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewClientService(repo, nil)
	ctx := context.Background()

	id, _ := svc.Create(ctx, domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2})
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, id); !domain.IsNotFound(err) {
		t.Fatalf("second Delete = %v, want not found", err)
	}
}

// Two concurrent creates with the same email: the store's unique index lets
// exactly one through.
func TestClientService_ConcurrentDuplicateEmail(t *testing.T) {
	svc := NewClientService(NewClientRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, domain.ClientInput{
				Nom: "Martin", Telephone: "0612345678", Email: "same@hotel.fr", NbPersonnes: 1,
			})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.IsAlreadyExists(err):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Fatalf("successes=%d duplicates=%d, want 1 and 1", ok, dup)
	}

	all, err := svc.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("stored %d clients, want 1", len(all))
	}
}

func TestClientService_Create_EmailCaseVariantIsDuplicate(t *testing.T) {
	svc := NewClientService(NewClientRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	in := domain.ClientInput{Nom: "Martin", Telephone: "0612345678", Email: "Martin@Hotel.fr", NbPersonnes: 1}
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	in.Email = "martin@hotel.fr"
	if _, err := svc.Create(ctx, in); !domain.IsAlreadyExists(err) {
		t.Fatalf("second Create = %v, want already exists", err)
	}

	got, err := svc.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil || got.Email != "martin@hotel.fr" {
		t.Errorf("stored client = %+v, want lowercased email", got)
	}
}
