package reservation

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/simp-lee/gohotel/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	client  *domain.Client
	chambre *domain.Chambre
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	cl := &domain.Client{Nom: "Martin", Telephone: "0612345678", Email: "a@b.com", NbPersonnes: 2}
	if err := db.Create(cl).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	ch := &domain.Chambre{Numero: 101, Capacite: 2, Disponibilite: true}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("seed chambre: %v", err)
	}
	return fixture{client: cl, chambre: ch}
}

func (f fixture) reservation(debut, fin domain.Date) *domain.Reservation {
	return &domain.Reservation{ClientID: f.client.ID, ChambreID: f.chambre.ID, DateDebut: debut, DateFin: fin}
}

func TestRepository_CreateAndView(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	res := f.reservation(domain.NewDate(2025, 6, 1), domain.NewDate(2025, 6, 5))
	if err := repo.Create(ctx, res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID == 0 {
		t.Fatal("expected non-zero ID after Create")
	}

	view, err := repo.FindByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if view == nil {
		t.Fatal("FindByID returned nil for a stored reservation")
	}
	if view.ClientID != f.client.ID || view.ChambreID != f.chambre.ID {
		t.Errorf("ids = %d/%d", view.ClientID, view.ChambreID)
	}
	if view.DateDebut.String() != "2025-06-01" || view.DateFin.String() != "2025-06-05" {
		t.Errorf("dates = %s..%s", view.DateDebut, view.DateFin)
	}
	if view.ChambreNumero != 101 || view.ChambreCapacite != 2 || !view.ChambreDisponibilite || view.ClientNom != "Martin" {
		t.Errorf("enriched fields = %+v", view)
	}
}

func TestRepository_FindByID_Absent(t *testing.T) {
	repo := NewReservationRepository(setupTestDB(t))

	view, err := repo.FindByID(context.Background(), 5)
	if err != nil || view != nil {
		t.Fatalf("FindByID = %v, %v; want nil, nil", view, err)
	}
}

func TestRepository_FindAll_OrderedByStart(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	for _, day := range []int{20, 3, 11} {
		if err := repo.Create(ctx, f.reservation(domain.NewDate(2025, 7, day), domain.NewDate(2025, 7, day+1))); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	views, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	want := []string{"2025-07-03", "2025-07-11", "2025-07-20"}
	if len(views) != len(want) {
		t.Fatalf("len = %d, want %d", len(views), len(want))
	}
	for i, v := range views {
		if v.DateDebut.String() != want[i] {
			t.Errorf("views[%d] starts %s, want %s", i, v.DateDebut, want[i])
		}
	}
}

func TestRepository_DuplicateStart(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, f.reservation(domain.NewDate(2025, 6, 1), domain.NewDate(2025, 6, 5))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, f.reservation(domain.NewDate(2025, 6, 1), domain.NewDate(2025, 6, 3)))
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("duplicate Create = %v, want already exists", err)
	}
}

func TestRepository_CreateWithDanglingReference(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	repo := NewReservationRepository(db)

	res := f.reservation(domain.NewDate(2025, 6, 1), domain.NewDate(2025, 6, 5))
	res.ClientID = f.client.ID + 40
	if err := repo.Create(context.Background(), res); !domain.IsValidation(err) {
		t.Fatalf("Create = %v, want validation error", err)
	}
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	f := seed(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	res := f.reservation(domain.NewDate(2025, 6, 1), domain.NewDate(2025, 6, 5))
	if err := repo.Create(ctx, res); err != nil {
		t.Fatalf("Create: %v", err)
	}

	moved := f.reservation(domain.NewDate(2025, 8, 10), domain.NewDate(2025, 8, 12))
	moved.ID = res.ID
	if err := repo.Update(ctx, moved); err != nil {
		t.Fatalf("Update: %v", err)
	}
	view, _ := repo.FindByID(ctx, res.ID)
	if view.DateDebut.String() != "2025-08-10" || view.DateFin.String() != "2025-08-12" {
		t.Errorf("after Update = %s..%s", view.DateDebut, view.DateFin)
	}

	ghost := f.reservation(domain.NewDate(2025, 9, 1), domain.NewDate(2025, 9, 2))
	ghost.ID = res.ID + 10
	if err := repo.Update(ctx, ghost); !domain.IsNotFound(err) {
		t.Errorf("Update(absent) = %v, want not found", err)
	}

	if err := repo.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, res.ID); !domain.IsNotFound(err) {
		t.Errorf("second Delete = %v, want not found", err)
	}
}
