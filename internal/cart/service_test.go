package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
)

type memoryRedis struct {
	data map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: make(map[string]string)}
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *memoryRedis) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryRedis) CartKey(token string) string {
	return "hc:cart:" + token
}

type stubCatalog struct {
	services map[uuid.UUID]*models.Service
}

func (s *stubCatalog) FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newTestService(t *testing.T, services ...*models.Service) Service {
	t.Helper()
	store, err := NewStore(newMemoryRedis(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	catalog := &stubCatalog{services: make(map[uuid.UUID]*models.Service)}
	for _, svc := range services {
		catalog.services[svc.ID] = svc
	}
	svc, err := NewService(store, catalog, 25)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func wardrobeService() *models.Service {
	return &models.Service{
		ID:                uuid.New(),
		Name:              "Wardrobe",
		InstallationPrice: price("500"),
		RepairPrice:       price("200"),
		Active:            true,
	}
}

func TestAddCreatesLineWithSnapshotPrices(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	svc := newTestService(t, wardrobe)

	view, err := svc.Add(context.Background(), "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation, enums.ServiceTypeRepair},
		Quantity:         1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	if !view.Total.Equal(decimal.RequireFromString("700")) {
		t.Fatalf("expected total 700, got %s", view.Total)
	}
}

func TestAddSameServiceIsLastWriteWins(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	svc := newTestService(t, wardrobe)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation},
		Quantity:         1,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	view, err := svc.Add(ctx, "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeRepair},
		Quantity:         3,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("expected a single line after re-add, got %d", len(view.Lines))
	}
	line := view.Lines[0]
	if line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", line.Quantity)
	}
	if len(line.SelectedServices) != 1 || line.SelectedServices[0] != enums.ServiceTypeRepair {
		t.Fatalf("expected replaced selection, got %v", line.SelectedServices)
	}
	if !view.Total.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected total 600, got %s", view.Total)
	}
}

func TestAddRejectsUnofferedSelection(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService() // offers installation + repair only
	svc := newTestService(t, wardrobe)

	_, err := svc.Add(context.Background(), "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeDismantling},
		Quantity:         1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddRejectsInactiveService(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	wardrobe.Active = false
	svc := newTestService(t, wardrobe)

	_, err := svc.Add(context.Background(), "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation},
		Quantity:         1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveAbsentServiceIsNoOp(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	svc := newTestService(t, wardrobe)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation},
		Quantity:         1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.Remove(ctx, "tok-1", uuid.New())
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(view.Lines))
	}
}

func TestRemoveDropsLine(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	svc := newTestService(t, wardrobe)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation},
		Quantity:         1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.Remove(ctx, "tok-1", wardrobe.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
	if !view.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", view.Total)
	}
}

func TestUpdateQuantityValidation(t *testing.T) {
	t.Parallel()

	wardrobe := wardrobeService()
	svc := newTestService(t, wardrobe)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "tok-1", AddInput{
		ServiceID:        wardrobe.ID,
		SelectedServices: []enums.ServiceType{enums.ServiceTypeInstallation},
		Quantity:         1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.UpdateQuantity(ctx, "tok-1", wardrobe.ID, 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for qty 0, got %v", err)
	}

	_, err = svc.UpdateQuantity(ctx, "tok-1", uuid.New(), 2)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for absent line, got %v", err)
	}

	view, err := svc.UpdateQuantity(ctx, "tok-1", wardrobe.ID, 4)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if view.Lines[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", view.Lines[0].Quantity)
	}
	if !view.Total.Equal(decimal.RequireFromString("2000")) {
		t.Fatalf("expected derived total 2000, got %s", view.Total)
	}
}

func TestGetUnknownTokenIsEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	view, err := svc.Get(context.Background(), "tok-unknown")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 0 || !view.Total.IsZero() {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}
