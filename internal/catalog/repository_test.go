package catalog

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("HOMECRAFT_DB_DSN")
	if dsn == "" {
		t.Skip("HOMECRAFT_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateCategory(t *testing.T, tx *gorm.DB, position int) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     fmt.Sprintf("hc_test_%s", uuid.NewString()),
		Position: position,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateSubcategory(t *testing.T, tx *gorm.DB, categoryID uuid.UUID) *models.Subcategory {
	t.Helper()
	subcategory := &models.Subcategory{
		CategoryID: categoryID,
		Name:       fmt.Sprintf("hc_test_%s", uuid.NewString()),
	}
	if err := tx.Create(subcategory).Error; err != nil {
		t.Fatalf("create subcategory: %v", err)
	}
	return subcategory
}

func TestRepositoryServiceLifecycle(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	ctx := context.Background()

	category := mustCreateCategory(t, tx, 0)
	subcategory := mustCreateSubcategory(t, tx, category.ID)

	created, err := repo.CreateService(ctx, &models.Service{
		SubcategoryID: subcategory.ID,
		Name:          "Wardrobe Installation",
		Active:        true,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	found, err := repo.FindServiceByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find service: %v", err)
	}
	if found.Name != "Wardrobe Installation" {
		t.Fatalf("unexpected service name %q", found.Name)
	}

	if err := repo.SetServiceActive(ctx, created.ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}

	services, err := repo.ListServicesBySubcategory(ctx, subcategory.ID, true)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) != 0 {
		t.Fatalf("expected inactive service filtered out, got %d rows", len(services))
	}

	services, err = repo.ListServicesBySubcategory(ctx, subcategory.ID, false)
	if err != nil {
		t.Fatalf("list all services: %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("expected one service, got %d", len(services))
	}
}

func TestRepositorySetServiceActiveMissingRow(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)

	err := repo.SetServiceActive(context.Background(), uuid.New(), false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryCategoryOrdering(t *testing.T) {
	conn := openTestDB(t)

	tx := conn.Begin()
	defer tx.Rollback()

	repo := NewRepository(conn).WithTx(tx)
	ctx := context.Background()

	second := mustCreateCategory(t, tx, 5)
	first := mustCreateCategory(t, tx, 1)

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}

	firstIdx, secondIdx := -1, -1
	for i, c := range categories {
		switch c.ID {
		case first.ID:
			firstIdx = i
		case second.ID:
			secondIdx = i
		}
	}
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatal("expected both categories in the listing")
	}
	if firstIdx > secondIdx {
		t.Fatalf("expected position ordering, got first at %d and second at %d", firstIdx, secondIdx)
	}
}
