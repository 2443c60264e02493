package migrate_test

import (
	"testing"

	"github.com/anupamtiwari/homecraft-backend/pkg/migrate"
)

func TestValidateDirAcceptsCheckedInMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("checked-in migrations failed validation: %v", err)
	}
}
