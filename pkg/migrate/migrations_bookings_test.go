package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBookingsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_bookings.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no bookings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bookings",
		"CHECK (quantity >= 1)",
		"CHECK (total_paise > 0)",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS bookings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
