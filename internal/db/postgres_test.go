package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/types"
)

// The sqlite fallback has to migrate every model cleanly; the schema must
// not lean on Postgres-only column defaults.
func TestSqliteFallback_MigratesAndStoresRows(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "gallery.db"))

	svc, err := NewPostgresService(log)
	if err != nil {
		t.Fatalf("sqlite fallback init: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("auto migration on sqlite: %v", err)
	}

	asset := &types.Asset{
		ID:          uuid.New(),
		Name:        "neon-drift",
		Type:        "lora",
		AdminStatus: types.AdminStatusListed,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := svc.DB().Create(asset).Error; err != nil {
		t.Fatalf("insert asset: %v", err)
	}

	var got types.Asset
	if err := svc.DB().Where("id = ?", asset.ID).First(&got).Error; err != nil {
		t.Fatalf("read asset back: %v", err)
	}
	if got.Name != asset.Name || got.AdminStatus != types.AdminStatusListed {
		t.Fatalf("unexpected row after round trip: %+v", got)
	}
}
