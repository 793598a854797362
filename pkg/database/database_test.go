package database

import (
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/model"
	"path/filepath"
	"testing"
)

func TestInitDBAndMigrate_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, table := range []interface{}{&model.User{}, &model.Score{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table for %T", table)
		}
	}
}

func TestInitDB_UnknownDriver(t *testing.T) {
	if _, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
