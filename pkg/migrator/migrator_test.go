package migrator

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestRunMigrations_Unreachable(t *testing.T) {
	files := fstest.MapFS{
		"00001_init.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	err := RunMigrations(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", files)
	if err == nil {
		t.Fatal("expected error for unreachable database")
	}
}
