package postgres

import (
	"context"
	"errors"
	"testing"

	"skill-graph/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost: " localhost ", DBPort: "5432", DBUser: "reader",
		DBPassword: "pw", DBName: "jobs", DBSSLMode: "disable",
	})
	want := "host=localhost port=5432 user=reader password=pw dbname=jobs sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got %v", err)
	}
	if _, err := p.Query(context.Background(), "SELECT 1"); !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got %v", err)
	}
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(); !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}
