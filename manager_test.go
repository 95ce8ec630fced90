package sqlexec

import (
	"errors"
	"strings"
	"testing"
)

func TestConnectionManager_OpenResolvesRegisteredDriver(t *testing.T) {
	manager := NewConnectionManager()
	fake := &fakeDatabase{}
	var gotConn string
	manager.AddConnectionFunc(DbSqlite, func(cfg *Config) (Database, error) {
		gotConn = cfg.Conn
		return fake, nil
	})

	cfg := &Config{Driver: DbSqlite, Conn: "bench.db", Separator: ";"}
	db, err := manager.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if db != fake {
		t.Fatal("expected the opener's session to be returned")
	}
	if gotConn != "bench.db" {
		t.Fatalf("expected opener to receive the config, got conn %q", gotConn)
	}
}

func TestConnectionManager_OpenUnknownDriver(t *testing.T) {
	manager := NewConnectionManager()
	_, err := manager.Open(&Config{Driver: "oracle", Conn: "x", Separator: ";"})
	if err == nil {
		t.Fatal("expected error for unregistered driver")
	}
	if !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected driver name in error, got %v", err)
	}
}

func TestConnectionManager_OpenerErrorWrapped(t *testing.T) {
	manager := NewConnectionManager()
	dialErr := errors.New("dial tcp: connection refused")
	manager.AddConnectionFunc(DbMySQL, func(cfg *Config) (Database, error) {
		return nil, dialErr
	})

	_, err := manager.Open(&Config{Driver: DbMySQL, Conn: "x", Separator: ";"})
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error surfaced, got %v", err)
	}
}

func TestConnectionManager_ReplacesRegistration(t *testing.T) {
	manager := NewConnectionManager()
	first := &fakeDatabase{}
	second := &fakeDatabase{}
	manager.AddConnectionFunc(DbSqlite, func(cfg *Config) (Database, error) {
		return first, nil
	})
	manager.AddConnectionFunc(DbSqlite, func(cfg *Config) (Database, error) {
		return second, nil
	})

	db, err := manager.Open(&Config{Driver: DbSqlite, Conn: "x", Separator: ";"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if db != second {
		t.Fatal("expected the latest registration to win")
	}
}
