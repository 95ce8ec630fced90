package sqlexec

import (
	"fmt"
	"sync"
)

const (
	DbMySQL    = "mysql"
	DbPostgres = "postgres"
	DbSqlite   = "sqlite"
	DbLibSQL   = "libsql"
)

// connectionFn opens a session for one run using the given configuration.
type connectionFn func(cfg *Config) (Database, error)

// ConnectionManager resolves a driver identifier to the opener registered
// for it. It holds no open connections: every Open hands the caller a
// session the caller owns exclusively and must close.
type ConnectionManager struct {
	connectionFns map[string]connectionFn
	mu            sync.RWMutex
}

// NewConnectionManager creates an empty ConnectionManager. Openers are added
// with AddConnectionFunc.
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connectionFns: make(map[string]connectionFn),
	}
}

// AddConnectionFunc registers the opener for a driver name, replacing any
// previous registration.
func (m *ConnectionManager) AddConnectionFunc(driverName string, f connectionFn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectionFns[driverName] = f
}

// Open resolves the opener for cfg.Driver and establishes the connection.
// An unregistered driver fails before any connection attempt.
func (m *ConnectionManager) Open(cfg *Config) (Database, error) {
	m.mu.RLock()
	connFn, exists := m.connectionFns[cfg.Driver]
	m.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("database connection function not found for driver %s", cfg.Driver)
	}
	db, err := connFn(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect with driver %s: %w", cfg.Driver, err)
	}
	return db, nil
}
