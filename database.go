package sqlexec

import (
	"gorm.io/gorm"
)

// Database is one open session with the target database. The Runner owns it
// exclusively for the duration of a run and closes it when the run ends.
type Database interface {
	// Execute submits one statement. A non-nil error means the statement
	// was rejected; the underlying driver cause is available through
	// errors.Unwrap.
	Execute(statement string) error
	// Close releases the session.
	Close() error
}

// gormDatabase adapts an open *gorm.DB to the Database capability.
type gormDatabase struct {
	db *gorm.DB
}

// NewGormDatabase wraps an open gorm connection.
func NewGormDatabase(db *gorm.DB) Database {
	return &gormDatabase{db: db}
}

func (g *gormDatabase) Execute(statement string) error {
	if err := g.db.Exec(statement).Error; err != nil {
		return &ExecError{Statement: statement, Err: err}
	}
	return nil
}

func (g *gormDatabase) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
