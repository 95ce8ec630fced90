package sqlexec

import (
	"fmt"

	"gorm.io/gorm"
)

// dialectOps holds the per-dialect statements needed to list user tables and
// to suspend foreign key enforcement while resetting them.
type dialectOps struct {
	disableFK  string
	enableFK   string
	listTables string
	drop       func(table string) string
	flush      func(table string) string
}

var dialects = map[string]dialectOps{
	DbSqlite: {
		disableFK:  "PRAGMA foreign_keys = OFF",
		enableFK:   "PRAGMA foreign_keys = ON",
		listTables: "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'",
		drop:       func(table string) string { return fmt.Sprintf("DROP TABLE IF EXISTS %s", table) },
		flush:      func(table string) string { return fmt.Sprintf("DELETE FROM %s", table) },
	},
	DbLibSQL: {
		disableFK:  "PRAGMA foreign_keys = OFF",
		enableFK:   "PRAGMA foreign_keys = ON",
		listTables: "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'",
		drop:       func(table string) string { return fmt.Sprintf("DROP TABLE IF EXISTS %s", table) },
		flush:      func(table string) string { return fmt.Sprintf("DELETE FROM %s", table) },
	},
	DbMySQL: {
		disableFK:  "SET FOREIGN_KEY_CHECKS = 0",
		enableFK:   "SET FOREIGN_KEY_CHECKS = 1",
		listTables: "SHOW TABLES",
		drop:       func(table string) string { return fmt.Sprintf("DROP TABLE IF EXISTS %s", table) },
		flush:      func(table string) string { return fmt.Sprintf("TRUNCATE TABLE %s", table) },
	},
	DbPostgres: {
		disableFK:  "SET session_replication_role = 'replica'",
		enableFK:   "SET session_replication_role = 'origin'",
		listTables: "SELECT tablename FROM pg_tables WHERE schemaname = 'public'",
		drop:       func(table string) string { return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table) },
		flush:      func(table string) string { return fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table) },
	},
}

// DropAllTables drops all user tables in the database, ignoring foreign key
// constraints. Useful for replaying a schema script from scratch.
func DropAllTables(db *gorm.DB, driverName string) error {
	ops, err := dialectFor(driverName)
	if err != nil {
		return err
	}
	return resetTables(db, ops, ops.drop)
}

// FlushAllTables deletes all records from all user tables in the database,
// ignoring foreign key constraints. Useful for replaying a seed script.
func FlushAllTables(db *gorm.DB, driverName string) error {
	ops, err := dialectFor(driverName)
	if err != nil {
		return err
	}
	return resetTables(db, ops, ops.flush)
}

func dialectFor(driverName string) (dialectOps, error) {
	ops, exists := dialects[driverName]
	if !exists {
		return dialectOps{}, fmt.Errorf("unsupported database driver: %s", driverName)
	}
	return ops, nil
}

func resetTables(db *gorm.DB, ops dialectOps, stmt func(table string) string) error {
	if err := db.Exec(ops.disableFK).Error; err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}

	var tables []string
	if err := db.Raw(ops.listTables).Scan(&tables).Error; err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	for _, table := range tables {
		if err := db.Exec(stmt(table)).Error; err != nil {
			return fmt.Errorf("failed to reset table %s: %w", table, err)
		}
	}

	if err := db.Exec(ops.enableFK).Error; err != nil {
		return fmt.Errorf("failed to re-enable foreign key checks: %w", err)
	}
	return nil
}
