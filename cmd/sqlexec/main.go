// Command sqlexec executes the statements of a SQL script file against a
// database described by a flat properties file:
//
//	sqlexec -props db.properties -script schema.sql
//
// The properties file must define driver, conn, user, password and
// separator. The -drop and -flush flags reset the target schema before the
// script runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ieshan/sqlexec"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	props := flag.String("props", "", "path to the properties file (driver, conn, user, password, separator)")
	script := flag.String("script", "", "path to the SQL script to execute")
	drop := flag.Bool("drop", false, "drop all tables before executing the script")
	flush := flag.Bool("flush", false, "delete all rows from all tables before executing the script")
	flag.Parse()

	if *props == "" || *script == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := sqlexec.LoadConfig(*props)
	if err != nil {
		log.Fatal(err)
	}

	if *drop || *flush {
		if err := resetSchema(cfg, *drop); err != nil {
			log.Fatal(err)
		}
	}

	f, err := os.Open(*script)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	manager := sqlexec.NewConnectionManager()
	registerDrivers(manager)

	runner := sqlexec.NewRunner(manager, os.Stdout)
	if err := runner.Run(cfg, f); err != nil {
		// The runner already reported the failure.
		os.Exit(1)
	}
}

// registerDrivers wires the gorm openers for the drivers this binary ships.
func registerDrivers(m *sqlexec.ConnectionManager) {
	for _, driver := range []string{sqlexec.DbSqlite, sqlexec.DbMySQL, sqlexec.DbPostgres} {
		m.AddConnectionFunc(driver, func(cfg *sqlexec.Config) (sqlexec.Database, error) {
			db, err := openGorm(cfg)
			if err != nil {
				return nil, err
			}
			return sqlexec.NewGormDatabase(db), nil
		})
	}
}

// openGorm composes the driver-specific DSN from the configuration and
// dials the database.
func openGorm(cfg *sqlexec.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case sqlexec.DbSqlite:
		dialector = sqlite.Open(cfg.Conn)
	case sqlexec.DbMySQL:
		dialector = mysql.Open(fmt.Sprintf("%s:%s@%s", cfg.User, cfg.Password, cfg.Conn))
	case sqlexec.DbPostgres:
		dialector = postgres.Open(fmt.Sprintf("%s user=%s password=%s", cfg.Conn, cfg.User, cfg.Password))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// resetSchema opens its own short-lived connection to drop or flush every
// table before the script runs.
func resetSchema(cfg *sqlexec.Config, drop bool) error {
	db, err := openGorm(cfg)
	if err != nil {
		return err
	}
	defer func() {
		sqlDB, derr := db.DB()
		if derr != nil {
			log.Printf("Error resolving reset connection for close: %v", derr)
			return
		}
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("Error closing reset connection: %v", cerr)
		}
	}()

	if drop {
		return sqlexec.DropAllTables(db, cfg.Driver)
	}
	return sqlexec.FlushAllTables(db, cfg.Driver)
}
