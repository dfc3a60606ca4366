// Package store keeps the IP-to-company directory in a SQL database so it can
// be maintained apart from the text exports it is usually built from.
package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/zhanhb/gateway-report/internal/gateway"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Store struct {
	db     *sqlx.DB
	driver string
}

type entry struct {
	IP      string `db:"ip"`
	Company string `db:"company"`
}

// Open connects to the database and runs pending migrations.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if driver == "sqlite3" {
		// a single connection keeps writes serialized
		db.SetMaxOpenConns(1)
	}

	goose.SetBaseFS(embedMigrations)
	// the report may be going to stdout
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddressBook loads every stored entry.
func (s *Store) AddressBook(ctx context.Context) (gateway.AddressBook, error) {
	var entries []entry
	if err := s.db.SelectContext(ctx, &entries, `SELECT ip, company FROM address_book`); err != nil {
		return gateway.AddressBook{}, fmt.Errorf("loading address book: %w", err)
	}
	companies := make(map[string]string, len(entries))
	for _, e := range entries {
		companies[e.IP] = e.Company
	}
	return gateway.NewAddressBook(companies), nil
}

// ReplaceAddressBook swaps the stored entries for the ones in book in one transaction.
func (s *Store) ReplaceAddressBook(ctx context.Context, book gateway.AddressBook) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM address_book`); err != nil {
		return fmt.Errorf("clearing address book: %w", err)
	}
	insert := tx.Rebind(`INSERT INTO address_book (ip, company) VALUES (?, ?)`)
	for _, ip := range book.IPs() {
		company, _ := book.Lookup(ip)
		if _, err = tx.ExecContext(ctx, insert, ip, company); err != nil {
			return fmt.Errorf("storing %s: %w", ip, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing address book: %w", err)
	}
	return nil
}
