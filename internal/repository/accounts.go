// Package repository provides the write-only Postgres sinks for credential
// records and transaction audit lines. The bank never reads these tables
// back; the in-memory directory stays the source of truth for login.
package repository

import (
	"context"
	"crypto/cipher"
	"database/sql"
	"fmt"

	"github.com/atmlab/teller/internal/bank"
	"github.com/atmlab/teller/internal/crypto"
)

// PostgresAccountRepository stores credential records for newly created
// accounts, obfuscating the password before it touches the database.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// aead seals the password column.
	aead cipher.AEAD
}

// NewPostgresAccountRepository creates an account sink over the given
// database connection, sealing passwords with the given AEAD.
func NewPostgresAccountRepository(db *sql.DB, aead cipher.AEAD) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db, aead: aead}
}

// RecordAccount writes one credential record. A duplicate account number
// is silently ignored via ON CONFLICT DO NOTHING, since the directory has
// already enforced uniqueness.
func (r *PostgresAccountRepository) RecordAccount(ctx context.Context, rec bank.AccountRecord) error {
	sealed, err := crypto.Seal(r.aead, rec.Password)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}
	_, err = r.DB.ExecContext(
		ctx,
		`INSERT INTO accounts (number, password, type, balance) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
		rec.Number, sealed, string(rec.Type), rec.Balance,
	)
	if err != nil {
		return fmt.Errorf("RecordAccount: %w", err)
	}
	return nil
}
