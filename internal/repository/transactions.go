package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atmlab/teller/internal/bank"
)

// PostgresTransactionRepository appends audit lines for successful
// deposits and withdrawals. Account numbers are masked so the audit
// trail never carries a full account identity.
type PostgresTransactionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTransactionRepository creates a transaction sink over the
// given database connection.
func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{DB: db}
}

// RecordTransaction writes one audit line with a fresh id and timestamp.
func (r *PostgresTransactionRepository) RecordTransaction(ctx context.Context, rec bank.TransactionRecord) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO transactions (id, created_at, account, type, amount, balance) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), time.Now(), maskAccountNumber(rec.Account), rec.Type, rec.Amount, rec.Balance,
	)
	if err != nil {
		return fmt.Errorf("RecordTransaction: %w", err)
	}
	return nil
}

// maskAccountNumber hides all but the last two digits. Numbers of two or
// fewer characters pass through unchanged.
func maskAccountNumber(number string) string {
	if len(number) <= 2 {
		return number
	}
	return "***" + number[len(number)-2:]
}
