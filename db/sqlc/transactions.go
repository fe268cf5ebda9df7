package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID              uuid.UUID
	UserID          int64
	WalletID        uuid.UUID
	CategoryID      uuid.NullUUID
	ToWalletID      uuid.NullUUID
	Type            string
	Amount          string
	Currency        string
	TransactionDate time.Time
	Description     sql.NullString
	Notes           sql.NullString
	Status          string
	ReferenceNumber sql.NullString
	Payee           sql.NullString
	Tags            sql.NullString
	Deleted         bool
	DeletedAt       sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const transactionColumns = `id, user_id, wallet_id, category_id, to_wallet_id, type, amount, currency,
	transaction_date, description, notes, status, reference_number, payee, tags,
	deleted, deleted_at, created_at, updated_at`

func scanTransaction(row interface{ Scan(...interface{}) error }) (Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &t.ToWalletID, &t.Type,
		&t.Amount, &t.Currency, &t.TransactionDate, &t.Description, &t.Notes,
		&t.Status, &t.ReferenceNumber, &t.Payee, &t.Tags,
		&t.Deleted, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

type CreateTransactionParams struct {
	UserID          int64
	WalletID        uuid.UUID
	CategoryID      uuid.NullUUID
	ToWalletID      uuid.NullUUID
	Type            string
	Amount          string
	Currency        string
	TransactionDate time.Time
	Description     sql.NullString
	Notes           sql.NullString
	Status          string
	ReferenceNumber sql.NullString
	Payee           sql.NullString
	Tags            sql.NullString
}

const createTransaction = `INSERT INTO transactions (
	user_id, wallet_id, category_id, to_wallet_id, type, amount, currency,
	transaction_date, description, notes, status, reference_number, payee, tags
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + transactionColumns

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.UserID, arg.WalletID, arg.CategoryID, arg.ToWalletID, arg.Type,
		arg.Amount, arg.Currency, arg.TransactionDate, arg.Description, arg.Notes,
		arg.Status, arg.ReferenceNumber, arg.Payee, arg.Tags,
	)
	return scanTransaction(row)
}

const getTransaction = `SELECT ` + transactionColumns + ` FROM transactions
WHERE id = $1 AND deleted = FALSE`

func (q *Queries) GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error) {
	return scanTransaction(q.db.QueryRowContext(ctx, getTransaction, id))
}

type UpdateTransactionParams struct {
	ID              uuid.UUID
	WalletID        uuid.UUID
	CategoryID      uuid.NullUUID
	ToWalletID      uuid.NullUUID
	Amount          string
	Currency        string
	TransactionDate time.Time
	Description     sql.NullString
	Notes           sql.NullString
	Status          string
	ReferenceNumber sql.NullString
	Payee           sql.NullString
	Tags            sql.NullString
}

// Type is deliberately absent; a transaction never changes type after creation.
const updateTransaction = `UPDATE transactions SET
	wallet_id = $2, category_id = $3, to_wallet_id = $4, amount = $5, currency = $6,
	transaction_date = $7, description = $8, notes = $9, status = $10,
	reference_number = $11, payee = $12, tags = $13, updated_at = NOW()
WHERE id = $1 AND deleted = FALSE
RETURNING ` + transactionColumns

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, updateTransaction,
		arg.ID, arg.WalletID, arg.CategoryID, arg.ToWalletID, arg.Amount, arg.Currency,
		arg.TransactionDate, arg.Description, arg.Notes, arg.Status,
		arg.ReferenceNumber, arg.Payee, arg.Tags,
	)
	return scanTransaction(row)
}

const deleteTransaction = `UPDATE transactions SET deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted = FALSE`

func (q *Queries) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const listTransactionsByUser = `SELECT ` + transactionColumns + ` FROM transactions
WHERE user_id = $1 AND deleted = FALSE
ORDER BY transaction_date DESC, created_at DESC`

func (q *Queries) ListTransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

type ListTransactionsByWalletParams struct {
	UserID   int64
	WalletID uuid.UUID
}

const listTransactionsByWallet = `SELECT ` + transactionColumns + ` FROM transactions
WHERE user_id = $1 AND (wallet_id = $2 OR to_wallet_id = $2) AND deleted = FALSE
ORDER BY transaction_date DESC, created_at DESC`

func (q *Queries) ListTransactionsByWallet(ctx context.Context, arg ListTransactionsByWalletParams) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByWallet, arg.UserID, arg.WalletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

type ListRecentTransactionsParams struct {
	UserID int64
	Limit  int32
}

const listRecentTransactions = `SELECT ` + transactionColumns + ` FROM transactions
WHERE user_id = $1 AND deleted = FALSE
ORDER BY transaction_date DESC, created_at DESC
LIMIT $2`

func (q *Queries) ListRecentTransactions(ctx context.Context, arg ListRecentTransactionsParams) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listRecentTransactions, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]Transaction, error) {
	var items []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
