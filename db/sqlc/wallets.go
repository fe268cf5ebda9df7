package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID                  uuid.UUID
	UserID              int64
	Name                string
	Description         sql.NullString
	Type                string
	Currency            string
	InitialBalance      string
	CurrentBalance      string
	CreditLimit         sql.NullString
	Color               string
	Icon                string
	IsActive            bool
	IsDefault           bool
	IsExcludedFromTotal bool
	DisplayOrder        int32
	Notes               sql.NullString
	BankName            sql.NullString
	AccountNumber       sql.NullString
	AccountType         sql.NullString
	InvestmentType      sql.NullString
	InstitutionName     sql.NullString
	TransactionCount    int32
	LastTransactionDate sql.NullTime
	Version             int64
	Deleted             bool
	DeletedAt           sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const walletColumns = `id, user_id, name, description, type, currency, initial_balance, current_balance,
	credit_limit, color, icon, is_active, is_default, is_excluded_from_total, display_order, notes,
	bank_name, account_number, account_type, investment_type, institution_name,
	transaction_count, last_transaction_date, version, deleted, deleted_at, created_at, updated_at`

func scanWallet(row interface{ Scan(...interface{}) error }) (Wallet, error) {
	var w Wallet
	err := row.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Description, &w.Type, &w.Currency,
		&w.InitialBalance, &w.CurrentBalance, &w.CreditLimit, &w.Color, &w.Icon,
		&w.IsActive, &w.IsDefault, &w.IsExcludedFromTotal, &w.DisplayOrder, &w.Notes,
		&w.BankName, &w.AccountNumber, &w.AccountType, &w.InvestmentType, &w.InstitutionName,
		&w.TransactionCount, &w.LastTransactionDate, &w.Version,
		&w.Deleted, &w.DeletedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

type CreateWalletParams struct {
	UserID              int64
	Name                string
	Description         sql.NullString
	Type                string
	Currency            string
	InitialBalance      string
	CurrentBalance      string
	CreditLimit         sql.NullString
	Color               string
	Icon                string
	IsDefault           bool
	IsExcludedFromTotal bool
	DisplayOrder        int32
	Notes               sql.NullString
	BankName            sql.NullString
	AccountNumber       sql.NullString
	AccountType         sql.NullString
	InvestmentType      sql.NullString
	InstitutionName     sql.NullString
}

const createWallet = `INSERT INTO wallets (
	user_id, name, description, type, currency, initial_balance, current_balance,
	credit_limit, color, icon, is_default, is_excluded_from_total, display_order, notes,
	bank_name, account_number, account_type, investment_type, institution_name
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING ` + walletColumns

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, createWallet,
		arg.UserID, arg.Name, arg.Description, arg.Type, arg.Currency,
		arg.InitialBalance, arg.CurrentBalance, arg.CreditLimit, arg.Color, arg.Icon,
		arg.IsDefault, arg.IsExcludedFromTotal, arg.DisplayOrder, arg.Notes,
		arg.BankName, arg.AccountNumber, arg.AccountType, arg.InvestmentType, arg.InstitutionName,
	)
	return scanWallet(row)
}

const getWallet = `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 AND deleted = FALSE`

func (q *Queries) GetWallet(ctx context.Context, id uuid.UUID) (Wallet, error) {
	return scanWallet(q.db.QueryRowContext(ctx, getWallet, id))
}

const getWalletsByUserID = `SELECT ` + walletColumns + ` FROM wallets
WHERE user_id = $1 AND deleted = FALSE
ORDER BY display_order, created_at`

func (q *Queries) GetWalletsByUserID(ctx context.Context, userID int64) ([]Wallet, error) {
	rows, err := q.db.QueryContext(ctx, getWalletsByUserID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

const getDefaultWallet = `SELECT ` + walletColumns + ` FROM wallets
WHERE user_id = $1 AND is_default = TRUE AND deleted = FALSE`

func (q *Queries) GetDefaultWallet(ctx context.Context, userID int64) (Wallet, error) {
	return scanWallet(q.db.QueryRowContext(ctx, getDefaultWallet, userID))
}

type WalletNameExistsParams struct {
	UserID int64
	Name   string
}

const walletNameExists = `SELECT EXISTS (
	SELECT 1 FROM wallets WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND deleted = FALSE
)`

func (q *Queries) WalletNameExists(ctx context.Context, arg WalletNameExistsParams) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, walletNameExists, arg.UserID, arg.Name).Scan(&exists)
	return exists, err
}

type UpdateWalletParams struct {
	ID                  uuid.UUID
	Name                string
	Description         sql.NullString
	CreditLimit         sql.NullString
	Color               string
	Icon                string
	IsActive            bool
	IsDefault           bool
	IsExcludedFromTotal bool
	DisplayOrder        int32
	Notes               sql.NullString
	BankName            sql.NullString
	AccountNumber       sql.NullString
	AccountType         sql.NullString
	InvestmentType      sql.NullString
	InstitutionName     sql.NullString
	Deleted             bool
	DeletedAt           sql.NullTime
	Version             int64
}

// UpdateWallet writes every mutable non-balance field. The WHERE version
// clause is the optimistic lock; zero rows means a concurrent writer won.
const updateWallet = `UPDATE wallets SET
	name = $2, description = $3, credit_limit = $4, color = $5, icon = $6,
	is_active = $7, is_default = $8, is_excluded_from_total = $9, display_order = $10,
	notes = $11, bank_name = $12, account_number = $13, account_type = $14,
	investment_type = $15, institution_name = $16, deleted = $17, deleted_at = $18,
	version = version + 1, updated_at = NOW()
WHERE id = $1 AND version = $19
RETURNING ` + walletColumns

func (q *Queries) UpdateWallet(ctx context.Context, arg UpdateWalletParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, updateWallet,
		arg.ID, arg.Name, arg.Description, arg.CreditLimit, arg.Color, arg.Icon,
		arg.IsActive, arg.IsDefault, arg.IsExcludedFromTotal, arg.DisplayOrder,
		arg.Notes, arg.BankName, arg.AccountNumber, arg.AccountType,
		arg.InvestmentType, arg.InstitutionName, arg.Deleted, arg.DeletedAt, arg.Version,
	)
	return scanWallet(row)
}

type UpdateWalletBalanceParams struct {
	ID                  uuid.UUID
	CurrentBalance      string
	TransactionCount    int32
	LastTransactionDate sql.NullTime
	Version             int64
}

const updateWalletBalance = `UPDATE wallets SET
	current_balance = $2, transaction_count = $3, last_transaction_date = $4,
	version = version + 1, updated_at = NOW()
WHERE id = $1 AND version = $5
RETURNING ` + walletColumns

func (q *Queries) UpdateWalletBalance(ctx context.Context, arg UpdateWalletBalanceParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, updateWalletBalance,
		arg.ID, arg.CurrentBalance, arg.TransactionCount, arg.LastTransactionDate, arg.Version,
	)
	return scanWallet(row)
}

type SetWalletDefaultParams struct {
	ID        uuid.UUID
	IsDefault bool
}

const setWalletDefault = `UPDATE wallets SET is_default = $2, version = version + 1, updated_at = NOW()
WHERE id = $1
RETURNING ` + walletColumns

func (q *Queries) SetWalletDefault(ctx context.Context, arg SetWalletDefaultParams) (Wallet, error) {
	return scanWallet(q.db.QueryRowContext(ctx, setWalletDefault, arg.ID, arg.IsDefault))
}
