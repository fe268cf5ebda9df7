package transaction

import (
	"context"
	"database/sql"
	"errors"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/google/uuid"
)

type SQLRepository struct {
	queries *db.Queries
}

func NewSQLRepository(queries *db.Queries) *SQLRepository {
	return &SQLRepository{queries: queries}
}

func (r *SQLRepository) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionModel, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewTransactionError(ErrTransactionNotFound, id.String())
	} else if err != nil {
		return nil, err
	}
	return ToTransactionModel(row)
}

func (r *SQLRepository) InsertTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error) {
	row, err := r.queries.CreateTransaction(ctx, db.CreateTransactionParams{
		UserID:          t.UserID,
		WalletID:        t.WalletID,
		CategoryID:      nullUUID(t.CategoryID),
		ToWalletID:      nullUUID(t.ToWalletID),
		Type:            string(t.Type),
		Amount:          t.Amount.StringFixed(2),
		Currency:        t.Currency,
		TransactionDate: t.TransactionDate,
		Description:     nullString(t.Description),
		Notes:           nullString(t.Notes),
		Status:          string(t.Status),
		ReferenceNumber: nullString(t.ReferenceNumber),
		Payee:           nullString(t.Payee),
		Tags:            nullString(t.Tags),
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionModel(row)
}

func (r *SQLRepository) UpdateTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error) {
	row, err := r.queries.UpdateTransaction(ctx, db.UpdateTransactionParams{
		ID:              t.ID,
		WalletID:        t.WalletID,
		CategoryID:      nullUUID(t.CategoryID),
		ToWalletID:      nullUUID(t.ToWalletID),
		Amount:          t.Amount.StringFixed(2),
		Currency:        t.Currency,
		TransactionDate: t.TransactionDate,
		Description:     nullString(t.Description),
		Notes:           nullString(t.Notes),
		Status:          string(t.Status),
		ReferenceNumber: nullString(t.ReferenceNumber),
		Payee:           nullString(t.Payee),
		Tags:            nullString(t.Tags),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewTransactionError(ErrTransactionNotFound, t.ID.String())
	} else if err != nil {
		return nil, err
	}
	return ToTransactionModel(row)
}

func (r *SQLRepository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	err := r.queries.DeleteTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return NewTransactionError(ErrTransactionNotFound, id.String())
	}
	return err
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int64) ([]TransactionModel, error) {
	rows, err := r.queries.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows)
}

func (r *SQLRepository) ListByWallet(ctx context.Context, userID int64, walletID uuid.UUID) ([]TransactionModel, error) {
	rows, err := r.queries.ListTransactionsByWallet(ctx, db.ListTransactionsByWalletParams{
		UserID:   userID,
		WalletID: walletID,
	})
	if err != nil {
		return nil, err
	}
	return mapRows(rows)
}

func (r *SQLRepository) ListRecent(ctx context.Context, userID int64, limit int32) ([]TransactionModel, error) {
	rows, err := r.queries.ListRecentTransactions(ctx, db.ListRecentTransactionsParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return mapRows(rows)
}

func mapRows(rows []db.Transaction) ([]TransactionModel, error) {
	items := make([]TransactionModel, 0, len(rows))
	for _, row := range rows {
		t, err := ToTransactionModel(row)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, nil
}

// sqlLedger is a transaction-scoped view over both repositories.
type sqlLedger struct {
	wallets      *wallet.SQLRepository
	transactions *SQLRepository
}

func (l sqlLedger) Wallets() wallet.Repository { return l.wallets }

func (l sqlLedger) Transactions() Repository { return l.transactions }

func newSQLLedger(q *db.Queries) sqlLedger {
	return sqlLedger{
		wallets:      wallet.NewSQLRepository(q),
		transactions: NewSQLRepository(q),
	}
}

type SQLStore struct {
	sqlLedger
	store *db.Store
}

func NewSQLStore(store *db.Store) *SQLStore {
	return &SQLStore{
		sqlLedger: newSQLLedger(store.Queries),
		store:     store,
	}
}

func (s *SQLStore) ExecTx(ctx context.Context, fn func(Ledger) error) error {
	return s.store.ExecTx(ctx, func(q *db.Queries) error {
		return fn(newSQLLedger(q))
	})
}
