package wallet

import (
	"context"
	"database/sql"
	"errors"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/google/uuid"
)

type SQLRepository struct {
	queries *db.Queries
}

func NewSQLRepository(queries *db.Queries) *SQLRepository {
	return &SQLRepository{queries: queries}
}

func (r *SQLRepository) GetWallet(ctx context.Context, id uuid.UUID) (*WalletModel, error) {
	row, err := r.queries.GetWallet(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletError(ErrWalletNotFound, id.String())
	} else if err != nil {
		return nil, err
	}
	return ToWalletModel(row)
}

func (r *SQLRepository) GetWalletsByUserID(ctx context.Context, userID int64) ([]WalletModel, error) {
	rows, err := r.queries.GetWalletsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	wallets := make([]WalletModel, 0, len(rows))
	for _, row := range rows {
		w, err := ToWalletModel(row)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *w)
	}
	return wallets, nil
}

func (r *SQLRepository) GetDefaultWallet(ctx context.Context, userID int64) (*WalletModel, error) {
	row, err := r.queries.GetDefaultWallet(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return ToWalletModel(row)
}

func (r *SQLRepository) NameExists(ctx context.Context, userID int64, name string) (bool, error) {
	return r.queries.WalletNameExists(ctx, db.WalletNameExistsParams{
		UserID: userID,
		Name:   name,
	})
}

func (r *SQLRepository) InsertWallet(ctx context.Context, w WalletModel) (*WalletModel, error) {
	row, err := r.queries.CreateWallet(ctx, db.CreateWalletParams{
		UserID:              w.UserID,
		Name:                w.Name,
		Description:         nullString(w.Description),
		Type:                string(w.Type),
		Currency:            w.Currency,
		InitialBalance:      w.InitialBalance.StringFixed(2),
		CurrentBalance:      w.CurrentBalance.StringFixed(2),
		CreditLimit:         creditLimitColumn(w),
		Color:               w.Color,
		Icon:                w.Icon,
		IsDefault:           w.IsDefault,
		IsExcludedFromTotal: w.IsExcludedFromTotal,
		DisplayOrder:        w.DisplayOrder,
		Notes:               nullString(w.Notes),
		BankName:            nullString(w.BankName),
		AccountNumber:       nullString(w.AccountNumber),
		AccountType:         nullString(w.AccountType),
		InvestmentType:      nullString(w.InvestmentType),
		InstitutionName:     nullString(w.InstitutionName),
	})
	if err != nil {
		return nil, err
	}
	return ToWalletModel(row)
}

func (r *SQLRepository) UpdateWallet(ctx context.Context, w WalletModel) (*WalletModel, error) {
	row, err := r.queries.UpdateWallet(ctx, db.UpdateWalletParams{
		ID:                  w.ID,
		Name:                w.Name,
		Description:         nullString(w.Description),
		CreditLimit:         creditLimitColumn(w),
		Color:               w.Color,
		Icon:                w.Icon,
		IsActive:            w.IsActive,
		IsDefault:           w.IsDefault,
		IsExcludedFromTotal: w.IsExcludedFromTotal,
		DisplayOrder:        w.DisplayOrder,
		Notes:               nullString(w.Notes),
		BankName:            nullString(w.BankName),
		AccountNumber:       nullString(w.AccountNumber),
		AccountType:         nullString(w.AccountType),
		InvestmentType:      nullString(w.InvestmentType),
		InstitutionName:     nullString(w.InstitutionName),
		Deleted:             w.Deleted,
		DeletedAt:           nullTime(w.DeletedAt),
		Version:             w.Version,
	})
	if errors.Is(err, sql.ErrNoRows) {
		// The row exists (we loaded it this operation) but the version moved on.
		return nil, NewWalletError(ErrConcurrentModification, w.ID.String())
	} else if err != nil {
		return nil, err
	}
	return ToWalletModel(row)
}

func (r *SQLRepository) UpdateWalletBalance(ctx context.Context, w WalletModel) (*WalletModel, error) {
	row, err := r.queries.UpdateWalletBalance(ctx, db.UpdateWalletBalanceParams{
		ID:                  w.ID,
		CurrentBalance:      w.CurrentBalance.StringFixed(2),
		TransactionCount:    w.TransactionCount,
		LastTransactionDate: nullTime(w.LastTransactionDate),
		Version:             w.Version,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletError(ErrConcurrentModification, w.ID.String())
	} else if err != nil {
		return nil, err
	}
	return ToWalletModel(row)
}

func (r *SQLRepository) SetDefaultFlag(ctx context.Context, id uuid.UUID, isDefault bool) error {
	_, err := r.queries.SetWalletDefault(ctx, db.SetWalletDefaultParams{
		ID:        id,
		IsDefault: isDefault,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return NewWalletError(ErrWalletNotFound, id.String())
	}
	return err
}

// SQLStore backs the wallet Store with the shared db.Store unit of work.
type SQLStore struct {
	*SQLRepository
	store *db.Store
}

func NewSQLStore(store *db.Store) *SQLStore {
	return &SQLStore{
		SQLRepository: NewSQLRepository(store.Queries),
		store:         store,
	}
}

func (s *SQLStore) ExecTx(ctx context.Context, fn func(Repository) error) error {
	return s.store.ExecTx(ctx, func(q *db.Queries) error {
		return fn(NewSQLRepository(q))
	})
}
