package transaction

import (
	"context"

	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/google/uuid"
)

type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionModel, error)
	InsertTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error)
	UpdateTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID int64) ([]TransactionModel, error)
	ListByWallet(ctx context.Context, userID int64, walletID uuid.UUID) ([]TransactionModel, error)
	ListRecent(ctx context.Context, userID int64, limit int32) ([]TransactionModel, error)
}

// Ledger is a view over both stores that shares one transaction scope, so a
// wallet write and the transaction write it belongs to land together.
type Ledger interface {
	Wallets() wallet.Repository
	Transactions() Repository
}

type Store interface {
	Ledger
	ExecTx(ctx context.Context, fn func(Ledger) error) error
}
