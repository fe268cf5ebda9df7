package wallet

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for wallets. Soft-deleted wallets
// are invisible through it: GetWallet returns ErrWalletNotFound for them and
// the listing queries skip them.
type Repository interface {
	GetWallet(ctx context.Context, id uuid.UUID) (*WalletModel, error)
	GetWalletsByUserID(ctx context.Context, userID int64) ([]WalletModel, error)
	// GetDefaultWallet returns (nil, nil) when the user has no default wallet.
	GetDefaultWallet(ctx context.Context, userID int64) (*WalletModel, error)
	NameExists(ctx context.Context, userID int64, name string) (bool, error)
	InsertWallet(ctx context.Context, w WalletModel) (*WalletModel, error)
	// UpdateWallet and UpdateWalletBalance are conditioned on w.Version and
	// return ErrConcurrentModification when another writer got there first.
	UpdateWallet(ctx context.Context, w WalletModel) (*WalletModel, error)
	UpdateWalletBalance(ctx context.Context, w WalletModel) (*WalletModel, error)
	SetDefaultFlag(ctx context.Context, id uuid.UUID, isDefault bool) error
}

// Store adds the scoped-transaction boundary: every multi-write wallet
// operation runs inside ExecTx so its writes commit or roll back together.
type Store interface {
	Repository
	ExecTx(ctx context.Context, fn func(Repository) error) error
}
