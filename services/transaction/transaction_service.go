package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxConflictRetries bounds how often an operation is replayed after an
// optimistic-lock conflict on a wallet row.
const maxConflictRetries = 3

// TransactionService coordinates wallet mutation with transaction
// persistence. Every operation runs as one database transaction; the wallet
// guards in ApplyDelta are the only balance checks, for every path.
type TransactionService struct {
	store  Store
	logger *logging.Logger
}

func NewTransactionService(store Store, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// CreateTransaction applies the transaction's effect to the wallet(s) it
// references and persists the record, atomically. For transfers the
// destination wallet is credited with the full amount before the source is
// debited with the effective amount.
func (s *TransactionService) CreateTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("creating %v transaction for user %v", t.Type, t.UserID))

	var created *TransactionModel
	err := s.withConflictRetry(func() error {
		return s.store.ExecTx(ctx, func(l Ledger) error {
			var err error
			created, err = s.applyAndPersist(ctx, l, t)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("created transaction %v and updated wallet balances", created.ID))
	return created, nil
}

// UpdateTransaction reverses the stored transaction's effect, then applies
// the incoming one as if freshly created. The type is immutable; wallet
// references, amount and descriptive fields may change. Up to four wallets
// are written when old and new references differ.
func (s *TransactionService) UpdateTransaction(ctx context.Context, t TransactionModel) (*TransactionModel, error) {
	if t.ID == uuid.Nil {
		return nil, NewTransactionError(ErrTransactionNotFound, "missing transaction id")
	}

	s.logger.Info(fmt.Sprintf("updating transaction %v", t.ID))

	var updated *TransactionModel
	err := s.withConflictRetry(func() error {
		return s.store.ExecTx(ctx, func(l Ledger) error {
			existing, err := l.Transactions().GetTransaction(ctx, t.ID)
			if err != nil {
				return err
			}
			if existing.UserID != t.UserID {
				return NewTransactionError(ErrNotYours, t.ID.String())
			}
			if t.Type != "" && t.Type != existing.Type {
				return NewTransactionError(ErrTransactionTypeImmutable,
					fmt.Sprintf("%v -> %v", existing.Type, t.Type))
			}
			t.Type = existing.Type
			if t.Status == "" {
				t.Status = existing.Status
			}

			if err := t.Validate(); err != nil {
				return err
			}

			// Undo the old effect first so the new effect is computed
			// against balances that no longer contain it.
			if err := s.reverse(ctx, l, *existing); err != nil {
				return err
			}

			if _, err := s.applyWalletEffects(ctx, l, t); err != nil {
				return err
			}

			updated, err = l.Transactions().UpdateTransaction(ctx, t)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("updated transaction %v and adjusted wallet balances", t.ID))
	return updated, nil
}

// DeleteTransaction reverses the transaction's effect on its wallet(s) and
// removes the record.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) error {
	s.logger.Info(fmt.Sprintf("deleting transaction %v", id))

	err := s.withConflictRetry(func() error {
		return s.store.ExecTx(ctx, func(l Ledger) error {
			existing, err := l.Transactions().GetTransaction(ctx, id)
			if err != nil {
				return err
			}
			if existing.UserID != userID {
				return NewTransactionError(ErrNotYours, id.String())
			}

			if err := s.reverse(ctx, l, *existing); err != nil {
				return err
			}

			return l.Transactions().DeleteTransaction(ctx, id)
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("deleted transaction %v and adjusted wallet balances", id))
	return nil
}

// TransferBetweenWallets is the direct wallet-to-wallet helper. It builds a
// TRANSFER transaction and routes it through CreateTransaction so both
// wallets pass through ApplyDelta and both balance guards, the same as every
// other path.
func (s *TransactionService) TransferBetweenWallets(ctx context.Context, userID int64, fromWalletID, toWalletID uuid.UUID, amount decimal.Decimal, description string, transactionDate time.Time) (*TransactionModel, error) {
	if fromWalletID == toWalletID {
		return nil, NewTransactionError(ErrSameWallet, "")
	}

	return s.CreateTransaction(ctx, TransactionModel{
		UserID:          userID,
		WalletID:        fromWalletID,
		ToWalletID:      &toWalletID,
		Type:            TypeTransfer,
		Amount:          amount,
		Description:     description,
		TransactionDate: transactionDate,
	})
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID int64, id uuid.UUID) (*TransactionModel, error) {
	t, err := s.store.Transactions().GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, NewTransactionError(ErrNotYours, id.String())
	}
	return t, nil
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID int64) ([]TransactionModel, error) {
	return s.store.Transactions().ListByUser(ctx, userID)
}

func (s *TransactionService) GetWalletTransactions(ctx context.Context, userID int64, walletID uuid.UUID) ([]TransactionModel, error) {
	return s.store.Transactions().ListByWallet(ctx, userID, walletID)
}

func (s *TransactionService) GetRecentTransactions(ctx context.Context, userID int64, limit int32) ([]TransactionModel, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.Transactions().ListRecent(ctx, userID, limit)
}

// applyAndPersist runs create steps: wallet effects, then the record write.
func (s *TransactionService) applyAndPersist(ctx context.Context, l Ledger, t TransactionModel) (*TransactionModel, error) {
	if _, err := s.applyWalletEffects(ctx, l, t); err != nil {
		return nil, err
	}
	return l.Transactions().InsertTransaction(ctx, t)
}

// applyWalletEffects credits the transfer destination (if any) and applies
// the effective amount to the source wallet, persisting each snapshot.
func (s *TransactionService) applyWalletEffects(ctx context.Context, l Ledger, t TransactionModel) (*wallet.WalletModel, error) {
	now := time.Now()

	source, err := l.Wallets().GetWallet(ctx, t.WalletID)
	if err != nil {
		return nil, err
	}
	if source.UserID != t.UserID {
		return nil, wallet.NewWalletError(wallet.ErrNotYours, t.WalletID.String())
	}

	if t.IsTransfer() {
		dest, err := l.Wallets().GetWallet(ctx, *t.ToWalletID)
		if err != nil {
			return nil, err
		}
		if dest.UserID != t.UserID {
			return nil, wallet.NewWalletError(wallet.ErrNotYours, t.ToWalletID.String())
		}

		credited, err := dest.ApplyDelta(t.Amount, now)
		if err != nil {
			return nil, err
		}
		if _, err := l.Wallets().UpdateWalletBalance(ctx, credited); err != nil {
			return nil, err
		}

		// Source and destination may share a row only through distinct ids,
		// so re-reading is unnecessary; Validate rejected same-wallet moves.
	}

	debited, err := source.ApplyDelta(t.EffectiveAmount(), now)
	if err != nil {
		return nil, err
	}
	return l.Wallets().UpdateWalletBalance(ctx, debited)
}

// reverse undoes a persisted transaction's effect: the negated effective
// amount on the source wallet and, for transfers, the negated amount on the
// destination wallet.
func (s *TransactionService) reverse(ctx context.Context, l Ledger, t TransactionModel) error {
	now := time.Now()

	source, err := l.Wallets().GetWallet(ctx, t.WalletID)
	if err != nil {
		return err
	}
	reverted, err := source.ApplyDelta(t.EffectiveAmount().Neg(), now)
	if err != nil {
		return err
	}
	if _, err := l.Wallets().UpdateWalletBalance(ctx, reverted); err != nil {
		return err
	}

	if t.IsTransfer() && t.ToWalletID != nil {
		dest, err := l.Wallets().GetWallet(ctx, *t.ToWalletID)
		if err != nil {
			return err
		}
		revertedDest, err := dest.ApplyDelta(t.Amount.Neg(), now)
		if err != nil {
			return err
		}
		if _, err := l.Wallets().UpdateWalletBalance(ctx, revertedDest); err != nil {
			return err
		}
	}

	return nil
}

// withConflictRetry replays op after optimistic-lock conflicts; each replay
// re-reads every wallet inside a fresh database transaction.
func (s *TransactionService) withConflictRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = op()
		if !errors.Is(err, wallet.ErrConcurrentModification) {
			return err
		}
		s.logger.Warn(fmt.Sprintf("wallet version conflict, retrying (attempt %d)", attempt+1))
	}
	return err
}
