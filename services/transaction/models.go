package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusFailed    TransactionStatus = "FAILED"
)

// TransactionModel records one money movement. Amount is always positive;
// the direction comes from the type via EffectiveAmount.
type TransactionModel struct {
	ID              uuid.UUID         `json:"id"`
	UserID          int64             `json:"user_id"`
	WalletID        uuid.UUID         `json:"wallet_id"`
	CategoryID      *uuid.UUID        `json:"category_id,omitempty"`
	ToWalletID      *uuid.UUID        `json:"to_wallet_id,omitempty"`
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	TransactionDate time.Time         `json:"transaction_date"`
	Description     string            `json:"description,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          TransactionStatus `json:"status"`
	ReferenceNumber string            `json:"reference_number,omitempty"`
	Payee           string            `json:"payee,omitempty"`
	Tags            string            `json:"tags,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Validate enforces the structural rules before any wallet is touched:
// positive amount, mandatory type/user/wallet, destination for transfers,
// category for income and expense. It also fills defaults the way the
// constructor does everywhere else (currency, status, date).
func (t *TransactionModel) Validate() error {
	if !t.Type.Valid() {
		return NewTransactionError(ErrInvalidTransaction, "transaction type is required")
	}
	if t.UserID == 0 {
		return NewTransactionError(ErrInvalidTransaction, "user id is required")
	}
	if t.WalletID == uuid.Nil {
		return NewTransactionError(ErrInvalidTransaction, "wallet id is required")
	}
	if !t.Amount.IsPositive() {
		return NewTransactionError(ErrInvalidTransaction, "transaction amount must be positive")
	}

	switch t.Type {
	case TypeTransfer:
		if t.ToWalletID == nil || *t.ToWalletID == uuid.Nil {
			return NewTransactionError(ErrInvalidTransaction, "destination wallet id is required for transfers")
		}
		if *t.ToWalletID == t.WalletID {
			return NewTransactionError(ErrSameWallet, "")
		}
	case TypeIncome, TypeExpense:
		if t.CategoryID == nil || *t.CategoryID == uuid.Nil {
			return NewTransactionError(ErrInvalidTransaction, "category id is required for income/expense transactions")
		}
		t.ToWalletID = nil
	}

	t.Amount = t.Amount.Round(2)
	if t.Currency == "" {
		t.Currency = "USD"
	}
	if t.Status == "" {
		t.Status = StatusCompleted
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	return nil
}

// EffectiveAmount is the signed value applied to the source wallet:
// +amount for income, -amount for expense and transfer. The destination
// wallet of a transfer always receives +amount, never this value.
func (t TransactionModel) EffectiveAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

func (t TransactionModel) IsTransfer() bool {
	return t.Type == TypeTransfer
}
