package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletType string

const (
	WalletTypeCash          WalletType = "CASH"
	WalletTypeBankAccount   WalletType = "BANK_ACCOUNT"
	WalletTypeCreditCard    WalletType = "CREDIT_CARD"
	WalletTypeInvestment    WalletType = "INVESTMENT"
	WalletTypeSavings       WalletType = "SAVINGS"
	WalletTypeDigitalWallet WalletType = "DIGITAL_WALLET"
	WalletTypeOther         WalletType = "OTHER"
)

func (t WalletType) Valid() bool {
	switch t {
	case WalletTypeCash, WalletTypeBankAccount, WalletTypeCreditCard,
		WalletTypeInvestment, WalletTypeSavings, WalletTypeDigitalWallet, WalletTypeOther:
		return true
	}
	return false
}

func (t WalletType) IsCreditCard() bool {
	return t == WalletTypeCreditCard
}

// WalletModel is a snapshot of a wallet. Every mutating method returns a new
// snapshot and leaves the receiver untouched, so balances can only change by
// replacing the snapshot through the repository's version-guarded writes.
type WalletModel struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              int64           `json:"user_id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Type                WalletType      `json:"type"`
	Currency            string          `json:"currency"`
	InitialBalance      decimal.Decimal `json:"initial_balance"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	CreditLimit         decimal.Decimal `json:"credit_limit"`
	Color               string          `json:"color"`
	Icon                string          `json:"icon"`
	IsActive            bool            `json:"is_active"`
	IsDefault           bool            `json:"is_default"`
	IsExcludedFromTotal bool            `json:"is_excluded_from_total"`
	DisplayOrder        int32           `json:"display_order"`
	Notes               string          `json:"notes,omitempty"`
	BankName            string          `json:"bank_name,omitempty"`
	AccountNumber       string          `json:"account_number,omitempty"`
	AccountType         string          `json:"account_type,omitempty"`
	InvestmentType      string          `json:"investment_type,omitempty"`
	InstitutionName     string          `json:"institution_name,omitempty"`
	TransactionCount    int32           `json:"transaction_count"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
	Version             int64           `json:"-"`
	Deleted             bool            `json:"-"`
	DeletedAt           *time.Time      `json:"-"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ApplyDelta is the only sanctioned way a balance changes. The delta is
// signed: positive values credit the wallet, negative values debit it.
//
// Non-credit wallets must never go negative; credit cards may go negative
// up to their credit limit.
func (w WalletModel) ApplyDelta(amount decimal.Decimal, occurredAt time.Time) (WalletModel, error) {
	newBalance := w.CurrentBalance.Add(amount)

	if !w.Type.IsCreditCard() && newBalance.IsNegative() {
		return WalletModel{}, NewWalletError(ErrInsufficientFunds, w.ID.String())
	}

	if w.Type.IsCreditCard() && newBalance.Neg().GreaterThan(w.CreditLimit) {
		return WalletModel{}, NewWalletError(ErrCreditLimitExceeded, w.ID.String())
	}

	w.CurrentBalance = newBalance
	w.TransactionCount++
	w.LastTransactionDate = &occurredAt
	return w, nil
}

// AvailableToSpend reports how much the wallet can still cover: the balance
// for ordinary wallets, balance plus remaining credit for credit cards.
func (w WalletModel) AvailableToSpend() decimal.Decimal {
	if w.Type.IsCreditCard() {
		return w.CreditLimit.Add(w.CurrentBalance)
	}
	return w.CurrentBalance
}

func (w WalletModel) SetAsDefault() WalletModel {
	w.IsDefault = true
	return w
}

func (w WalletModel) RemoveDefaultStatus() WalletModel {
	w.IsDefault = false
	return w
}

// Disable soft-deletes the wallet. Active is always the negation of deleted.
func (w WalletModel) Disable(at time.Time) WalletModel {
	w.Deleted = true
	w.IsActive = false
	w.DeletedAt = &at
	return w
}

func (w WalletModel) UpdateDetails(name, description, color, icon string) WalletModel {
	if name != "" {
		w.Name = name
	}
	if description != "" {
		w.Description = description
	}
	if color != "" {
		w.Color = color
	}
	if icon != "" {
		w.Icon = icon
	}
	return w
}

func (w WalletModel) UpdateCreditLimit(limit decimal.Decimal) (WalletModel, error) {
	if !w.Type.IsCreditCard() {
		return WalletModel{}, NewWalletError(ErrCreditLimitNotAllowed, w.ID.String())
	}
	if limit.IsNegative() {
		limit = decimal.Zero
	}
	w.CreditLimit = limit
	return w, nil
}

func (w WalletModel) SetIncludedInTotal(include bool) WalletModel {
	w.IsExcludedFromTotal = !include
	return w
}

func (w WalletModel) UpdateDisplayOrder(order int32) WalletModel {
	w.DisplayOrder = order
	return w
}

func (w WalletModel) UpdateBankDetails(bankName, accountNumber, accountType string) (WalletModel, error) {
	if w.Type != WalletTypeBankAccount {
		return WalletModel{}, NewWalletError(ErrInvalidWalletType, w.ID.String())
	}
	w.BankName = bankName
	w.AccountNumber = accountNumber
	w.AccountType = accountType
	return w, nil
}

func (w WalletModel) UpdateInvestmentDetails(investmentType, institutionName string) (WalletModel, error) {
	if w.Type != WalletTypeInvestment {
		return WalletModel{}, NewWalletError(ErrInvalidWalletType, w.ID.String())
	}
	w.InvestmentType = investmentType
	w.InstitutionName = institutionName
	return w, nil
}
