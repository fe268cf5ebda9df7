package wallet

import (
	"database/sql"
	"fmt"
	"time"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/shopspring/decimal"
)

func ToWalletModel(row db.Wallet) (*WalletModel, error) {
	initial, err := decimal.NewFromString(row.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("parse initial balance: %w", err)
	}
	current, err := decimal.NewFromString(row.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("parse current balance: %w", err)
	}
	limit := decimal.Zero
	if row.CreditLimit.Valid {
		limit, err = decimal.NewFromString(row.CreditLimit.String)
		if err != nil {
			return nil, fmt.Errorf("parse credit limit: %w", err)
		}
	}

	return &WalletModel{
		ID:                  row.ID,
		UserID:              row.UserID,
		Name:                row.Name,
		Description:         row.Description.String,
		Type:                WalletType(row.Type),
		Currency:            row.Currency,
		InitialBalance:      initial,
		CurrentBalance:      current,
		CreditLimit:         limit,
		Color:               row.Color,
		Icon:                row.Icon,
		IsActive:            row.IsActive,
		IsDefault:           row.IsDefault,
		IsExcludedFromTotal: row.IsExcludedFromTotal,
		DisplayOrder:        row.DisplayOrder,
		Notes:               row.Notes.String,
		BankName:            row.BankName.String,
		AccountNumber:       row.AccountNumber.String,
		AccountType:         row.AccountType.String,
		InvestmentType:      row.InvestmentType.String,
		InstitutionName:     row.InstitutionName.String,
		TransactionCount:    row.TransactionCount,
		LastTransactionDate: nullTimePtr(row.LastTransactionDate),
		Version:             row.Version,
		Deleted:             row.Deleted,
		DeletedAt:           nullTimePtr(row.DeletedAt),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func creditLimitColumn(w WalletModel) sql.NullString {
	if !w.Type.IsCreditCard() {
		return sql.NullString{}
	}
	return sql.NullString{String: w.CreditLimit.StringFixed(2), Valid: true}
}
