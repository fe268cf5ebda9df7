package transaction

import (
	"database/sql"
	"fmt"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ToTransactionModel(row db.Transaction) (*TransactionModel, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}

	return &TransactionModel{
		ID:              row.ID,
		UserID:          row.UserID,
		WalletID:        row.WalletID,
		CategoryID:      nullUUIDPtr(row.CategoryID),
		ToWalletID:      nullUUIDPtr(row.ToWalletID),
		Type:            TransactionType(row.Type),
		Amount:          amount,
		Currency:        row.Currency,
		TransactionDate: row.TransactionDate,
		Description:     row.Description.String,
		Notes:           row.Notes.String,
		Status:          TransactionStatus(row.Status),
		ReferenceNumber: row.ReferenceNumber.String,
		Payee:           row.Payee.String,
		Tags:            row.Tags.String,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func nullUUIDPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
