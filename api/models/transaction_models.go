package models

import (
	"time"

	"github.com/fintrackpro/FinTrack-Backend/services/transaction"
	"github.com/google/uuid"
)

type CreateTransactionRequest struct {
	WalletID        string `json:"wallet_id" binding:"required,uuid"`
	CategoryID      string `json:"category_id" binding:"omitempty,uuid"`
	ToWalletID      string `json:"to_wallet_id" binding:"omitempty,uuid"`
	Type            string `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount          string `json:"amount" binding:"required"`
	Currency        string `json:"currency" binding:"omitempty,currency"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
	Notes           string `json:"notes"`
	ReferenceNumber string `json:"reference_number"`
	Payee           string `json:"payee"`
	Tags            string `json:"tags"`
}

type UpdateTransactionRequest struct {
	WalletID        string `json:"wallet_id" binding:"required,uuid"`
	CategoryID      string `json:"category_id" binding:"omitempty,uuid"`
	ToWalletID      string `json:"to_wallet_id" binding:"omitempty,uuid"`
	Amount          string `json:"amount" binding:"required"`
	Currency        string `json:"currency" binding:"omitempty,currency"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
	Notes           string `json:"notes"`
	ReferenceNumber string `json:"reference_number"`
	Payee           string `json:"payee"`
	Tags            string `json:"tags"`
}

type TransferRequest struct {
	FromWalletID    string `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID      string `json:"to_wallet_id" binding:"required,uuid"`
	Amount          string `json:"amount" binding:"required"`
	Description     string `json:"description"`
	TransactionDate string `json:"transaction_date"`
}

type TransactionCollectionResponse []TransactionResponse

type TransactionResponse struct {
	ID              uuid.UUID  `json:"id"`
	WalletID        uuid.UUID  `json:"wallet_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ToWalletID      *uuid.UUID `json:"to_wallet_id,omitempty"`
	Type            string     `json:"type"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	TransactionDate string     `json:"transaction_date"`
	Description     string     `json:"description,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	Payee           string     `json:"payee,omitempty"`
	Tags            string     `json:"tags,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToTransactionResponse(t *transaction.TransactionModel) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		WalletID:        t.WalletID,
		CategoryID:      t.CategoryID,
		ToWalletID:      t.ToWalletID,
		Type:            string(t.Type),
		Amount:          t.Amount.StringFixed(2),
		Currency:        t.Currency,
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
		Description:     t.Description,
		Notes:           t.Notes,
		Status:          string(t.Status),
		ReferenceNumber: t.ReferenceNumber,
		Payee:           t.Payee,
		Tags:            t.Tags,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToTransactionCollectionResponse(transactions []transaction.TransactionModel) TransactionCollectionResponse {
	responses := make(TransactionCollectionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *ToTransactionResponse(&transactions[i]))
	}
	return responses
}
