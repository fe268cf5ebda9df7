package models

import (
	"time"

	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/google/uuid"
)

type CreateWalletRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Type             string `json:"type" binding:"required,wallettype"`
	Currency         string `json:"currency" binding:"omitempty,currency"`
	InitialBalance   string `json:"initial_balance"`
	CreditLimit      string `json:"credit_limit"`
	Color            string `json:"color"`
	Icon             string `json:"icon"`
	IsDefault        bool   `json:"is_default"`
	ExcludeFromTotal bool   `json:"exclude_from_total"`
	DisplayOrder     int32  `json:"display_order"`
	Notes            string `json:"notes"`
	BankName         string `json:"bank_name"`
	AccountNumber    string `json:"account_number"`
	AccountType      string `json:"account_type"`
	InvestmentType   string `json:"investment_type"`
	InstitutionName  string `json:"institution_name"`
}

type UpdateWalletRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Color           string  `json:"color"`
	Icon            string  `json:"icon"`
	Notes           string  `json:"notes"`
	DisplayOrder    *int32  `json:"display_order"`
	IncludeInTotal  *bool   `json:"include_in_total"`
	SetDefault      bool    `json:"set_default"`
	CreditLimit     *string `json:"credit_limit"`
	BankName        string  `json:"bank_name"`
	AccountNumber   string  `json:"account_number"`
	AccountType     string  `json:"account_type"`
	InvestmentType  string  `json:"investment_type"`
	InstitutionName string  `json:"institution_name"`
}

type WalletCollectionResponse []WalletResponse

type WalletResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	Type                string     `json:"type"`
	Currency            string     `json:"currency"`
	InitialBalance      string     `json:"initial_balance"`
	CurrentBalance      string     `json:"current_balance"`
	CreditLimit         string     `json:"credit_limit,omitempty"`
	Color               string     `json:"color"`
	Icon                string     `json:"icon"`
	IsActive            bool       `json:"is_active"`
	IsDefault           bool       `json:"is_default"`
	IsExcludedFromTotal bool       `json:"is_excluded_from_total"`
	DisplayOrder        int32      `json:"display_order"`
	TransactionCount    int32      `json:"transaction_count"`
	LastTransactionDate *time.Time `json:"last_transaction_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func ToWalletResponse(w *wallet.WalletModel) *WalletResponse {
	resp := &WalletResponse{
		ID:                  w.ID,
		Name:                w.Name,
		Description:         w.Description,
		Type:                string(w.Type),
		Currency:            w.Currency,
		InitialBalance:      w.InitialBalance.StringFixed(2),
		CurrentBalance:      w.CurrentBalance.StringFixed(2),
		Color:               w.Color,
		Icon:                w.Icon,
		IsActive:            w.IsActive,
		IsDefault:           w.IsDefault,
		IsExcludedFromTotal: w.IsExcludedFromTotal,
		DisplayOrder:        w.DisplayOrder,
		TransactionCount:    w.TransactionCount,
		LastTransactionDate: w.LastTransactionDate,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
	if w.Type.IsCreditCard() {
		resp.CreditLimit = w.CreditLimit.StringFixed(2)
	}
	return resp
}

func ToWalletCollectionResponse(wallets []wallet.WalletModel) WalletCollectionResponse {
	responses := make(WalletCollectionResponse, 0, len(wallets))
	for i := range wallets {
		responses = append(responses, *ToWalletResponse(&wallets[i]))
	}
	return responses
}
