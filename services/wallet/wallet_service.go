package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletService struct {
	store  Store
	logger *logging.Logger
}

func NewWalletService(store Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

// CreateWallet creates a wallet for the user. The user's first wallet is
// forced default regardless of the requested flag; if a later wallet requests
// default status the previous default is un-set inside the same transaction.
func (s *WalletService) CreateWallet(ctx context.Context, w WalletModel) (*WalletModel, error) {
	if err := validateNewWallet(&w); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("creating wallet %q for user %v", w.Name, w.UserID))

	var created *WalletModel
	err := s.store.ExecTx(ctx, func(repo Repository) error {
		existing, err := repo.GetWalletsByUserID(ctx, w.UserID)
		if err != nil {
			return err
		}

		for _, e := range existing {
			if strings.EqualFold(e.Name, w.Name) {
				return NewWalletError(ErrDuplicateWalletName, w.Name)
			}
		}

		isFirstWallet := len(existing) == 0
		shouldBeDefault := isFirstWallet || w.IsDefault

		if shouldBeDefault && !isFirstWallet {
			current, err := repo.GetDefaultWallet(ctx, w.UserID)
			if err != nil {
				return err
			}
			if current != nil {
				if err := repo.SetDefaultFlag(ctx, current.ID, false); err != nil {
					return err
				}
			}
		}

		w.IsDefault = shouldBeDefault
		w.IsActive = true
		created, err = repo.InsertWallet(ctx, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("created wallet %v for user %v, default=%v", created.ID, created.UserID, created.IsDefault))
	return created, nil
}

func (s *WalletService) GetWallet(ctx context.Context, userID int64, walletID uuid.UUID) (*WalletModel, error) {
	w, err := s.store.GetWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, NewWalletError(ErrNotYours, walletID.String())
	}
	return w, nil
}

func (s *WalletService) GetUserWallets(ctx context.Context, userID int64) ([]WalletModel, error) {
	return s.store.GetWalletsByUserID(ctx, userID)
}

func (s *WalletService) GetDefaultWallet(ctx context.Context, userID int64) (*WalletModel, error) {
	return s.store.GetDefaultWallet(ctx, userID)
}

// UpdateWalletRequest carries the caller-editable fields of a wallet. Nil
// pointers mean "leave unchanged".
type UpdateWalletRequest struct {
	Name            string
	Description     string
	Color           string
	Icon            string
	Notes           string
	DisplayOrder    *int32
	IncludeInTotal  *bool
	SetDefault      bool
	CreditLimit     *decimal.Decimal
	BankName        string
	AccountNumber   string
	AccountType     string
	InvestmentType  string
	InstitutionName string
}

func (s *WalletService) UpdateWallet(ctx context.Context, userID int64, walletID uuid.UUID, req UpdateWalletRequest) (*WalletModel, error) {
	s.logger.Info(fmt.Sprintf("updating wallet %v", walletID))

	var updated *WalletModel
	err := s.store.ExecTx(ctx, func(repo Repository) error {
		existing, err := repo.GetWallet(ctx, walletID)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return NewWalletError(ErrNotYours, walletID.String())
		}

		if req.Name != "" && !strings.EqualFold(existing.Name, req.Name) {
			taken, err := repo.NameExists(ctx, userID, req.Name)
			if err != nil {
				return err
			}
			if taken {
				return NewWalletError(ErrDuplicateWalletName, req.Name)
			}
		}

		w := existing.UpdateDetails(req.Name, req.Description, req.Color, req.Icon)
		if req.Notes != "" {
			w.Notes = req.Notes
		}
		if req.DisplayOrder != nil {
			w = w.UpdateDisplayOrder(*req.DisplayOrder)
		}
		if req.IncludeInTotal != nil {
			w = w.SetIncludedInTotal(*req.IncludeInTotal)
		}
		if req.CreditLimit != nil {
			w, err = w.UpdateCreditLimit(*req.CreditLimit)
			if err != nil {
				return err
			}
		}
		if req.BankName != "" || req.AccountNumber != "" || req.AccountType != "" {
			w, err = w.UpdateBankDetails(req.BankName, req.AccountNumber, req.AccountType)
			if err != nil {
				return err
			}
		}
		if req.InvestmentType != "" || req.InstitutionName != "" {
			w, err = w.UpdateInvestmentDetails(req.InvestmentType, req.InstitutionName)
			if err != nil {
				return err
			}
		}

		if req.SetDefault && !existing.IsDefault {
			current, err := repo.GetDefaultWallet(ctx, userID)
			if err != nil {
				return err
			}
			if current != nil {
				if err := repo.SetDefaultFlag(ctx, current.ID, false); err != nil {
					return err
				}
			}
			w = w.SetAsDefault()
		}

		updated, err = repo.UpdateWallet(ctx, w)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *WalletService) SetDefaultWallet(ctx context.Context, userID int64, walletID uuid.UUID) (*WalletModel, error) {
	return s.UpdateWallet(ctx, userID, walletID, UpdateWalletRequest{SetDefault: true})
}

// DeleteWallet soft-deletes; the row is kept, flagged deleted and inactive.
func (s *WalletService) DeleteWallet(ctx context.Context, userID int64, walletID uuid.UUID) error {
	s.logger.Info(fmt.Sprintf("deleting wallet %v", walletID))

	return s.store.ExecTx(ctx, func(repo Repository) error {
		existing, err := repo.GetWallet(ctx, walletID)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return NewWalletError(ErrNotYours, walletID.String())
		}

		_, err = repo.UpdateWallet(ctx, existing.Disable(time.Now()))
		return err
	})
}

func validateNewWallet(w *WalletModel) error {
	if w.UserID == 0 {
		return NewWalletError(ErrWalletNotPossible, "", fmt.Errorf("user id is required"))
	}
	if strings.TrimSpace(w.Name) == "" {
		return NewWalletError(ErrWalletNotPossible, "", fmt.Errorf("wallet name is required"))
	}
	if !w.Type.Valid() {
		return NewWalletError(ErrInvalidWalletType, "", fmt.Errorf("unknown wallet type %q", w.Type))
	}

	if w.Currency == "" {
		w.Currency = "USD"
	}
	if w.Color == "" {
		w.Color = "#4A90E2"
	}
	if w.Icon == "" {
		w.Icon = "wallet"
	}

	w.InitialBalance = w.InitialBalance.Round(2)
	if !w.Type.IsCreditCard() && w.InitialBalance.IsNegative() {
		return NewWalletError(ErrInsufficientFunds, "", fmt.Errorf("initial balance cannot be negative"))
	}

	if w.Type.IsCreditCard() {
		if w.CreditLimit.IsNegative() {
			w.CreditLimit = decimal.Zero
		}
		w.CreditLimit = w.CreditLimit.Round(2)
		if w.InitialBalance.Neg().GreaterThan(w.CreditLimit) {
			return NewWalletError(ErrCreditLimitExceeded, "", fmt.Errorf("initial balance exceeds credit limit"))
		}
	} else {
		// Credit limit is meaningless outside credit cards.
		w.CreditLimit = decimal.Zero
	}

	// A wallet starts with its balance equal to the initial balance.
	w.CurrentBalance = w.InitialBalance
	w.TransactionCount = 0
	return nil
}
