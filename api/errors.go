package api

import (
	"errors"
	"net/http"

	"github.com/fintrackpro/FinTrack-Backend/api/apistrings"
	"github.com/fintrackpro/FinTrack-Backend/services/transaction"
	"github.com/fintrackpro/FinTrack-Backend/services/user"
	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
)

// statusForError maps service errors onto HTTP responses so handlers don't
// repeat the taxonomy.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound):
		return http.StatusNotFound, apistrings.WalletNotFound
	case errors.Is(err, transaction.ErrTransactionNotFound):
		return http.StatusNotFound, apistrings.TransactionNotFound
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, apistrings.InsufficientFunds
	case errors.Is(err, wallet.ErrCreditLimitExceeded):
		return http.StatusUnprocessableEntity, apistrings.CreditLimitExceeded
	case errors.Is(err, wallet.ErrDuplicateWalletName):
		return http.StatusConflict, apistrings.DuplicateWallet
	case errors.Is(err, wallet.ErrConcurrentModification):
		return http.StatusConflict, apistrings.ConflictRetryExhausted
	case errors.Is(err, wallet.ErrNotYours):
		return http.StatusForbidden, apistrings.NotYourWallet
	case errors.Is(err, transaction.ErrNotYours):
		return http.StatusForbidden, apistrings.NotYourTransaction
	case errors.Is(err, transaction.ErrSameWallet):
		return http.StatusBadRequest, apistrings.SameWallet
	case errors.Is(err, transaction.ErrTransactionTypeImmutable):
		return http.StatusBadRequest, apistrings.TypeImmutable
	case errors.Is(err, transaction.ErrInvalidTransaction):
		return http.StatusBadRequest, apistrings.InvalidTransactionInput
	case errors.Is(err, wallet.ErrInvalidWalletType),
		errors.Is(err, wallet.ErrCreditLimitNotAllowed),
		errors.Is(err, wallet.ErrWalletNotPossible):
		return http.StatusBadRequest, apistrings.InvalidWalletInput
	case errors.Is(err, user.ErrUserAlreadyExists):
		return http.StatusConflict, apistrings.UserExists
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, apistrings.InvalidCredentials
	case errors.Is(err, user.ErrInvalidRefresh):
		return http.StatusUnauthorized, apistrings.InvalidRefreshToken
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, apistrings.UserNotFound
	}
	return http.StatusInternalServerError, apistrings.ServerError
}
