package wallet

import "fmt"

var (
	ErrWalletNotFound         = fmt.Errorf("wallet not found")
	ErrWalletNotPossible      = fmt.Errorf("could not create wallet")
	ErrInsufficientFunds      = fmt.Errorf("insufficient funds")
	ErrCreditLimitExceeded    = fmt.Errorf("credit limit exceeded")
	ErrDuplicateWalletName    = fmt.Errorf("wallet name already in use")
	ErrConcurrentModification = fmt.Errorf("wallet was modified concurrently, retry the operation")
	ErrInvalidWalletType      = fmt.Errorf("invalid wallet type")
	ErrNotYours               = fmt.Errorf("you don't own the source wallet, this will be reported")
	ErrCreditLimitNotAllowed  = fmt.Errorf("only credit card wallets can have a credit limit")
)

type WalletError struct {
	ErrorObj error
	WalletID string
	Other    []error
}

func (w *WalletError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletError) Unwrap() error {
	return w.ErrorObj
}

func (w *WalletError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", w.ErrorObj.Error(), w.WalletID)
}

func NewWalletError(err error, wallID string, e ...error) *WalletError {
	return &WalletError{
		ErrorObj: err,
		WalletID: wallID,
		Other:    e,
	}
}
