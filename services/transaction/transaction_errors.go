package transaction

import "fmt"

var (
	ErrTransactionNotFound      = fmt.Errorf("transaction not found")
	ErrInvalidTransaction       = fmt.Errorf("invalid transaction")
	ErrTransactionTypeImmutable = fmt.Errorf("transaction type cannot be changed")
	ErrSameWallet               = fmt.Errorf("source and destination wallets cannot be the same")
	ErrNotYours                 = fmt.Errorf("you don't own this transaction")
)

type TransactionError struct {
	ErrorObj error
	Detail   string
}

func (t *TransactionError) Error() string {
	if t.Detail == "" {
		return t.ErrorObj.Error()
	}
	return fmt.Sprintf("%v: %v", t.ErrorObj.Error(), t.Detail)
}

func (t *TransactionError) Unwrap() error {
	return t.ErrorObj
}

func NewTransactionError(err error, detail string) *TransactionError {
	return &TransactionError{
		ErrorObj: err,
		Detail:   detail,
	}
}
