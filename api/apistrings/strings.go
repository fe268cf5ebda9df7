package apistrings

const (
	ServerError             = "Something went wrong, please try again later"
	UserNotFound            = "User could not be identified"
	UserExists              = "A user with this email already exists"
	InvalidCredentials      = "Invalid email or password"
	InvalidRefreshToken     = "Refresh token is invalid or expired"
	InvalidAuthInput        = "Invalid registration or login input"
	InvalidWalletInput      = "Invalid wallet input"
	InvalidTransactionInput = "Invalid transaction input"
	WalletNotFound          = "Wallet not found"
	TransactionNotFound     = "Transaction not found"
	DuplicateWallet         = "A wallet with this name already exists"
	InsufficientFunds       = "Insufficient funds on the wallet"
	CreditLimitExceeded     = "This would exceed the wallet's credit limit"
	NotYourWallet           = "You don't own this wallet"
	NotYourTransaction      = "You don't own this transaction"
	ConflictRetryExhausted  = "The wallet is busy, please retry the operation"
	SameWallet              = "Source and destination wallets cannot be the same"
	TypeImmutable           = "A transaction's type cannot be changed"
)
