package wallet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyDeltaCreditsAndDebits(t *testing.T) {
	w := WalletModel{
		ID:             uuid.New(),
		Type:           WalletTypeCash,
		CurrentBalance: dec("100.00"),
	}

	now := time.Now()
	credited, err := w.ApplyDelta(dec("25.50"), now)
	require.NoError(t, err)
	assert.True(t, credited.CurrentBalance.Equal(dec("125.50")))
	assert.Equal(t, int32(1), credited.TransactionCount)
	require.NotNil(t, credited.LastTransactionDate)
	assert.Equal(t, now, *credited.LastTransactionDate)

	debited, err := credited.ApplyDelta(dec("-125.50"), now)
	require.NoError(t, err)
	assert.True(t, debited.CurrentBalance.IsZero())
	assert.Equal(t, int32(2), debited.TransactionCount)
}

func TestApplyDeltaLeavesReceiverUntouched(t *testing.T) {
	w := WalletModel{
		ID:             uuid.New(),
		Type:           WalletTypeCash,
		CurrentBalance: dec("50.00"),
	}

	_, err := w.ApplyDelta(dec("10.00"), time.Now())
	require.NoError(t, err)

	assert.True(t, w.CurrentBalance.Equal(dec("50.00")))
	assert.Equal(t, int32(0), w.TransactionCount)
	assert.Nil(t, w.LastTransactionDate)
}

func TestApplyDeltaRejectsOverdraft(t *testing.T) {
	w := WalletModel{
		ID:             uuid.New(),
		Type:           WalletTypeCash,
		CurrentBalance: dec("10.00"),
	}

	_, err := w.ApplyDelta(dec("-20.00"), time.Now())
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Wallet is unchanged after the rejection.
	assert.True(t, w.CurrentBalance.Equal(dec("10.00")))
	assert.Equal(t, int32(0), w.TransactionCount)
}

func TestApplyDeltaCreditCardWithinLimit(t *testing.T) {
	w := WalletModel{
		ID:             uuid.New(),
		Type:           WalletTypeCreditCard,
		CurrentBalance: decimal.Zero,
		CreditLimit:    dec("100.00"),
	}

	charged, err := w.ApplyDelta(dec("-100.00"), time.Now())
	require.NoError(t, err)
	assert.True(t, charged.CurrentBalance.Equal(dec("-100.00")))
	assert.True(t, charged.AvailableToSpend().IsZero())
}

func TestApplyDeltaCreditCardOverLimit(t *testing.T) {
	w := WalletModel{
		ID:             uuid.New(),
		Type:           WalletTypeCreditCard,
		CurrentBalance: decimal.Zero,
		CreditLimit:    dec("100.00"),
	}

	_, err := w.ApplyDelta(dec("-150.00"), time.Now())
	require.ErrorIs(t, err, ErrCreditLimitExceeded)
	assert.True(t, w.CurrentBalance.IsZero())
}

func TestAvailableToSpend(t *testing.T) {
	cash := WalletModel{Type: WalletTypeCash, CurrentBalance: dec("42.00")}
	assert.True(t, cash.AvailableToSpend().Equal(dec("42.00")))

	card := WalletModel{Type: WalletTypeCreditCard, CurrentBalance: dec("-30.00"), CreditLimit: dec("100.00")}
	assert.True(t, card.AvailableToSpend().Equal(dec("70.00")))
}

func TestUpdateCreditLimitOnlyForCreditCards(t *testing.T) {
	cash := WalletModel{ID: uuid.New(), Type: WalletTypeCash}
	_, err := cash.UpdateCreditLimit(dec("500.00"))
	require.ErrorIs(t, err, ErrCreditLimitNotAllowed)

	card := WalletModel{ID: uuid.New(), Type: WalletTypeCreditCard}
	updated, err := card.UpdateCreditLimit(dec("500.00"))
	require.NoError(t, err)
	assert.True(t, updated.CreditLimit.Equal(dec("500.00")))

	clamped, err := card.UpdateCreditLimit(dec("-10.00"))
	require.NoError(t, err)
	assert.True(t, clamped.CreditLimit.IsZero())
}

func TestDisableMarksDeletedAndInactive(t *testing.T) {
	w := WalletModel{ID: uuid.New(), Type: WalletTypeCash, IsActive: true}
	at := time.Now()

	disabled := w.Disable(at)
	assert.True(t, disabled.Deleted)
	assert.False(t, disabled.IsActive)
	require.NotNil(t, disabled.DeletedAt)
	assert.Equal(t, at, *disabled.DeletedAt)

	assert.False(t, w.Deleted)
	assert.True(t, w.IsActive)
}

func TestUpdateBankDetailsRequiresBankAccount(t *testing.T) {
	cash := WalletModel{ID: uuid.New(), Type: WalletTypeCash}
	_, err := cash.UpdateBankDetails("Chase", "1234", "CHECKING")
	require.ErrorIs(t, err, ErrInvalidWalletType)

	bank := WalletModel{ID: uuid.New(), Type: WalletTypeBankAccount}
	updated, err := bank.UpdateBankDetails("Chase", "1234", "CHECKING")
	require.NoError(t, err)
	assert.Equal(t, "Chase", updated.BankName)
	assert.Equal(t, "1234", updated.AccountNumber)
	assert.Equal(t, "CHECKING", updated.AccountType)
}

func TestUpdateInvestmentDetailsRequiresInvestmentWallet(t *testing.T) {
	savings := WalletModel{ID: uuid.New(), Type: WalletTypeSavings}
	_, err := savings.UpdateInvestmentDetails("STOCKS", "Vanguard")
	require.ErrorIs(t, err, ErrInvalidWalletType)

	investment := WalletModel{ID: uuid.New(), Type: WalletTypeInvestment}
	updated, err := investment.UpdateInvestmentDetails("STOCKS", "Vanguard")
	require.NoError(t, err)
	assert.Equal(t, "STOCKS", updated.InvestmentType)
	assert.Equal(t, "Vanguard", updated.InstitutionName)
}

func TestWalletTypeValid(t *testing.T) {
	assert.True(t, WalletTypeCash.Valid())
	assert.True(t, WalletTypeDigitalWallet.Valid())
	assert.False(t, WalletType("CHECKING").Valid())
	assert.False(t, WalletType("").Valid())
}
