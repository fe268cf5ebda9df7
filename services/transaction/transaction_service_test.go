package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
	"github.com/fintrackpro/FinTrack-Backend/services/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLedger is an in-memory Store whose ExecTx snapshots both maps and
// restores them when the callback fails, mirroring a database rollback. The
// wallet side keeps the version-guarded write semantics of the SQL
// repository; injectConflicts makes the next N balance writes fail with
// ErrConcurrentModification to exercise the retry loop.
type memoryLedger struct {
	mu              sync.Mutex
	wallets         map[uuid.UUID]wallet.WalletModel
	transactions    map[uuid.UUID]TransactionModel
	injectConflicts int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		wallets:      make(map[uuid.UUID]wallet.WalletModel),
		transactions: make(map[uuid.UUID]TransactionModel),
	}
}

func (m *memoryLedger) Wallets() wallet.Repository { return (*memoryWallets)(m) }

func (m *memoryLedger) Transactions() Repository { return (*memoryTransactions)(m) }

func (m *memoryLedger) ExecTx(_ context.Context, fn func(Ledger) error) error {
	m.mu.Lock()
	walletSnapshot := make(map[uuid.UUID]wallet.WalletModel, len(m.wallets))
	for k, v := range m.wallets {
		walletSnapshot[k] = v
	}
	transactionSnapshot := make(map[uuid.UUID]TransactionModel, len(m.transactions))
	for k, v := range m.transactions {
		transactionSnapshot[k] = v
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.wallets = walletSnapshot
		m.transactions = transactionSnapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memoryLedger) seedWallet(userID int64, walletType wallet.WalletType, balance, creditLimit decimal.Decimal) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.wallets[id] = wallet.WalletModel{
		ID:             id,
		UserID:         userID,
		Name:           id.String()[:8],
		Type:           walletType,
		Currency:       "USD",
		CurrentBalance: balance,
		CreditLimit:    creditLimit,
		IsActive:       true,
		Version:        1,
	}
	return id
}

func (m *memoryLedger) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	require.True(t, ok)
	return w.CurrentBalance
}

func (m *memoryLedger) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

type memoryWallets memoryLedger

func (m *memoryWallets) GetWallet(_ context.Context, id uuid.UUID) (*wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok || w.Deleted {
		return nil, wallet.NewWalletError(wallet.ErrWalletNotFound, id.String())
	}
	return &w, nil
}

func (m *memoryWallets) GetWalletsByUserID(_ context.Context, userID int64) ([]wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []wallet.WalletModel
	for _, w := range m.wallets {
		if w.UserID == userID && !w.Deleted {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memoryWallets) GetDefaultWallet(_ context.Context, userID int64) (*wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.UserID == userID && w.IsDefault && !w.Deleted {
			return &w, nil
		}
	}
	return nil, nil
}

func (m *memoryWallets) NameExists(_ context.Context, _ int64, _ string) (bool, error) {
	return false, nil
}

func (m *memoryWallets) InsertWallet(_ context.Context, w wallet.WalletModel) (*wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	w.Version = 1
	m.wallets[w.ID] = w
	return &w, nil
}

func (m *memoryWallets) UpdateWallet(_ context.Context, w wallet.WalletModel) (*wallet.WalletModel, error) {
	return m.versionedWrite(w)
}

func (m *memoryWallets) UpdateWalletBalance(_ context.Context, w wallet.WalletModel) (*wallet.WalletModel, error) {
	m.mu.Lock()
	if m.injectConflicts > 0 {
		m.injectConflicts--
		m.mu.Unlock()
		return nil, wallet.NewWalletError(wallet.ErrConcurrentModification, w.ID.String())
	}
	m.mu.Unlock()
	return m.versionedWrite(w)
}

func (m *memoryWallets) versionedWrite(w wallet.WalletModel) (*wallet.WalletModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.wallets[w.ID]
	if !ok {
		return nil, wallet.NewWalletError(wallet.ErrWalletNotFound, w.ID.String())
	}
	if stored.Version != w.Version {
		return nil, wallet.NewWalletError(wallet.ErrConcurrentModification, w.ID.String())
	}
	w.Version++
	m.wallets[w.ID] = w
	return &w, nil
}

func (m *memoryWallets) SetDefaultFlag(_ context.Context, id uuid.UUID, isDefault bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return wallet.NewWalletError(wallet.ErrWalletNotFound, id.String())
	}
	w.IsDefault = isDefault
	w.Version++
	m.wallets[id] = w
	return nil
}

type memoryTransactions memoryLedger

func (m *memoryTransactions) GetTransaction(_ context.Context, id uuid.UUID) (*TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, NewTransactionError(ErrTransactionNotFound, id.String())
	}
	return &t, nil
}

func (m *memoryTransactions) InsertTransaction(_ context.Context, t TransactionModel) (*TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.transactions[t.ID] = t
	return &t, nil
}

func (m *memoryTransactions) UpdateTransaction(_ context.Context, t TransactionModel) (*TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[t.ID]; !ok {
		return nil, NewTransactionError(ErrTransactionNotFound, t.ID.String())
	}
	t.UpdatedAt = time.Now()
	m.transactions[t.ID] = t
	return &t, nil
}

func (m *memoryTransactions) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return NewTransactionError(ErrTransactionNotFound, id.String())
	}
	delete(m.transactions, id)
	return nil
}

func (m *memoryTransactions) ListByUser(_ context.Context, userID int64) ([]TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []TransactionModel
	for _, t := range m.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTransactions) ListByWallet(_ context.Context, userID int64, walletID uuid.UUID) ([]TransactionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []TransactionModel
	for _, t := range m.transactions {
		if t.UserID != userID {
			continue
		}
		if t.WalletID == walletID || (t.ToWalletID != nil && *t.ToWalletID == walletID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTransactions) ListRecent(_ context.Context, userID int64, limit int32) ([]TransactionModel, error) {
	all, _ := m.ListByUser(nil, userID)
	if int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(ledger *memoryLedger) *TransactionService {
	return NewTransactionService(ledger, logging.NewLogger())
}

func categoryID() *uuid.UUID {
	id := uuid.New()
	return &id
}

func TestCreateExpenseThenDeleteRestoresBalance(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
	})
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, walletID).Equal(dec("70.00")))

	require.NoError(t, service.DeleteTransaction(ctx, 1, created.ID))
	assert.True(t, ledger.balance(t, walletID).Equal(dec("100.00")))
	assert.Equal(t, 0, ledger.transactionCount())
}

func TestCreateIncomeCreditsWallet(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("10.00"), decimal.Zero)

	created, err := service.CreateTransaction(context.Background(), TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeIncome,
		Amount:     dec("90.00"),
	})
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, walletID).Equal(dec("100.00")))
	assert.Equal(t, StatusCompleted, created.Status)
	assert.Equal(t, "USD", created.Currency)
}

func TestTransferMovesFundsAndUpdateReapplies(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	fromID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("50.00"), decimal.Zero)
	toID := ledger.seedWallet(1, wallet.WalletTypeSavings, dec("0.00"), decimal.Zero)

	created, err := service.TransferBetweenWallets(ctx, 1, fromID, toID, dec("20.00"), "move", time.Now())
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, fromID).Equal(dec("30.00")))
	assert.True(t, ledger.balance(t, toID).Equal(dec("20.00")))

	// Raising the amount reverses the old effect and applies the new one.
	update := *created
	update.Amount = dec("50.00")
	_, err = service.UpdateTransaction(ctx, update)
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, fromID).Equal(dec("0.00")))
	assert.True(t, ledger.balance(t, toID).Equal(dec("50.00")))
}

func TestUpdateWithIdenticalValuesNetsZero(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
	})
	require.NoError(t, err)

	_, err = service.UpdateTransaction(ctx, *created)
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, walletID).Equal(dec("70.00")))
}

func TestUpdateKeepsStoredStatusWhenOmitted(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
		Status:     StatusPending,
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)

	update := *created
	update.Status = ""
	update.Amount = dec("45.00")
	updated, err := service.UpdateTransaction(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)

	// An explicit status still goes through.
	update = *updated
	update.Status = StatusCompleted
	updated, err = service.UpdateTransaction(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestUpdateMovesTransactionToAnotherWallet(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	firstID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)
	secondID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   firstID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("40.00"),
	})
	require.NoError(t, err)
	require.True(t, ledger.balance(t, firstID).Equal(dec("60.00")))

	update := *created
	update.WalletID = secondID
	_, err = service.UpdateTransaction(ctx, update)
	require.NoError(t, err)

	assert.True(t, ledger.balance(t, firstID).Equal(dec("100.00")))
	assert.True(t, ledger.balance(t, secondID).Equal(dec("60.00")))
}

func TestUpdateRejectsTypeChange(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
	})
	require.NoError(t, err)

	update := *created
	update.Type = TypeIncome
	_, err = service.UpdateTransaction(ctx, update)
	require.ErrorIs(t, err, ErrTransactionTypeImmutable)

	// Balance untouched by the rejected update.
	assert.True(t, ledger.balance(t, walletID).Equal(dec("70.00")))
}

func TestCreateRejectedBeforeWalletTouched(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)

	cases := []TransactionModel{
		{UserID: 1, WalletID: walletID, CategoryID: categoryID(), Type: TypeExpense, Amount: dec("-5.00")},
		{UserID: 1, WalletID: walletID, CategoryID: categoryID(), Type: TypeExpense, Amount: decimal.Zero},
		{UserID: 1, WalletID: walletID, CategoryID: categoryID(), Type: TransactionType("REFUND"), Amount: dec("5.00")},
		{UserID: 1, WalletID: walletID, Type: TypeExpense, Amount: dec("5.00")},
		{UserID: 1, WalletID: walletID, Type: TypeTransfer, Amount: dec("5.00")},
	}
	for _, c := range cases {
		_, err := service.CreateTransaction(ctx, c)
		require.ErrorIs(t, err, ErrInvalidTransaction)
	}

	assert.True(t, ledger.balance(t, walletID).Equal(dec("100.00")))
	assert.Equal(t, 0, ledger.transactionCount())
}

func TestInsufficientFundsRollsBackEverything(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("10.00"), decimal.Zero)

	_, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("20.00"),
	})
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	assert.True(t, ledger.balance(t, walletID).Equal(dec("10.00")))
	assert.Equal(t, 0, ledger.transactionCount())
}

func TestTransferInsufficientSourceRollsBackDestinationCredit(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	fromID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("10.00"), decimal.Zero)
	toID := ledger.seedWallet(1, wallet.WalletTypeSavings, dec("0.00"), decimal.Zero)

	// The destination is credited before the source debit fails; the
	// transaction scope must undo that credit.
	_, err := service.TransferBetweenWallets(ctx, 1, fromID, toID, dec("25.00"), "", time.Now())
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	assert.True(t, ledger.balance(t, fromID).Equal(dec("10.00")))
	assert.True(t, ledger.balance(t, toID).Equal(dec("0.00")))
	assert.Equal(t, 0, ledger.transactionCount())
}

func TestCreditCardExpenseWithinAndOverLimit(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	cardID := ledger.seedWallet(1, wallet.WalletTypeCreditCard, dec("0.00"), dec("100.00"))

	_, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   cardID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("150.00"),
	})
	require.ErrorIs(t, err, wallet.ErrCreditLimitExceeded)
	assert.True(t, ledger.balance(t, cardID).Equal(dec("0.00")))

	_, err = service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   cardID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("100.00"),
	})
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, cardID).Equal(dec("-100.00")))
}

func TestTransferSameWalletRejected(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("50.00"), decimal.Zero)

	_, err := service.TransferBetweenWallets(context.Background(), 1, walletID, walletID, dec("10.00"), "", time.Now())
	require.ErrorIs(t, err, ErrSameWallet)
}

func TestOwnershipEnforced(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	mineID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("50.00"), decimal.Zero)
	theirsID := ledger.seedWallet(2, wallet.WalletTypeCash, dec("50.00"), decimal.Zero)

	_, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   theirsID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("10.00"),
	})
	require.ErrorIs(t, err, wallet.ErrNotYours)

	_, err = service.TransferBetweenWallets(ctx, 1, mineID, theirsID, dec("10.00"), "", time.Now())
	require.ErrorIs(t, err, wallet.ErrNotYours)
	assert.True(t, ledger.balance(t, mineID).Equal(dec("50.00")))
	assert.True(t, ledger.balance(t, theirsID).Equal(dec("50.00")))

	created, err := service.CreateTransaction(ctx, TransactionModel{
		UserID:     1,
		WalletID:   mineID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("10.00"),
	})
	require.NoError(t, err)

	_, err = service.GetTransaction(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrNotYours)
	err = service.DeleteTransaction(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrNotYours)
}

func TestConflictRetrySucceedsAfterTransientConflicts(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)
	ledger.injectConflicts = 2

	_, err := service.CreateTransaction(context.Background(), TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
	})
	require.NoError(t, err)
	assert.True(t, ledger.balance(t, walletID).Equal(dec("70.00")))
	assert.Equal(t, 1, ledger.transactionCount())
}

func TestConflictRetryGivesUpEventually(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)

	walletID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)
	ledger.injectConflicts = 10

	_, err := service.CreateTransaction(context.Background(), TransactionModel{
		UserID:     1,
		WalletID:   walletID,
		CategoryID: categoryID(),
		Type:       TypeExpense,
		Amount:     dec("30.00"),
	})
	require.ErrorIs(t, err, wallet.ErrConcurrentModification)
	assert.True(t, ledger.balance(t, walletID).Equal(dec("100.00")))
	assert.Equal(t, 0, ledger.transactionCount())
}

func TestBalanceConservationAcrossTransfers(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	aID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("100.00"), decimal.Zero)
	bID := ledger.seedWallet(1, wallet.WalletTypeSavings, dec("50.00"), decimal.Zero)
	cID := ledger.seedWallet(1, wallet.WalletTypeDigitalWallet, dec("25.00"), decimal.Zero)

	total := func() decimal.Decimal {
		return ledger.balance(t, aID).Add(ledger.balance(t, bID)).Add(ledger.balance(t, cID))
	}
	start := total()

	_, err := service.TransferBetweenWallets(ctx, 1, aID, bID, dec("40.00"), "", time.Now())
	require.NoError(t, err)
	_, err = service.TransferBetweenWallets(ctx, 1, bID, cID, dec("15.00"), "", time.Now())
	require.NoError(t, err)
	created, err := service.TransferBetweenWallets(ctx, 1, cID, aID, dec("10.00"), "", time.Now())
	require.NoError(t, err)
	assert.True(t, total().Equal(start))

	require.NoError(t, service.DeleteTransaction(ctx, 1, created.ID))
	assert.True(t, total().Equal(start))
}

func TestListTransactionsByWalletIncludesTransferDestination(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(ledger)
	ctx := context.Background()

	fromID := ledger.seedWallet(1, wallet.WalletTypeCash, dec("50.00"), decimal.Zero)
	toID := ledger.seedWallet(1, wallet.WalletTypeSavings, dec("0.00"), decimal.Zero)

	_, err := service.TransferBetweenWallets(ctx, 1, fromID, toID, dec("20.00"), "", time.Now())
	require.NoError(t, err)

	forDest, err := service.GetWalletTransactions(ctx, 1, toID)
	require.NoError(t, err)
	require.Len(t, forDest, 1)
	assert.Equal(t, fromID, forDest[0].WalletID)
}
