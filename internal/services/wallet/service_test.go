package wallet

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"fwp/internal/models"
	"fwp/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory WalletRepository for exercising service logic
// without a database.
type fakeRepo struct {
	wallets map[uint]*models.Wallet
	entries []*models.WalletTransaction
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{wallets: make(map[uint]*models.Wallet)}
}

func (f *fakeRepo) Create(w *models.Wallet) error {
	if _, ok := f.wallets[w.UserID]; ok {
		return repositories.ErrDuplicateWallet
	}
	f.nextID++
	w.ID = f.nextID
	cp := *w
	f.wallets[w.UserID] = &cp
	return nil
}

func (f *fakeRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeRepo) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	return f.GetByUserID(userID)
}

func (f *fakeRepo) Update(w *models.Wallet) error {
	if _, ok := f.wallets[w.UserID]; !ok {
		return repositories.ErrWalletNotFound
	}
	cp := *w
	f.wallets[w.UserID] = &cp
	return nil
}

func (f *fakeRepo) List(offset, limit int) ([]*models.Wallet, int64, error) {
	var out []*models.Wallet
	for _, w := range f.wallets {
		cp := *w
		out = append(out, &cp)
	}
	return out, int64(len(f.wallets)), nil
}

func (f *fakeRepo) CreateTransaction(tx *models.WalletTransaction) error {
	f.nextID++
	tx.ID = f.nextID
	if tx.TransactionID == "" {
		tx.TransactionID = models.NewTransactionID()
	}
	tx.CreatedAt = time.Now()
	cp := *tx
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeRepo) GetTransactionByTransactionID(transactionID string) (*models.WalletTransaction, error) {
	for _, e := range f.entries {
		if e.TransactionID == transactionID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeRepo) GetTransactionByTransactionIDForUpdate(transactionID string) (*models.WalletTransaction, error) {
	return f.GetTransactionByTransactionID(transactionID)
}

func (f *fakeRepo) UpdateTransaction(tx *models.WalletTransaction) error {
	for i, e := range f.entries {
		if e.TransactionID == tx.TransactionID {
			cp := *tx
			f.entries[i] = &cp
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

func (f *fakeRepo) ListTransactions(_ context.Context, filter repositories.TransactionFilter) ([]*models.WalletTransaction, int64, error) {
	var matched []*models.WalletTransaction
	// Newest first.
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if filter.UserID != 0 && e.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}

	total := int64(len(matched))
	if filter.Skip >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakeRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetTotalBalance() (float64, error) {
	var sum float64
	for _, w := range f.wallets {
		sum += w.Balance
	}
	return sum, nil
}

func (f *fakeRepo) GetTransactionStats(_, _ time.Time) (*repositories.TransactionStats, error) {
	return &repositories.TransactionStats{TotalTransactions: int64(len(f.entries))}, nil
}

type fakeCache struct{}

func (fakeCache) GetWallet(context.Context, uint) (*models.Wallet, error) {
	return nil, errors.New("cache miss")
}
func (fakeCache) CacheWallet(context.Context, *models.Wallet) error { return nil }
func (fakeCache) InvalidateWallet(context.Context, uint) error      { return nil }

type fakeTokenizer struct{}

func (fakeTokenizer) Tokenize(cardNumber string) (string, error) {
	if cardNumber == "0000000000000000" {
		return "", errors.New("invalid card number")
	}
	return "tok_test", nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeCache{}, fakeTokenizer{}), repo
}

func seedWallet(t *testing.T, svc Service, userID uint, balance float64) {
	t.Helper()
	if balance > 0 {
		_, err := svc.AddFunds(context.Background(), userID, balance, "seed")
		require.NoError(t, err)
	} else {
		_, err := svc.GetOrCreateWallet(context.Background(), userID)
		require.NoError(t, err)
	}
}

func TestGetOrCreateWallet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	w, err := svc.GetOrCreateWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), w.UserID)
	assert.Zero(t, w.Balance)
	assert.Equal(t, models.CurrencyBDT, w.Currency)
	assert.Equal(t, models.WithdrawalMethodNone, w.WithdrawalMethod)
	assert.False(t, w.IsPinSet)

	again, err := svc.GetOrCreateWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)
}

// racingRepo reports the wallet as missing once, so the following Create hits
// the unique key the concurrent winner already inserted.
type racingRepo struct {
	*fakeRepo
	misses int
}

func (r *racingRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	if r.misses > 0 {
		r.misses--
		return nil, repositories.ErrWalletNotFound
	}
	return r.fakeRepo.GetByUserID(userID)
}

func TestGetOrCreateWalletLostRace(t *testing.T) {
	base := newFakeRepo()
	existing := &models.Wallet{UserID: 9, Currency: models.CurrencyBDT}
	require.NoError(t, base.Create(existing))

	repo := &racingRepo{fakeRepo: base, misses: 1}
	svc := NewService(repo, fakeCache{}, fakeTokenizer{})

	w, err := svc.GetOrCreateWallet(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
}

func TestAddFunds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.AddFunds(ctx, 1, 500, "Deposit approved")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeDeposit, entry.Type)
	assert.Equal(t, models.TransactionStatusCompleted, entry.Status)
	assert.Equal(t, float64(0), entry.BalanceBefore)
	assert.Equal(t, float64(500), entry.BalanceAfter)

	w, err := svc.GetOrCreateWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(500), w.Balance)
	assert.Equal(t, float64(500), w.TotalDeposited)
	assert.NotNil(t, w.LastTransaction)

	_, err = svc.AddFunds(ctx, 1, 0, "zero")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.AddFunds(ctx, 1, -10, "negative")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAddEarnings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.AddEarnings(ctx, 2, 120, "Referral bonus")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeEarning, entry.Type)

	w, err := svc.GetOrCreateWallet(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(120), w.Balance)
	assert.Equal(t, float64(120), w.TotalEarned)
	assert.Zero(t, w.TotalDeposited)
}

func TestWithdrawFunds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedWallet(t, svc, 3, 300)

	entry, err := svc.WithdrawFunds(ctx, 3, 100, "Payout")
	require.NoError(t, err)
	assert.Equal(t, float64(300), entry.BalanceBefore)
	assert.Equal(t, float64(200), entry.BalanceAfter)

	w, err := svc.GetOrCreateWallet(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(200), w.Balance)
	assert.Equal(t, float64(100), w.TotalWithdrawn)

	t.Run("insufficient balance leaves wallet untouched", func(t *testing.T) {
		_, err := svc.WithdrawFunds(ctx, 3, 1000, "too much")
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		w, err := svc.GetOrCreateWallet(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, float64(200), w.Balance)
		assert.Equal(t, float64(100), w.TotalWithdrawn)
	})
}

func TestRequestDeposit(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	txnIDPattern := regexp.MustCompile(`^TXN\d{17}$`)

	entry, err := svc.RequestDeposit(ctx, 4, DepositParams{
		Amount:         250,
		PaymentMethod:  models.PaymentMethodBkash,
		PaymentAccount: "01712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, entry.Status)
	assert.Equal(t, entry.BalanceBefore, entry.BalanceAfter)
	assert.NotEmpty(t, entry.Reference)
	assert.Regexp(t, txnIDPattern, entry.TransactionID)

	// The balance does not move until settlement.
	w, err := svc.GetOrCreateWallet(ctx, 4)
	require.NoError(t, err)
	assert.Zero(t, w.Balance)
	assert.Zero(t, w.TotalDeposited)
	assert.Len(t, repo.entries, 1)

	t.Run("card numbers are tokenized", func(t *testing.T) {
		entry, err := svc.RequestDeposit(ctx, 4, DepositParams{
			Amount:         100,
			PaymentMethod:  models.PaymentMethodCard,
			PaymentAccount: "4242424242424242",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok_test", entry.PaymentAccount)
	})

	t.Run("bad card rejected", func(t *testing.T) {
		_, err := svc.RequestDeposit(ctx, 4, DepositParams{
			Amount:         100,
			PaymentMethod:  models.PaymentMethodCard,
			PaymentAccount: "0000000000000000",
		})
		assert.Error(t, err)
	})

	t.Run("missing payment details rejected", func(t *testing.T) {
		_, err := svc.RequestDeposit(ctx, 4, DepositParams{Amount: 100})
		assert.Error(t, err)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := svc.RequestDeposit(ctx, 4, DepositParams{
			Amount:         -5,
			PaymentMethod:  models.PaymentMethodBkash,
			PaymentAccount: "01712345678",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestRequestWithdrawal(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedWallet(t, svc, 5, 1000)

	entry, err := svc.RequestWithdrawal(ctx, 5, WithdrawalParams{
		Amount:            200,
		WithdrawalMethod:  models.WithdrawalMethodBkash,
		WithdrawalAccount: "01712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, entry.Status)
	assert.Equal(t, float64(1000), entry.BalanceBefore)
	assert.Equal(t, float64(800), entry.BalanceAfter)

	// The hold applies immediately; the withdrawn counter waits for approval.
	w, err := svc.GetOrCreateWallet(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, float64(800), w.Balance)
	assert.Zero(t, w.TotalWithdrawn)

	t.Run("insufficient balance", func(t *testing.T) {
		_, err := svc.RequestWithdrawal(ctx, 5, WithdrawalParams{
			Amount:            5000,
			WithdrawalMethod:  models.WithdrawalMethodBkash,
			WithdrawalAccount: "01712345678",
		})
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("locked wallet", func(t *testing.T) {
		svcLocked, repo := newTestService()
		seedWallet(t, svcLocked, 6, 500)
		w := repo.wallets[6]
		until := time.Now().Add(10 * time.Minute)
		w.IsLocked = true
		w.LockedUntil = &until

		_, err := svcLocked.RequestWithdrawal(ctx, 6, WithdrawalParams{
			Amount:            100,
			WithdrawalMethod:  models.WithdrawalMethodBkash,
			WithdrawalAccount: "01712345678",
		})
		assert.ErrorIs(t, err, ErrWalletLocked)
	})
}

func TestGetTransactions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.AddFunds(ctx, 8, 10, "credit")
		require.NoError(t, err)
	}

	page, err := svc.GetTransactions(ctx, 8, TransactionQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)

	page, err = svc.GetTransactions(ctx, 8, TransactionQuery{Limit: 2, Skip: 4})
	require.NoError(t, err)
	assert.Len(t, page.Transactions, 1)
	assert.False(t, page.HasMore)

	t.Run("type filter", func(t *testing.T) {
		page, err := svc.GetTransactions(ctx, 8, TransactionQuery{Type: models.TransactionTypeWithdrawal})
		require.NoError(t, err)
		assert.Empty(t, page.Transactions)
		assert.Zero(t, page.Total)
	})
}

func TestGetTransaction(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	entry, err := svc.AddFunds(ctx, 9, 50, "credit")
	require.NoError(t, err)

	got, err := svc.GetTransaction(ctx, 9, entry.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entry.TransactionID, got.TransactionID)

	t.Run("other users cannot see it", func(t *testing.T) {
		_, err := svc.GetTransaction(ctx, 10, entry.TransactionID)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetTransaction(ctx, 9, "TXN00000000000000000")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestUpdateWithdrawalMethod(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	w, err := svc.UpdateWithdrawalMethod(ctx, 11, models.WithdrawalMethodNagad, "01898765432")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalMethodNagad, w.WithdrawalMethod)
	assert.Equal(t, "01898765432", w.WithdrawalAccount)

	_, err = svc.UpdateWithdrawalMethod(ctx, 11, "carrier-pigeon", "x")
	assert.Error(t, err)
}

func TestSetPin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SetPin(ctx, 12, "1234", ""))
	w := repo.wallets[12]
	assert.True(t, w.IsPinSet)
	assert.NotEmpty(t, w.PinHash)
	assert.NotEqual(t, "1234", w.PinHash)

	t.Run("changing requires the current pin", func(t *testing.T) {
		err := svc.SetPin(ctx, 12, "5678", "0000")
		assert.ErrorIs(t, err, ErrInvalidPin)

		require.NoError(t, svc.SetPin(ctx, 12, "5678", "1234"))
		status, err := svc.VerifyPin(ctx, 12, "5678")
		require.NoError(t, err)
		assert.True(t, status.Verified)
	})

	t.Run("format enforced", func(t *testing.T) {
		assert.Error(t, svc.SetPin(ctx, 12, "12", "5678"))
		assert.Error(t, svc.SetPin(ctx, 12, "abcd", "5678"))
		assert.Error(t, svc.SetPin(ctx, 12, "12345", "5678"))
	})
}

func TestVerifyPinLockout(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.SetPin(ctx, 13, "4321", ""))

	status, err := svc.VerifyPin(ctx, 13, "0000")
	assert.ErrorIs(t, err, ErrInvalidPin)
	assert.Equal(t, 2, status.AttemptsLeft)

	status, err = svc.VerifyPin(ctx, 13, "0000")
	assert.ErrorIs(t, err, ErrInvalidPin)
	assert.Equal(t, 1, status.AttemptsLeft)

	status, err = svc.VerifyPin(ctx, 13, "0000")
	assert.ErrorIs(t, err, ErrWalletLocked)
	require.NotNil(t, status.LockedUntil)
	assert.True(t, status.LockedUntil.After(time.Now()))

	t.Run("correct pin while locked still fails", func(t *testing.T) {
		status, err := svc.VerifyPin(ctx, 13, "4321")
		assert.ErrorIs(t, err, ErrWalletLocked)
		assert.NotNil(t, status.LockedUntil)
	})

	t.Run("lock expires by timestamp", func(t *testing.T) {
		w := repo.wallets[13]
		past := time.Now().Add(-time.Minute)
		w.LockedUntil = &past

		status, err := svc.VerifyPin(ctx, 13, "4321")
		require.NoError(t, err)
		assert.True(t, status.Verified)

		w = repo.wallets[13]
		assert.False(t, w.IsLocked)
		assert.Nil(t, w.LockedUntil)
		assert.Zero(t, w.FailedAttempts)
	})

	t.Run("success resets the counter", func(t *testing.T) {
		_, err := svc.VerifyPin(ctx, 13, "9999")
		assert.ErrorIs(t, err, ErrInvalidPin)

		status, err := svc.VerifyPin(ctx, 13, "4321")
		require.NoError(t, err)
		assert.True(t, status.Verified)
		assert.Zero(t, repo.wallets[13].FailedAttempts)
	})

	t.Run("pin never set", func(t *testing.T) {
		_, err := svc.VerifyPin(ctx, 99, "1234")
		assert.ErrorIs(t, err, ErrPinNotSet)
	})
}
