package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN\d{13}\d{4}$`)

	id := NewTransactionID()
	assert.Regexp(t, pattern, id)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewTransactionID()] = true
	}
	// Collisions inside one millisecond are possible but should be rare.
	assert.Greater(t, len(seen), 90)
}

func TestBeforeCreateAssignsIDOnce(t *testing.T) {
	tx := &WalletTransaction{}
	assert.NoError(t, tx.BeforeCreate(nil))
	assert.NotEmpty(t, tx.TransactionID)

	assigned := tx.TransactionID
	assert.NoError(t, tx.BeforeCreate(nil))
	assert.Equal(t, assigned, tx.TransactionID)
}

func TestIsTerminal(t *testing.T) {
	tx := &WalletTransaction{Status: TransactionStatusPending}
	assert.False(t, tx.IsTerminal())

	for _, status := range []string{
		TransactionStatusCompleted,
		TransactionStatusFailed,
		TransactionStatusCancelled,
	} {
		tx.Status = status
		assert.True(t, tx.IsTerminal(), status)
	}
}

func TestLockExpired(t *testing.T) {
	now := time.Now()
	w := &Wallet{}
	assert.True(t, w.LockExpired(now))

	future := now.Add(time.Minute)
	w.LockedUntil = &future
	assert.False(t, w.LockExpired(now))

	past := now.Add(-time.Minute)
	w.LockedUntil = &past
	assert.True(t, w.LockExpired(now))
}
