/*
Package wallet provides wallet management functionality for the application.

The wallet service handles all wallet-related operations including:
- Lazy wallet provisioning (one wallet per user, created on first access)
- Balance mutations with an append-only ledger entry per mutation
- Deposit and withdrawal requests that wait for admin settlement
- Transaction history with pagination
- PIN protection with lockout after repeated failures

Usage:

	// Create a new wallet service
	svc := wallet.NewService(repo, cache, tokenizer)

	// Fetch (or lazily create) a wallet
	w, err := svc.GetOrCreateWallet(ctx, userID)

	// Credit funds, recording a completed deposit entry
	entry, err := svc.AddFunds(ctx, userID, 500, "Promotional credit")

	// File a withdrawal request; the amount is held immediately
	entry, err = svc.RequestWithdrawal(ctx, userID, wallet.WithdrawalParams{
	    Amount:            200,
	    WithdrawalMethod:  "bKash",
	    WithdrawalAccount: "01712345678",
	})

Ledger Semantics:

Every balance-affecting operation writes the wallet row and its ledger entry
inside one database transaction, with the wallet row locked FOR UPDATE. A
pending request is finalized exactly once by the settlement service and never
changes again.

Error Handling:

The service returns typed business errors for different scenarios:
- ErrInsufficientBalance: When a debit exceeds the current balance
- ErrInvalidAmount: When an amount is zero, negative, or above the maximum
- ErrWalletLocked: When the wallet is locked by PIN failures
- ErrPinNotSet: When a PIN operation runs before a PIN exists
- ErrInvalidPin: When the submitted PIN does not match
*/
package wallet
