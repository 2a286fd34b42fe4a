package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"fwp/internal/models"
	"fwp/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWalletService struct {
	wallet.Service
}

func (stubWalletService) RequestDeposit(_ context.Context, userID uint, _ wallet.DepositParams) (*models.WalletTransaction, error) {
	return &models.WalletTransaction{
		UserID: userID,
		Type:   models.TransactionTypeDeposit,
		Status: models.TransactionStatusPending,
	}, nil
}

func (stubWalletService) RequestWithdrawal(_ context.Context, userID uint, _ wallet.WithdrawalParams) (*models.WalletTransaction, error) {
	return &models.WalletTransaction{
		UserID: userID,
		Type:   models.TransactionTypeWithdrawal,
		Status: models.TransactionStatusPending,
	}, nil
}

func newWalletTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{UserID: 1})
		return c.Next()
	})
	h := NewWalletHandler(stubWalletService{})
	app.Post("/wallet/deposit", h.RequestDeposit)
	app.Post("/wallet/withdraw", h.RequestWithdrawal)
	return app
}

// Accepted deposit and withdrawal requests create a pending entry, so the
// endpoints answer 201.
func TestRequestEndpointsReturnCreated(t *testing.T) {
	app := newWalletTestApp()

	for _, path := range []string{"/wallet/deposit", "/wallet/withdraw"} {
		req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(`{"amount": 100}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode, path)
	}
}
