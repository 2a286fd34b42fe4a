package handlers

import (
	"errors"

	domain "fwp/internal/errors"
	"fwp/internal/services/wallet"
	"fwp/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet returns the caller's wallet, creating it on first access.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetOrCreateWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to get wallet")
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page, err := h.walletService.GetTransactions(c.Context(), claims.UserID, wallet.TransactionQuery{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", wallet.DefaultPageLimit),
		Skip:   c.QueryInt("skip", 0),
	})
	if err != nil {
		return utils.InternalError(c, "Failed to get transactions")
	}

	return utils.Success(c, page)
}

func (h *WalletHandler) GetTransaction(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	entry, err := h.walletService.GetTransaction(c.Context(), claims.UserID, c.Params("transactionId"))
	if err != nil {
		if errors.Is(err, wallet.ErrTransactionNotFound) {
			return utils.NotFound(c, "Transaction not found")
		}
		return utils.InternalError(c, "Failed to get transaction")
	}

	return utils.Success(c, fiber.Map{
		"transaction": entry,
	})
}

func (h *WalletHandler) RequestDeposit(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount         float64 `json:"amount"`
		PaymentMethod  string  `json:"payment_method"`
		PaymentAccount string  `json:"payment_account"`
		Reference      string  `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	entry, err := h.walletService.RequestDeposit(c.Context(), claims.UserID, wallet.DepositParams{
		Amount:         input.Amount,
		PaymentMethod:  input.PaymentMethod,
		PaymentAccount: input.PaymentAccount,
		Reference:      input.Reference,
	})
	if err != nil {
		return h.walletError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message":     "Deposit request submitted for approval",
		"transaction": entry,
	})
}

func (h *WalletHandler) RequestWithdrawal(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount            float64 `json:"amount"`
		WithdrawalMethod  string  `json:"withdrawal_method"`
		WithdrawalAccount string  `json:"withdrawal_account"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	entry, err := h.walletService.RequestWithdrawal(c.Context(), claims.UserID, wallet.WithdrawalParams{
		Amount:            input.Amount,
		WithdrawalMethod:  input.WithdrawalMethod,
		WithdrawalAccount: input.WithdrawalAccount,
	})
	if err != nil {
		if errors.Is(err, wallet.ErrWalletLocked) {
			return utils.Forbidden(c, "Wallet is locked")
		}
		return h.walletError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message":     "Withdrawal request submitted for approval",
		"transaction": entry,
	})
}

func (h *WalletHandler) UpdateWithdrawalMethod(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		WithdrawalMethod  string `json:"withdrawal_method"`
		WithdrawalAccount string `json:"withdrawal_account"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	w, err := h.walletService.UpdateWithdrawalMethod(c.Context(), claims.UserID, input.WithdrawalMethod, input.WithdrawalAccount)
	if err != nil {
		return h.walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Withdrawal method updated",
		"wallet":  w,
	})
}

func (h *WalletHandler) SetPin(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Pin        string `json:"pin"`
		CurrentPin string `json:"current_pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.walletService.SetPin(c.Context(), claims.UserID, input.Pin, input.CurrentPin); err != nil {
		if errors.Is(err, wallet.ErrInvalidPin) {
			return utils.Unauthorized(c, "Current PIN is incorrect")
		}
		return h.walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "PIN updated",
	})
}

func (h *WalletHandler) VerifyPin(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Pin string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	status, err := h.walletService.VerifyPin(c.Context(), claims.UserID, input.Pin)
	switch {
	case err == nil:
		return utils.Success(c, status)
	case errors.Is(err, wallet.ErrInvalidPin):
		return utils.Respond(c, fiber.StatusUnauthorized, fiber.Map{
			"error":         "Invalid PIN",
			"attempts_left": status.AttemptsLeft,
		})
	case errors.Is(err, wallet.ErrWalletLocked):
		return utils.Locked(c, fiber.Map{
			"error":        "Wallet is locked",
			"locked_until": status.LockedUntil,
		})
	case errors.Is(err, wallet.ErrPinNotSet):
		return utils.NotFound(c, "PIN has not been set")
	default:
		return utils.InternalError(c, "Failed to verify PIN")
	}
}

// walletError maps service errors to HTTP responses. Unrecognized errors come
// back as a generic 500 so internals never leak to clients.
func (h *WalletHandler) walletError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount):
		return utils.BadRequest(c, "Amount must be greater than 0")
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return utils.BadRequest(c, "Insufficient wallet balance")
	case errors.Is(err, wallet.ErrWalletNotFound):
		return utils.NotFound(c, "Wallet not found")
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		return utils.BadRequest(c, de.Message)
	}

	return utils.InternalError(c, "Operation failed")
}
