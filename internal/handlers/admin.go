package handlers

import (
	"errors"
	"time"

	"fwp/internal/repositories"
	"fwp/internal/services/settlement"
	"fwp/internal/services/wallet"
	"fwp/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the settlement queue and wallet administration.
type AdminHandler struct {
	settlementService settlement.Service
	walletService     wallet.Service
	walletRepo        repositories.WalletRepository
}

func NewAdminHandler(settlementService settlement.Service, walletService wallet.Service, walletRepo repositories.WalletRepository) *AdminHandler {
	return &AdminHandler{
		settlementService: settlementService,
		walletService:     walletService,
		walletRepo:        walletRepo,
	}
}

func (h *AdminHandler) ListSettlements(c *fiber.Ctx) error {
	page, err := h.settlementService.ListPending(c.Context(), settlement.Query{
		Type:  c.Query("type"),
		Limit: c.QueryInt("limit", 20),
		Skip:  c.QueryInt("skip", 0),
	})
	if err != nil {
		return utils.InternalError(c, "Failed to list pending settlements")
	}

	return utils.Success(c, page)
}

func (h *AdminHandler) ApproveSettlement(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	entry, err := h.settlementService.Approve(c.Context(), claims.UserID, c.Params("transactionId"))
	if err != nil {
		return h.settlementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Transaction approved",
		"transaction": entry,
	})
}

func (h *AdminHandler) RejectSettlement(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	entry, err := h.settlementService.Reject(c.Context(), claims.UserID, c.Params("transactionId"), input.Reason)
	if err != nil {
		return h.settlementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Transaction rejected",
		"transaction": entry,
	})
}

func (h *AdminHandler) ListWallets(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	skip := c.QueryInt("skip", 0)

	wallets, total, err := h.walletRepo.List(skip, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list wallets")
	}

	return utils.Success(c, fiber.Map{
		"wallets": wallets,
		"total":   total,
		"limit":   limit,
		"skip":    skip,
	})
}

func (h *AdminHandler) CreditEarnings(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return utils.BadRequest(c, "Invalid user id")
	}

	var input struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	description := input.Description
	if description == "" {
		description = "Platform earnings"
	}

	entry, err := h.walletService.AddEarnings(c.Context(), uint(userID), input.Amount, description)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return utils.BadRequest(c, "Amount must be greater than 0")
		}
		return utils.InternalError(c, "Failed to credit earnings")
	}

	return utils.Success(c, fiber.Map{
		"message":     "Earnings credited",
		"transaction": entry,
	})
}

// GetSummary reports platform-wide balance and ledger statistics. The window
// defaults to the last 30 days.
func (h *AdminHandler) GetSummary(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if days := c.QueryInt("days", 30); days > 0 {
		start = end.AddDate(0, 0, -days)
	}

	totalBalance, err := h.walletRepo.GetTotalBalance()
	if err != nil {
		return utils.InternalError(c, "Failed to compute total balance")
	}

	stats, err := h.walletRepo.GetTransactionStats(start, end)
	if err != nil {
		return utils.InternalError(c, "Failed to compute transaction stats")
	}

	return utils.Success(c, fiber.Map{
		"total_balance": totalBalance,
		"window_start":  start,
		"window_end":    end,
		"stats":         stats,
	})
}

func (h *AdminHandler) settlementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, settlement.ErrNotFound):
		return utils.NotFound(c, "Transaction not found")
	case settlement.IsTerminalError(err):
		return utils.Respond(c, fiber.StatusConflict, fiber.Map{"error": err.Error()})
	default:
		return utils.InternalError(c, "Settlement failed")
	}
}
