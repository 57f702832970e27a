package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// accountHandler exposes the chart-of-accounts registry.
type accountHandler struct {
	registry portssvc.AccountRegistrySvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(registry portssvc.AccountRegistrySvc) *accountHandler {
	return &accountHandler{registry: registry}
}

type createAccountRequest struct {
	Code        string             `json:"code"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required"`
	Description string             `json:"description"`
	IsActive    *bool              `json:"isActive"`
}

// createAccount handles POST /accounts.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	account, err := h.registry.AddAccount(c.Request.Context(), domain.Account{
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    active,
	})
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// getAccount handles GET /accounts/:nameOrCode.
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.registry.ResolveAccount(c.Request.Context(), c.Param("nameOrCode"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// listAccounts handles GET /accounts.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.registry.ListAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}
