package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
	"github.com/budgetin-app/budgetin_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes the history engine: the present ledger view and its
// undo/redo/clear controls. Undo and redo on empty stacks return 200 with the
// unchanged state rather than an error, so clients can call them blindly.
type ledgerHandler struct {
	historyService portssvc.HistorySvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(hs portssvc.HistorySvcFacade) *ledgerHandler {
	return &ledgerHandler{
		historyService: hs,
	}
}

// registerLedgerRoutes registers the ledger history routes.
func registerLedgerRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := newLedgerHandler(historyService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getLedger)
		ledger.POST("/undo", h.undo)
		ledger.POST("/redo", h.redo)
		ledger.POST("/clear", h.clear)
	}
}

type historyOp func(ctx *gin.Context, ownerID string) (dto.LedgerStateResponse, error)

// respond runs the history operation for the authenticated owner and writes
// the resulting ledger state.
func (h *ledgerHandler) respond(c *gin.Context, action string, op historyOp) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	state, err := op(c, ownerID)
	if err != nil {
		logger.Error("Ledger history operation failed",
			slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *ledgerHandler) getLedger(c *gin.Context) {
	h.respond(c, "load ledger", func(ctx *gin.Context, ownerID string) (dto.LedgerStateResponse, error) {
		snap, canUndo, canRedo, err := h.historyService.Current(ctx.Request.Context(), ownerID)
		return dto.ToLedgerStateResponse(snap, canUndo, canRedo), err
	})
}

func (h *ledgerHandler) undo(c *gin.Context) {
	h.respond(c, "undo", func(ctx *gin.Context, ownerID string) (dto.LedgerStateResponse, error) {
		snap, canUndo, canRedo, err := h.historyService.Undo(ctx.Request.Context(), ownerID)
		return dto.ToLedgerStateResponse(snap, canUndo, canRedo), err
	})
}

func (h *ledgerHandler) redo(c *gin.Context) {
	h.respond(c, "redo", func(ctx *gin.Context, ownerID string) (dto.LedgerStateResponse, error) {
		snap, canUndo, canRedo, err := h.historyService.Redo(ctx.Request.Context(), ownerID)
		return dto.ToLedgerStateResponse(snap, canUndo, canRedo), err
	})
}

func (h *ledgerHandler) clear(c *gin.Context) {
	h.respond(c, "clear history", func(ctx *gin.Context, ownerID string) (dto.LedgerStateResponse, error) {
		snap, canUndo, canRedo, err := h.historyService.Clear(ctx.Request.Context(), ownerID)
		return dto.ToLedgerStateResponse(snap, canUndo, canRedo), err
	})
}
