package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

func (h *Handler) registerHistory(rg *gin.RouterGroup) {
	rg.GET("", h.listHistory)
	rg.GET("/:id", h.getHistory)
	rg.DELETE("/:id", h.deleteHistory)
}

func (h *Handler) listHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			badRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	items, err := h.svc.History.ListByUser(c.Request.Context(), userID(c), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "calculations": items})
}

func (h *Handler) getHistory(c *gin.Context) {
	calc, err := h.svc.History.GetByID(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "calculation": calc})
}

func (h *Handler) deleteHistory(c *gin.Context) {
	if err := h.svc.History.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
