package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calc-hub/domain"
)

func (h *Handler) registerAuth(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "invalid body")
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), creds)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": user})
}

func (h *Handler) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "invalid body")
		return
	}

	token, err := h.svc.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token.Token, "expires_at": token.ExpiresAt})
}
