package handlers

import (
	"net/http"

	"tasklist/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) register(c *gin.Context) {
	input, err := validation.DecodeRegister(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_register_failed", "username", input.Username, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) login(c *gin.Context) {
	input, err := validation.DecodeLogin(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
