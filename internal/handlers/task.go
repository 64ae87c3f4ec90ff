package handlers

import (
	"net/http"

	"tasklist/internal/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listTasks(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tasks, err := h.services.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) createTask(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	input, err := validation.DecodeCreateTask(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), userID, input.Title, input.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) updateTask(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	taskID, err := validation.TaskID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	patch, err := validation.DecodeUpdateTask(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), userID, taskID, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) deleteTask(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	taskID, err := validation.TaskID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.services.Tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted", "taskId": taskID})
}
