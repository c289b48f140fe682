package handlers

import (
	"errors"
	"net/http"

	"memoria/models"
	"memoria/services/reminder"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes the reminder engine endpoints.
type ReminderHandler struct {
	ReminderService reminder.ReminderService
}

// CreateReminderHandler handles POST /reminders.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.Reminder
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reminder request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.UserID = currentUserID(c)

	created, err := h.ReminderService.Add(req)
	if err != nil {
		logger.Error("Reminder creation failed", zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReminderHandler handles PATCH /reminders/:id with a sparse patch.
func (h *ReminderHandler) UpdateReminderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req models.ReminderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reminder update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.ReminderService.Update(currentUserID(c), id, req)
	if err != nil {
		logger.Error("Reminder update failed", zap.String("id", id), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReminderHandler handles DELETE /reminders/:id.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.ReminderService.Delete(currentUserID(c), id); err != nil {
		logger.Error("Reminder deletion failed", zap.String("id", id), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// CompleteReminderHandler handles POST /reminders/:id/complete. Completing
// an already-completed reminder is a no-op.
func (h *ReminderHandler) CompleteReminderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.ReminderService.Complete(currentUserID(c), id); err != nil {
		logger.Error("Reminder completion failed", zap.String("id", id), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder completed"})
}

// SnoozeReminderHandler handles POST /reminders/:id/snooze.
func (h *ReminderHandler) SnoozeReminderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid snooze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.ReminderService.Snooze(currentUserID(c), id, req.Minutes); err != nil {
		logger.Error("Reminder snooze failed", zap.String("id", id), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder snoozed"})
}

// ListRemindersHandler handles GET /reminders for the authenticated user.
func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	reminders, err := h.ReminderService.ListAll(userID)
	if err != nil {
		logger.Error("Reminder list failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// ListUpcomingHandler handles GET /reminders/upcoming.
func (h *ReminderHandler) ListUpcomingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	reminders, err := h.ReminderService.ListUpcoming(userID)
	if err != nil {
		logger.Error("Upcoming list failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// ListOverdueHandler handles GET /reminders/overdue.
func (h *ReminderHandler) ListOverdueHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	reminders, err := h.ReminderService.ListOverdue(userID)
	if err != nil {
		logger.Error("Overdue list failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(reminderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// NotificationPermissionHandler handles GET /reminders/notification-permission.
// It reports whether push dispatch can reach the authenticated user.
func (h *ReminderHandler) NotificationPermissionHandler(c *gin.Context) {
	userID := currentUserID(c)
	granted := h.ReminderService.RequestNotificationPermission(userID)
	c.JSON(http.StatusOK, gin.H{"granted": granted})
}

// reminderErrorStatus maps reminder service errors to HTTP status codes.
func reminderErrorStatus(err error) int {
	var ve reminder.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nfe reminder.NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
