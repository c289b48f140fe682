package handlers

import (
	"errors"
	"net/http"

	"memoria/models"
	"memoria/services/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler exposes account and patient profile endpoints. All routes
// operate on the authenticated user.
type ProfileHandler struct {
	ProfileService profile.ProfileService
}

// GetUserHandler handles GET /users/me.
func (h *ProfileHandler) GetUserHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	usr, err := h.ProfileService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(profileErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateUserHandler handles PATCH /users/me with a sparse patch body.
func (h *ProfileHandler) UpdateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid user update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	userID := currentUserID(c)
	req.ID = &userID

	updated, err := h.ProfileService.UpdateUser(req)
	if err != nil {
		logger.Error("User update failed", zap.String("id", userID), zap.Error(err))
		c.JSON(profileErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetProfileHandler handles GET /profile. A first read materializes and
// persists the default patient profile.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	prof, err := h.ProfileService.GetProfile(userID)
	if err != nil {
		logger.Error("Profile fetch failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(profileErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prof)
}

// UpdateProfileHandler handles PATCH /profile. Nested objects in the patch
// replace the stored object wholesale.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := currentUserID(c)
	updated, err := h.ProfileService.UpdateProfile(userID, req)
	if err != nil {
		logger.Error("Profile update failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(profileErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUserHandler handles DELETE /users/me.
func (h *ProfileHandler) DeleteUserHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := currentUserID(c)
	if err := h.ProfileService.DeleteUser(userID); err != nil {
		logger.Error("Delete error", zap.String("id", userID), zap.Error(err))
		c.JSON(profileErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// profileErrorStatus maps profile service errors to HTTP status codes.
func profileErrorStatus(err error) int {
	var ve profile.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nfe profile.NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
