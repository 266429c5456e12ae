package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitcoach_backend/internal/services"
	"fitcoach_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// List returns a paginated, filterable user listing for admins/trainers.
func (h *UserHandler) List(c *gin.Context) {
	var query dto.ListUsersQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	response, err := h.userService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get returns a user by ID. The requester's own record comes back in full
// public shape; anyone else's is reduced to the listed shape.
func (h *UserHandler) Get(c *gin.Context) {
	current, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if targetID == "me" {
		targetID = current.ID
	}

	user, err := h.userService.GetByID(targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if user.ID == current.ID {
		c.JSON(http.StatusOK, gin.H{"user": user.Public()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Listed()})
}

// GetMe returns the requester's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	current, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(current.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// Update applies an admin/trainer partial update to any user.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}

// UpdateMe applies a self-service partial update.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	current, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateSelfRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateSelf(current.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

// Delete removes a user (admin only); deleting yourself is rejected.
func (h *UserHandler) Delete(c *gin.Context) {
	current, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(current.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
