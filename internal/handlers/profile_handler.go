package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/internal/services"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// GetOwn returns the requester's intake profile.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetByUserID(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Get returns another user's profile (admin/trainer only).
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// CreateOwn creates the requester's profile from the supplied intake
// fields. Fails once a profile exists.
func (h *ProfileHandler) CreateOwn(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var patch repositories.ProfilePatch
	if !h.BindAndValidateJSON(c, &patch) {
		return
	}

	profile, err := h.profileService.Create(user.ID, &patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Profile created successfully",
		"profile": profile,
	})
}

// UpdateOwn merges the supplied fields into the requester's profile.
func (h *ProfileHandler) UpdateOwn(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}
	h.update(c, user.ID)
}

// Update merges the supplied fields into another user's profile
// (admin/trainer only).
func (h *ProfileHandler) Update(c *gin.Context) {
	h.update(c, c.Param("userId"))
}

func (h *ProfileHandler) update(c *gin.Context, userID string) {
	var patch repositories.ProfilePatch
	if !h.BindAndValidateJSON(c, &patch) {
		return
	}

	profile, err := h.profileService.Update(userID, &patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
