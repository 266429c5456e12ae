package dto

import "fitcoach_backend/internal/models"

// UpdateUserRequest is the admin/trainer partial user update. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Role     *string `json:"role" validate:"omitempty,is-user-role"`
	Verified *bool   `json:"verified"`
}

// UpdateSelfRequest is the self-service subset: no role or verification
// changes.
type UpdateSelfRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

type ListUsersQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Role   string `form:"role" validate:"omitempty,is-user-role"`
	Search string `form:"search"`
}

type UserListResponse struct {
	Users       []models.PublicUser `json:"users"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	TotalUsers  int64               `json:"totalUsers"`
	HasNextPage bool                `json:"hasNextPage"`
	HasPrevPage bool                `json:"hasPrevPage"`
}
