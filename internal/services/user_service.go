package services

import (
	"math"

	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/internal/services/dto"
	"fitcoach_backend/pkg/apperrors"
)

type UserService interface {
	List(query *dto.ListUsersQuery) (*dto.UserListResponse, error)
	GetByID(id string) (*models.User, error)
	Update(id string, req *dto.UpdateUserRequest) (*models.User, error)
	UpdateSelf(userID string, req *dto.UpdateSelfRequest) (*models.User, error)
	Delete(actorID, targetID string) error
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewUserService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// List returns a page of users, newest first, with pagination math done
// server side.
func (s *UserServiceImpl) List(query *dto.ListUsersQuery) (*dto.UserListResponse, error) {
	page := query.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Search:   query.Search,
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	publicUsers := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicUsers = append(publicUsers, users[i].Public())
	}

	return &dto.UserListResponse{
		Users:       publicUsers,
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalUsers:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

func (s *UserServiceImpl) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// Update applies an admin/trainer partial update, guarding email uniqueness
// against other accounts.
func (s *UserServiceImpl) Update(id string, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := s.checkEmailAvailable(req.Email, id); err != nil {
		return nil, err
	}

	patch := repositories.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Verified: req.Verified,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		patch.Role = &role
	}

	return s.applyPatch(id, patch)
}

// UpdateSelf is the self-service subset: no role or verification changes.
func (s *UserServiceImpl) UpdateSelf(userID string, req *dto.UpdateSelfRequest) (*models.User, error) {
	if err := s.checkEmailAvailable(req.Email, userID); err != nil {
		return nil, err
	}

	return s.applyPatch(userID, repositories.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
}

// Delete removes a user and, by cascade, the owned profile. Self-deletion
// is rejected so an admin cannot lock themselves out mid-session.
func (s *UserServiceImpl) Delete(actorID, targetID string) error {
	if actorID == targetID {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	if _, err := s.userRepo.Delete(targetID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("users", "User not found")
		}
		return apperrors.InternalError(err)
	}

	// The user delete cascades at the store level; this sweep covers stores
	// without foreign-key enforcement. A missing profile is fine either way.
	if err := s.profileRepo.DeleteByUserID(targetID); err != nil &&
		!apperrors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) applyPatch(id string, patch repositories.UserPatch) (*models.User, error) {
	user, err := s.userRepo.Update(id, patch)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) checkEmailAvailable(email *string, selfID string) error {
	if email == nil {
		return nil
	}
	existing, err := s.userRepo.FindByEmail(*email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if existing.ID != selfID {
		return apperrors.NewBadRequestError("Email already in use by another account")
	}
	return nil
}
