package services

import (
	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/pkg/apperrors"
)

type ProfileService interface {
	GetByUserID(userID string) (*models.Profile, error)
	Create(userID string, patch *repositories.ProfilePatch) (*models.Profile, error)
	Update(userID string, patch *repositories.ProfilePatch) (*models.Profile, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *ProfileServiceImpl) GetByUserID(userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profiles", "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// Create builds the profile from whatever intake fields were supplied.
// A profile exists at most once per user and is never recreated.
func (s *ProfileServiceImpl) Create(userID string, patch *repositories.ProfilePatch) (*models.Profile, error) {
	profile := &models.Profile{UserID: userID}
	patch.Apply(profile)

	if err := s.profileRepo.Create(profile); err != nil {
		if apperrors.Is(err, repositories.ErrProfileAlreadyExists) {
			return nil, apperrors.NewBadRequestError("Profile already exists")
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// Update merges only the supplied fields; an empty patch returns the
// profile unchanged.
func (s *ProfileServiceImpl) Update(userID string, patch *repositories.ProfilePatch) (*models.Profile, error) {
	profile, err := s.profileRepo.Update(userID, *patch)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profiles", "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}
