package services

import (
	"github.com/google/uuid"

	"fitcoach_backend/internal/auth"
	"fitcoach_backend/internal/logger"
	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/internal/services/dto"
	"fitcoach_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(refreshToken string) (*dto.TokenPair, error)
	Logout(userID string) error
}

// AuthConfig carries the policy knobs the auth flow needs. ExpiresIn is the
// configured access lifetime as written (e.g. "24h"), echoed verbatim to
// clients.
type AuthConfig struct {
	BcryptCost       int
	VerifyOnRegister bool
	ExpiresIn        string
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *auth.TokenManager
	cfg         AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokens *auth.TokenManager,
	cfg AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// Register creates a user plus an empty profile and issues the first token
// pair. The verification token is generated but not delivered anywhere;
// email delivery is out of scope.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleClient
	}
	if !models.ValidRole(role) {
		return nil, apperrors.ValidationError("role must be one of: client, trainer, admin")
	}

	hashedPassword, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Phone:             req.Phone,
		Role:              role,
		Verified:          s.cfg.VerifyOnRegister,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.Create(&models.Profile{UserID: user.ID}); err != nil {
		if _, delErr := s.userRepo.Delete(user.ID); delErr != nil {
			logger.Error("Failed to roll back user after profile creation failure",
				"user_id", user.ID,
				"error", delErr,
			)
		}
		return nil, apperrors.InternalError(err)
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Message: "User registered successfully",
		User:    user.Public(),
		Tokens:  *tokens,
	}, nil
}

// Login authenticates by email and password. Unknown email, unverified
// account and password mismatch all collapse into ErrInvalidCredentials so
// the response never reveals which applied.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.Verified {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Message: "Login successful",
		User:    user.Public(),
		Tokens:  *tokens,
	}, nil
}

// RefreshToken rotates the pair. The presented token must verify AND match
// the stored one exactly, so a superseded token is permanently unusable.
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if user.RefreshToken != refreshToken {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tokens, nil
}

// Logout clears the stored refresh token; outstanding refresh tokens become
// unusable even before their expiry.
func (s *AuthServiceImpl) Logout(userID string) error {
	if err := s.userRepo.ClearRefreshToken(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewUnauthorizedError("User no longer exists")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// issueTokenPair signs both tokens and persists the refresh token,
// unconditionally overwriting any previous one (single active session).
func (s *AuthServiceImpl) issueTokenPair(user *models.User) (*dto.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken

	expiresIn := s.cfg.ExpiresIn
	if expiresIn == "" {
		expiresIn = s.tokens.AccessTTL().String()
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
