package models

type UserRole string

const (
	UserRoleClient  UserRole = "client"
	UserRoleTrainer UserRole = "trainer"
	UserRoleAdmin   UserRole = "admin"
)

// ValidRole reports whether the role is one of the three known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleClient, UserRoleTrainer, UserRoleAdmin:
		return true
	}
	return false
}

// User is the identity record. PasswordHash, RefreshToken and
// VerificationToken never serialize; the token pair returned at login is the
// only place tokens leave the server.
type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Phone        string   `json:"phone,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	Verified     bool     `gorm:"default:false" json:"verified"`

	// RefreshToken holds the single currently-valid refresh token. Issuing
	// a new one overwrites it, which invalidates the prior session.
	RefreshToken      string `json:"-"`
	VerificationToken string `json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PublicUser is the shape of a user echoed to its owner: everything except
// secrets.
type PublicUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	Phone     string   `json:"phone,omitempty"`
	Verified  bool     `json:"verified"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// Public strips the user down to its owner-visible fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListedUser is the reduced shape shown to other authenticated users.
type ListedUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	Verified  bool     `json:"verified"`
	CreatedAt string   `json:"createdAt"`
}

// Listed strips the user down to what non-owners may see.
func (u *User) Listed() ListedUser {
	return ListedUser{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
