package repositories

import (
	"errors"
	"time"

	"fitcoach_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter narrows a paginated listing. Role and Search apply
// conjunctively; Search matches name or email, case-insensitive.
type UserFilter struct {
	Role     models.UserRole
	Search   string
	Page     int
	PageSize int
}

// UserPatch is a partial update: only non-nil fields change. This replaces
// ad hoc dynamic SQL with an explicit field set.
type UserPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Role     *models.UserRole
	Verified *bool
}

// Fields translates present keys into an update column map.
func (p UserPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.Role != nil {
		fields["role"] = *p.Role
	}
	if p.Verified != nil {
		fields["verified"] = *p.Verified
	}
	return fields
}

type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	Update(id string, patch UserPatch) (*models.User, error)
	UpdateRefreshToken(id, token string) error
	ClearRefreshToken(id string) error
	Delete(id string) (*models.User, error)
	FindWithFilter(criteria UserFilter) ([]models.User, int64, error)
	Count() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial merge. An empty patch is a no-op returning the
// current record.
func (r *UserRepositoryImpl) Update(id string, patch UserPatch) (*models.User, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.FindByID(id)
	}
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(id)
}

func (r *UserRepositoryImpl) UpdateRefreshToken(id, token string) error {
	return r.setRefreshToken(id, token)
}

func (r *UserRepositoryImpl) ClearRefreshToken(id string) error {
	return r.setRefreshToken(id, "")
}

func (r *UserRepositoryImpl) setRefreshToken(id, token string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"refresh_token": token,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and, transactionally, the owned profile. The FK
// cascade covers this at the database level too; the explicit delete keeps
// the behavior independent of migration state.
func (r *UserRepositoryImpl) Delete(id string) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindWithFilter returns a page of users plus the unpaginated total,
// newest first.
func (r *UserRepositoryImpl) FindWithFilter(criteria UserFilter) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("(name ILIKE ? OR email ILIKE ?)", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
