package repository

import (
	"tapcare/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the storage surface the account service depends on.
type UserRepository interface {
	CreateUser(user *models.User) error
	FindByUsernameOrEmail(identifier string) (*models.User, error)
	ExistsByIdentity(username, email, studentID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) CreateUser(user *models.User) error {
	return ur.db.Create(user).Error
}

// FindByUsernameOrEmail matches the login identifier against both columns,
// so students can sign in with either.
func (ur *userRepository) FindByUsernameOrEmail(identifier string) (*models.User, error) {
	var user models.User
	err := ur.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByIdentity is the single registration conflict check across all
// three unique columns.
func (ur *userRepository) ExistsByIdentity(username, email, studentID string) (bool, error) {
	var count int64
	err := ur.db.Model(&models.User{}).
		Where("username = ? OR email = ? OR student_id = ?", username, email, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
