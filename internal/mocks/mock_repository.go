package mocks

import (
	"tapcare/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository implements repository.UserRepository for tests.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsernameOrEmail(identifier string) (*models.User, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByIdentity(username, email, studentID string) (bool, error) {
	args := m.Called(username, email, studentID)
	return args.Bool(0), args.Error(1)
}

// MockAlertRepository implements repository.AlertRepository for tests.
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) CreateAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

func (m *MockAlertRepository) FindAllAlerts() ([]models.Alert, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}
