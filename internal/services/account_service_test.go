package services_test

import (
	"errors"
	"testing"

	"tapcare/internal/mocks"
	"tapcare/internal/models"
	"tapcare/internal/services"
	"tapcare/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func validRegisterInput() services.RegisterInput {
	return services.RegisterInput{
		Username:         "mreyes",
		Email:            "maria.reyes@example.edu",
		Password:         "password123",
		FirstName:        "Maria",
		LastName:         "Reyes",
		DateOfBirth:      "15/4/2003",
		Gender:           "female",
		StudentID:        "2021-00123",
		EmergencyContact: "+639171234567",
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*services.RegisterInput)
		setupMocks func(*mocks.MockUserRepository)
		wantID     uint
		wantErr    func(*testing.T, error)
	}{
		{
			name: "successful registration",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("ExistsByIdentity", "mreyes", "maria.reyes@example.edu", "2021-00123").Return(false, nil)
				repo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
					args.Get(0).(*models.User).ID = 7
				}).Return(nil)
			},
			wantID: 7,
		},
		{
			name:   "missing required field",
			mutate: func(in *services.RegisterInput) { in.EmergencyContact = "" },
			wantErr: func(t *testing.T, err error) {
				var validationErr *services.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "Missing required fields", validationErr.Message)
			},
		},
		{
			name:   "unparseable date of birth",
			mutate: func(in *services.RegisterInput) { in.DateOfBirth = "April 15 2003" },
			wantErr: func(t *testing.T, err error) {
				var validationErr *services.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			},
		},
		{
			name: "duplicate identity",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("ExistsByIdentity", "mreyes", "maria.reyes@example.edu", "2021-00123").Return(true, nil)
			},
			wantErr: func(t *testing.T, err error) {
				var conflictErr *services.ConflictError
				assert.ErrorAs(t, err, &conflictErr)
			},
		},
		{
			name: "racing insert hits unique index",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("ExistsByIdentity", "mreyes", "maria.reyes@example.edu", "2021-00123").Return(false, nil)
				repo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: func(t *testing.T, err error) {
				var conflictErr *services.ConflictError
				assert.ErrorAs(t, err, &conflictErr)
			},
		},
		{
			name: "storage failure on existence check",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("ExistsByIdentity", "mreyes", "maria.reyes@example.edu", "2021-00123").Return(false, errors.New("connection refused"))
			},
			wantErr: func(t *testing.T, err error) {
				var validationErr *services.ValidationError
				var conflictErr *services.ConflictError
				assert.False(t, errors.As(err, &validationErr))
				assert.False(t, errors.As(err, &conflictErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockUserRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}
			svc := services.NewAccountService(repo, zap.NewNop())

			in := validRegisterInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			id, err := svc.Register(in)

			if tt.wantErr != nil {
				tt.wantErr(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestRegisterNormalizesDateOfBirth(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	var created *models.User
	repo.On("ExistsByIdentity", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = 1
	}).Return(nil)

	svc := services.NewAccountService(repo, zap.NewNop())

	in := validRegisterInput()
	in.DateOfBirth = "5/4/2003"

	_, err := svc.Register(in)
	assert.NoError(t, err)
	assert.Equal(t, "2003-04-05", created.DateOfBirth)
}

func TestRegisterNeverStoresPlaintextPassword(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	var created *models.User
	repo.On("ExistsByIdentity", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = 1
	}).Return(nil)

	svc := services.NewAccountService(repo, zap.NewNop())

	_, err := svc.Register(validRegisterInput())
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", created.Password)
	assert.True(t, utils.CheckPasswordHash("password123", created.Password))
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	assert.NoError(t, err)

	storedUser := func() *models.User {
		return &models.User{
			ID:       1,
			Username: "mreyes",
			Email:    "maria.reyes@example.edu",
			Password: hash,
		}
	}

	tests := []struct {
		name       string
		identifier string
		password   string
		setupMocks func(*mocks.MockUserRepository)
		wantAuthed bool
		wantErrMsg string
	}{
		{
			name:       "login by username",
			identifier: "mreyes",
			password:   "password123",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("FindByUsernameOrEmail", "mreyes").Return(storedUser(), nil)
			},
			wantAuthed: true,
		},
		{
			name:       "login by email",
			identifier: "maria.reyes@example.edu",
			password:   "password123",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("FindByUsernameOrEmail", "maria.reyes@example.edu").Return(storedUser(), nil)
			},
			wantAuthed: true,
		},
		{
			name:       "unknown identifier",
			identifier: "nobody",
			password:   "password123",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("FindByUsernameOrEmail", "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErrMsg: "Invalid username or password",
		},
		{
			name:       "wrong password",
			identifier: "mreyes",
			password:   "letmein",
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.On("FindByUsernameOrEmail", "mreyes").Return(storedUser(), nil)
			},
			wantErrMsg: "Invalid username or password",
		},
		{
			name:       "missing password",
			identifier: "mreyes",
			password:   "",
			wantErrMsg: "Username and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockUserRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}
			svc := services.NewAccountService(repo, zap.NewNop())

			user, err := svc.Login(tt.identifier, tt.password)

			if tt.wantAuthed {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), user.ID)
				assert.Empty(t, user.Password)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErrMsg, err.Error())
			}
			repo.AssertExpectations(t)
		})
	}
}

// Unknown-user and wrong-password failures must be indistinguishable.
func TestLoginFailuresAreIdentical(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	assert.NoError(t, err)

	repo := new(mocks.MockUserRepository)
	repo.On("FindByUsernameOrEmail", "ghost").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByUsernameOrEmail", "mreyes").Return(&models.User{ID: 1, Username: "mreyes", Password: hash}, nil)

	svc := services.NewAccountService(repo, zap.NewNop())

	_, errUnknown := svc.Login("ghost", "password123")
	_, errWrongPass := svc.Login("mreyes", "wrong")

	var authErr1 *services.AuthError
	var authErr2 *services.AuthError
	assert.ErrorAs(t, errUnknown, &authErr1)
	assert.ErrorAs(t, errWrongPass, &authErr2)
	assert.Equal(t, authErr1.Message, authErr2.Message)
}
