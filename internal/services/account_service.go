package services

import (
	"errors"

	"tapcare/internal/models"
	"tapcare/internal/repository"
	"tapcare/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterInput carries the registration form. Optional medical fields stay
// nil when the form omits them.
type RegisterInput struct {
	Username            string
	Email               string
	Password            string
	FirstName           string
	LastName            string
	DateOfBirth         string
	Gender              string
	StudentID           string
	BloodType           *string
	EmergencyContact    string
	MedicalConditions   *string
	Allergies           *string
	CurrentMedications  *string
	ImmunizationHistory *string
	MedicalDevices      *string
}

// AccountService validates and persists registrations and checks logins.
type AccountService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewAccountService(users repository.UserRepository, log *zap.Logger) *AccountService {
	return &AccountService{users: users, log: log}
}

// Register creates a new student account. It runs one existence query across
// username, email and student ID, then one insert. A duplicate-key violation
// from a racing insert is reported as the same conflict as the pre-check.
func (s *AccountService) Register(in RegisterInput) (uint, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" ||
		in.FirstName == "" || in.LastName == "" || in.DateOfBirth == "" ||
		in.Gender == "" || in.StudentID == "" || in.EmergencyContact == "" {
		return 0, errMissingFields()
	}

	dob, err := utils.FormatDateOfBirth(in.DateOfBirth)
	if err != nil {
		return 0, &ValidationError{Message: "Date of birth must be in DD/MM/YYYY format"}
	}

	exists, err := s.users.ExistsByIdentity(in.Username, in.Email, in.StudentID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, &ConflictError{Message: "User with this username, email, or student ID already exists"}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Username:            in.Username,
		Email:               in.Email,
		Password:            hash,
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		DateOfBirth:         dob,
		Gender:              in.Gender,
		StudentID:           in.StudentID,
		BloodType:           in.BloodType,
		EmergencyContact:    in.EmergencyContact,
		MedicalConditions:   in.MedicalConditions,
		Allergies:           in.Allergies,
		CurrentMedications:  in.CurrentMedications,
		ImmunizationHistory: in.ImmunizationHistory,
		MedicalDevices:      in.MedicalDevices,
	}

	if err := s.users.CreateUser(user); err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the loser hits the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, &ConflictError{Message: "User with this username, email, or student ID already exists"}
		}
		return 0, err
	}

	s.log.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("student_id", user.StudentID))

	return user.ID, nil
}

// Login checks the identifier against both the username and email columns and
// verifies the password. The returned record has the password hash stripped.
func (s *AccountService) Login(identifier, password string) (*models.User, error) {
	if identifier == "" || password == "" {
		return nil, &ValidationError{Message: "Username and password are required"}
	}

	user, err := s.users.FindByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &AuthError{Message: "Invalid username or password"}
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, &AuthError{Message: "Invalid username or password"}
	}

	s.log.Info("user logged in", zap.Uint("user_id", user.ID))

	user.Password = ""
	return user, nil
}
