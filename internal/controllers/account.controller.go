package controllers

import (
	"errors"
	"net/http"

	"tapcare/internal/metrics"
	"tapcare/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountController handles registration and login requests.
type AccountController struct {
	accounts *services.AccountService
	log      *zap.Logger
}

func NewAccountController(accounts *services.AccountService, log *zap.Logger) *AccountController {
	return &AccountController{accounts: accounts, log: log}
}

type registerRequest struct {
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	Password            string  `json:"password"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	DateOfBirth         string  `json:"dateOfBirth"`
	Gender              string  `json:"gender"`
	StudentID           string  `json:"studentId"`
	BloodType           *string `json:"bloodType"`
	EmergencyContact    string  `json:"emergencyContact"`
	MedicalConditions   *string `json:"medicalConditions"`
	Allergies           *string `json:"allergies"`
	CurrentMedications  *string `json:"currentMedications"`
	ImmunizationHistory *string `json:"immunizationHistory"`
	MedicalDevices      *string `json:"medicalDevices"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new student account
// @Description Create an account with identity and medical profile data
// @Tags account
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Failure 409 {object} map[string]interface{} "Duplicate username, email or student ID"
// @Router /api/register [post]
func (ac *AccountController) Register(c *gin.Context) {
	metrics.RegisterCounter.Inc()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	userID, err := ac.accounts.Register(services.RegisterInput{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DateOfBirth:         req.DateOfBirth,
		Gender:              req.Gender,
		StudentID:           req.StudentID,
		BloodType:           req.BloodType,
		EmergencyContact:    req.EmergencyContact,
		MedicalConditions:   req.MedicalConditions,
		Allergies:           req.Allergies,
		CurrentMedications:  req.CurrentMedications,
		ImmunizationHistory: req.ImmunizationHistory,
		MedicalDevices:      req.MedicalDevices,
	})
	if err != nil {
		ac.fail(c, "registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"userId":  userID,
	})
}

// Login godoc
// @Summary Log a student in
// @Description Verify credentials against the username or email column
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Missing credentials"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/login [post]
func (ac *AccountController) Login(c *gin.Context) {
	metrics.LoginCounter.Inc()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	user, err := ac.accounts.Login(req.Username, req.Password)
	if err != nil {
		ac.fail(c, "login failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// fail maps service errors onto the HTTP taxonomy. Storage errors are logged
// with detail but reported generically.
func (ac *AccountController) fail(c *gin.Context, op string, err error) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError
	var authErr *services.AuthError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflictErr.Message})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": authErr.Message})
	default:
		ac.log.Error(op, zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
