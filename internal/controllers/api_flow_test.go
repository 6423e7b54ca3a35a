package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"tapcare/internal/controllers"
	"tapcare/internal/models"
	"tapcare/internal/services"
	"tapcare/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memoryUserRepository is an in-memory stand-in for the postgres-backed
// repository, used to exercise the full register/alert/list flow.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  []models.User
}

func (r *memoryUserRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email || u.StudentID == user.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(identifier string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			user := u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) ExistsByIdentity(username, email, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email || u.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

type memoryAlertRepository struct {
	mu     sync.Mutex
	nextID uint
	alerts []models.Alert
}

func (r *memoryAlertRepository) CreateAlert(alert *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = r.nextID
	if alert.AlertTime.IsZero() {
		alert.AlertTime = time.Now()
	}
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *memoryAlertRepository) FindAllAlerts() ([]models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	sort.Slice(out, func(i, j int) bool {
		return out[i].AlertTime.After(out[j].AlertTime)
	})
	return out, nil
}

func setupAPIRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(views.Templates())

	log := zap.NewNop()
	accountService := services.NewAccountService(&memoryUserRepository{}, log)
	alertService := services.NewAlertService(&memoryAlertRepository{}, log)

	accountController := controllers.NewAccountController(accountService, log)
	alertController := controllers.NewAlertController(alertService, log)
	dashboardController := controllers.NewDashboardController(alertService, 0, log)

	router.POST("/api/register", accountController.Register)
	router.POST("/api/login", accountController.Login)
	router.POST("/api/send-alert", alertController.SendAlert)
	router.GET("/api/alerts", alertController.GetAlerts)
	router.GET("/dashboard", dashboardController.Render)
	return router
}

// Register a student, raise an alert for them, and confirm it round-trips
// through the listing and the dashboard.
func TestRegisterAlertListFlow(t *testing.T) {
	router := setupAPIRouter()

	w := postJSON(router, "/api/register", validRegisterBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		UserID uint `json:"userId"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotZero(t, registered.UserID)

	w = postJSON(router, "/api/login", map[string]interface{}{
		"username": "mreyes",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/send-alert", map[string]interface{}{
		"userId":           registered.UserID,
		"firstName":        "Maria",
		"lastName":         "Reyes",
		"studentId":        "2021-00123",
		"emergencyContact": "+639171234567",
		"latitude":         14.5995,
		"longitude":        120.9842,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Success bool           `json:"success"`
		Alerts  []models.Alert `json:"alerts"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.True(t, listed.Success)
	assert.Len(t, listed.Alerts, 1)
	assert.Equal(t, "2021-00123", listed.Alerts[0].StudentID)
	assert.Equal(t, 14.5995, listed.Alerts[0].Latitude)
	assert.Equal(t, 120.9842, listed.Alerts[0].Longitude)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Active Alerts: 1")
	assert.Contains(t, rec.Body.String(), "Maria Reyes")
}

func TestDuplicateRegistrationFlow(t *testing.T) {
	router := setupAPIRouter()

	w := postJSON(router, "/api/register", validRegisterBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same username, different email and student ID.
	body := validRegisterBody()
	body["email"] = "other@example.edu"
	body["studentId"] = "2022-00999"
	w = postJSON(router, "/api/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAlertsOrderedNewestFirstFlow(t *testing.T) {
	router := setupAPIRouter()

	w := postJSON(router, "/api/register", validRegisterBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	coords := [][2]float64{{14.55, 121.02}, {14.60, 121.00}, {14.61, 120.98}}
	for _, c := range coords {
		w = postJSON(router, "/api/send-alert", map[string]interface{}{
			"userId":           1,
			"firstName":        "Maria",
			"lastName":         "Reyes",
			"studentId":        "2021-00123",
			"emergencyContact": "+639171234567",
			"latitude":         c[0],
			"longitude":        c[1],
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		time.Sleep(2 * time.Millisecond)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var listed struct {
		Alerts []models.Alert `json:"alerts"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Alerts, 3)
	for i := 1; i < len(listed.Alerts); i++ {
		assert.True(t, !listed.Alerts[i].AlertTime.After(listed.Alerts[i-1].AlertTime))
	}
}
