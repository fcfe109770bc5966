package site

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ProjectModel{},
		&models.ClientModel{},
		&models.ContactMessageModel{},
		&models.SubscriberModel{},
	))

	r := gin.New()
	NewHandler(NewService(db)).RegisterRoutes(r.Group(""))
	return r, db
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func flashMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flipper_flash" {
			msg, err := url.QueryUnescape(ck.Value)
			require.NoError(t, err)
			return msg
		}
	}
	return ""
}

func TestHomeListsProjectsAndClients(t *testing.T) {
	r, db := setupRouter(t)

	require.NoError(t, db.Create(&models.ProjectModel{Name: "Redesign", Description: "Full redesign"}).Error)
	require.NoError(t, db.Create(&models.ClientModel{Name: "Jo", Designation: "CTO", Description: "Great"}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Redesign"`)
	assert.Contains(t, w.Body.String(), `"Jo"`)
}

func TestProjectsOrderedNewestFirst(t *testing.T) {
	r, db := setupRouter(t)

	older := models.ProjectModel{Name: "Old", Description: "first"}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Model(&older).Update("created_at", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)).Error)
	require.NoError(t, db.Create(&models.ProjectModel{Name: "New", Description: "second"}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/projects", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, `"New"`), strings.Index(body, `"Old"`))
}

func TestContactSubmitStoresMessageAndRedirects(t *testing.T) {
	r, db := setupRouter(t)

	w := postForm(r, "/contact", url.Values{
		"full_name": {"Dana Example"},
		"email":     {"dana@example.com"},
		"mobile":    {"5551234"},
		"city":      {"Austin"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact", w.Header().Get("Location"))
	assert.Contains(t, flashMessage(t, w), "Thank you")

	var msg models.ContactMessageModel
	require.NoError(t, db.First(&msg).Error)
	assert.Equal(t, "Dana Example", msg.FullName)
	assert.Equal(t, "Austin", msg.City)
}

func TestContactSubmitRejectsMissingFields(t *testing.T) {
	r, db := setupRouter(t)

	w := postForm(r, "/contact", url.Values{"email": {"dana@example.com"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.ContactMessageModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubscribe(t *testing.T) {
	r, db := setupRouter(t)

	w := postForm(r, "/subscribe", url.Values{"email": {"reader@example.com"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "Thanks for subscribing!", flashMessage(t, w))

	var count int64
	require.NoError(t, db.Model(&models.SubscriberModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscribeDuplicateGetsDistinctMessage(t *testing.T) {
	r, db := setupRouter(t)
	require.NoError(t, db.Create(&models.SubscriberModel{Email: "reader@example.com"}).Error)

	w := postForm(r, "/subscribe", url.Values{"email": {"reader@example.com"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "You are already subscribed.", flashMessage(t, w))

	var count int64
	require.NoError(t, db.Model(&models.SubscriberModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	r, db := setupRouter(t)

	w := postForm(r, "/subscribe", url.Values{"email": {"not-an-email"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Please enter a valid email address.", flashMessage(t, w))

	var count int64
	require.NoError(t, db.Model(&models.SubscriberModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHomeConsumesFlashCookie(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "flipper_flash", Value: "Thanks+for+subscribing%21"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thanks for subscribing!")

	// The cookie is cleared after a single read.
	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flipper_flash" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
