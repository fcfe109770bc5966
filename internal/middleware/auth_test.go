package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flipperhq/flipper-backend/internal/models"
	sessionpkg "github.com/flipperhq/flipper-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGuarded(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminSession{}))

	r := gin.New()
	r.GET("/guarded", RequireAdmin(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":    CurrentUserID(c),
			"session": CurrentSessionID(c),
		})
	})
	return r, db
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "abc", NormalizeToken("  abc  "))
	assert.Equal(t, "abc", NormalizeToken("Bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Empty(t, NormalizeToken("   "))
}

func TestRequireAdminWithoutTokenRedirects(t *testing.T) {
	r, _ := setupGuarded(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestRequireAdminWithGarbageTokenRedirects(t *testing.T) {
	r, _ := setupGuarded(t)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
}

func TestRequireAdminAcceptsCookieToken(t *testing.T) {
	r, db := setupGuarded(t)

	token, _, err := sessionpkg.Issue(db, 11, "", "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":11`)
}

func TestRequireAdminAcceptsBearerHeader(t *testing.T) {
	r, db := setupGuarded(t)

	token, _, err := sessionpkg.Issue(db, 12, "", "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsRevokedSession(t *testing.T) {
	r, db := setupGuarded(t)

	token, s, err := sessionpkg.Issue(db, 13, "", "", time.Hour)
	require.NoError(t, err)
	require.NoError(t, sessionpkg.Revoke(db, 13, s.ID))

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}
