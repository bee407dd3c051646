//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"fairway-booking/internal/domain/user"
	"fairway-booking/internal/handler/middleware"
	"fairway-booking/internal/pkg/config"
	"fairway-booking/internal/pkg/jwt"
	"fairway-booking/internal/usecase"
	"fairway-booking/tests/common/authtest"
	"fairway-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, minRole *user.Role) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	authMw := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, time.Hour)))

	router := gin.New()
	handlers := []gin.HandlerFunc{authMw.RequireAuth()}
	if minRole != nil {
		handlers = append(handlers, authMw.RequireRoleAtLeast(*minRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.String(), "role": string(role)})
	})
	router.GET("/protected", handlers...)

	router.GET("/optional", authMw.OptionalAuth(), func(c *gin.Context) {
		_, authed := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})

	return router, authtest.NewJWTHelper(cfg.JWT)
}

func TestRequireAuth(t *testing.T) {
	router, jwtHelper := newAuthRouter(t, nil)
	userID := uuid.New()

	t.Run("valid token passes and fills the context", func(t *testing.T) {
		token := jwtHelper.GenerateToken(t, userID, user.RoleUser)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)

		var resp struct {
			UserID string `json:"userId"`
			Role   string `json:"role"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, userID.String(), resp.UserID)
		assert.Equal(t, "USER", resp.Role)
	})

	t.Run("missing token yields 401", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "")
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "AUTHENTICATION_ERROR")
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "not.a.jwt")
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "AUTHENTICATION_ERROR")
	})

	t.Run("expired token yields 401", func(t *testing.T) {
		token := jwtHelper.CreateExpiredToken(t, userID, user.RoleUser)
		w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "AUTHENTICATION_ERROR")
	})

	t.Run("non bearer scheme yields 401", func(t *testing.T) {
		w := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/protected", nil,
			map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	coach := user.RoleCoach
	router, jwtHelper := newAuthRouter(t, &coach)

	cases := []struct {
		role       user.Role
		expectCode int
	}{
		{user.RoleUser, http.StatusForbidden},
		{user.RoleCoach, http.StatusOK},
		{user.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			token := jwtHelper.GenerateToken(t, uuid.New(), tc.role)
			w := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)
			assert.Equal(t, tc.expectCode, w.Code, w.Body.String())
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	router, jwtHelper := newAuthRouter(t, nil)

	t.Run("without token the request proceeds unauthenticated", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, "")

		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.False(t, resp.Authenticated)
	})

	t.Run("with a valid token the user is attached", func(t *testing.T) {
		token := jwtHelper.GenerateToken(t, uuid.New(), user.RoleUser)
		w := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, token)

		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.True(t, resp.Authenticated)
	})

	t.Run("with an invalid token the request still proceeds", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, "broken-token")

		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.False(t, resp.Authenticated)
	})
}
