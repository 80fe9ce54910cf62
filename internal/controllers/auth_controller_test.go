package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/models"
	"github.com/SketchShifter/warbler_backend/internal/services"
	"github.com/SketchShifter/warbler_backend/internal/session"
	"github.com/SketchShifter/warbler_backend/internal/testutil"

	"github.com/gin-gonic/gin"
)

// fakeAuthService 認証は常に成功し、トークン発行だけ失敗させる
type fakeAuthService struct {
	services.AuthService
	tokenErr error
}

func (f *fakeAuthService) Authenticate(_ context.Context, username, _ string) (*models.User, error) {
	return &models.User{ID: 1, Username: username}, nil
}

func (f *fakeAuthService) GenerateToken(userID uint) (string, *services.Claims, error) {
	if f.tokenErr != nil {
		return "", nil, f.tokenErr
	}
	return "token", &services.Claims{UserID: userID}, nil
}

func TestLoginWithoutTokenSetsNoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testutil.NewConfig()
	tests := []struct {
		name       string
		tokenErr   error
		wantStatus int
		wantCookie bool
	}{
		{"token issued", nil, http.StatusOK, true},
		{"token failure", errors.New("signing failed"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewAuthController(&fakeAuthService{tokenErr: tt.tokenErr}, nil, session.NewStore(cfg.Session), nil)
			r := gin.New()
			r.POST("/login", controller.Login)

			form := url.Values{"username": {"john"}, "password": {"password"}}
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("POST /login status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Set-Cookie") != ""; got != tt.wantCookie {
				t.Errorf("Set-Cookie present = %v, want %v", got, tt.wantCookie)
			}
		})
	}
}
