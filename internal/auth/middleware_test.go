package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/labstack/echo/v4"
)

func TestJWTMiddleware(t *testing.T) {
	secret := "test-secret"

	validToken, _ := GenerateToken(clientPrincipal, secret, time.Hour)
	expiredToken, _ := GenerateToken(clientPrincipal, secret, -time.Hour)

	tests := []struct {
		name           string
		token          string
		tokenLocation  string // "header" or "cookie"
		expectedStatus int
	}{
		{name: "valid token in header", token: validToken, tokenLocation: "header", expectedStatus: http.StatusOK},
		{name: "valid token in cookie", token: validToken, tokenLocation: "cookie", expectedStatus: http.StatusOK},
		{name: "missing token", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token in header", token: "invalid.token.here", tokenLocation: "header", expectedStatus: http.StatusUnauthorized},
		{name: "expired token", token: expiredToken, tokenLocation: "header", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			switch tt.tokenLocation {
			case "header":
				req.Header.Set("Authorization", "Bearer "+tt.token)
			case "cookie":
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.token})
			}

			h := JWTMiddleware(secret)(func(c echo.Context) error {
				return c.String(http.StatusOK, "success")
			})
			err := h(c)

			if tt.expectedStatus == http.StatusOK {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				p, err := GetPrincipalFromContext(c)
				if err != nil {
					t.Fatalf("principal not found in context: %v", err)
				}
				if p != clientPrincipal {
					t.Errorf("principal = %+v, want %+v", p, clientPrincipal)
				}
				return
			}

			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("Expected *echo.HTTPError, got %v", err)
			}
			if he.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, he.Code)
			}
		})
	}
}

func TestJWTMiddlewareHeaderPriority(t *testing.T) {
	secret := "test-secret"
	validToken, _ := GenerateToken(adminPrincipal, secret, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "invalid.token"})
	c := e.NewContext(req, httptest.NewRecorder())

	h := JWTMiddleware(secret)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Errorf("Expected no error with valid header token, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		principal  *models.Principal
		wantStatus int
	}{
		{name: "admin allowed", principal: &adminPrincipal, wantStatus: http.StatusOK},
		{name: "client forbidden", principal: &clientPrincipal, wantStatus: http.StatusForbidden},
		{name: "no principal", principal: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
			if tt.principal != nil {
				c.Set(string(PrincipalKey), *tt.principal)
			}

			h := RequireRole(models.RoleAdmin)(func(c echo.Context) error { return nil })
			err := h(c)

			if tt.wantStatus == http.StatusOK {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != tt.wantStatus {
				t.Fatalf("expected HTTP %d, got %v", tt.wantStatus, err)
			}
		})
	}
}

func TestGetPrincipalFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, err := GetPrincipalFromContext(c); err == nil {
		t.Error("expected error for empty context")
	}

	c.Set(string(PrincipalKey), "not-a-principal")
	if _, err := GetPrincipalFromContext(c); err == nil {
		t.Error("expected error for wrong type in context")
	}

	c.Set(string(PrincipalKey), adminPrincipal)
	p, err := GetPrincipalFromContext(c)
	if err != nil || !p.IsAdmin() {
		t.Errorf("GetPrincipalFromContext() = %+v, %v", p, err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer lowercase", header: "bearer token123", want: "token123"},
		{name: "no bearer prefix", header: "token123", want: ""},
		{name: "empty header", header: "", want: ""},
		{name: "extra spaces", header: "Bearer  token123", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			if got := extractTokenFromHeader(c); got != tt.want {
				t.Errorf("extractTokenFromHeader() = %v, want %v", got, tt.want)
			}
		})
	}
}
