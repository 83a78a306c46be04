package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
)

// accountStore is a minimal service.CredentialStore for middleware tests;
// only GetByID is exercised by Authenticate.
type accountStore struct {
	accounts map[int]model.Account
}

func (s *accountStore) Create(context.Context, *model.Account) error { return nil }

func (s *accountStore) GetByID(_ context.Context, id int) (*model.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return &a, nil
	}
	return nil, repository.ErrNotFound
}

func (s *accountStore) GetByEmail(context.Context, string) (*model.Account, error) {
	return nil, repository.ErrNotFound
}

func (s *accountStore) ListByRole(context.Context, model.Role) ([]model.Account, error) {
	return nil, nil
}

func (s *accountStore) UpdateByID(context.Context, int, model.AccountUpdate) (*model.Account, error) {
	return nil, repository.ErrNotFound
}

func (s *accountStore) DeleteByID(context.Context, int) (*model.Account, error) {
	return nil, repository.ErrNotFound
}

func newTestRouter(tokens *service.TokenService, store service.CredentialStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", Authenticate(tokens, store), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, identity)
	})
	r.GET("/admin-only", Authenticate(tokens, store), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestAuthenticateRejections(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	store := &accountStore{accounts: map[int]model.Account{
		1: {ID: 1, Name: "Root", Email: "root@x.com", Role: model.RoleAdmin},
	}}
	r := newTestRouter(tokens, store)

	valid, err := tokens.Issue(1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	expired, err := service.NewTokenService("secret", -time.Minute).Issue(1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	orphan, err := tokens.Issue(99, model.RoleStudent) // No such account.
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", response.MsgNoToken},
		{"empty bearer", "Bearer ", response.MsgInvalidTokenFormat},
		{"garbage token", "Bearer not-a-token", response.MsgInvalidToken},
		{"wrong secret", "Bearer " + mustIssue(t, "other-secret"), response.MsgInvalidToken},
		{"expired token", "Bearer " + expired, response.MsgTokenExpired},
		{"deleted account", "Bearer " + orphan, response.MsgUserNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(r, "/probe", tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.Success || env.Message != tc.message {
				t.Fatalf("unexpected envelope: %+v", env)
			}
		})
	}

	// Sanity: the valid token passes.
	if w := doGet(r, "/probe", "Bearer "+valid); w.Code != http.StatusOK {
		t.Fatalf("valid token rejected: %d %s", w.Code, w.Body.String())
	}
}

func mustIssue(t *testing.T, secret string) string {
	t.Helper()
	token, err := service.NewTokenService(secret, time.Hour).Issue(1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	return token
}

func TestAuthenticateAcceptsBareToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	store := &accountStore{accounts: map[int]model.Account{
		7: {ID: 7, Name: "Ana", Email: "ana@x.com", Role: model.RoleStudent},
	}}
	r := newTestRouter(tokens, store)

	token, err := tokens.Issue(7, model.RoleStudent)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	w := doGet(r, "/probe", token) // No "Bearer " prefix.
	if w.Code != http.StatusOK {
		t.Fatalf("bare token rejected: %d", w.Code)
	}

	var identity model.Identity
	if err := json.Unmarshal(w.Body.Bytes(), &identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.AccountID != 7 || identity.Role != model.RoleStudent || identity.Email != "ana@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestRequireRoles(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	store := &accountStore{accounts: map[int]model.Account{
		1: {ID: 1, Name: "Root", Email: "root@x.com", Role: model.RoleAdmin},
		2: {ID: 2, Name: "Ana", Email: "ana@x.com", Role: model.RoleStudent},
	}}
	r := newTestRouter(tokens, store)

	adminToken, err := tokens.Issue(1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	studentToken, err := tokens.Issue(2, model.RoleStudent)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if w := doGet(r, "/admin-only", "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Fatalf("admin rejected from admin route: %d", w.Code)
	}

	w := doGet(r, "/admin-only", "Bearer "+studentToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student on admin route, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success {
		t.Fatalf("forbidden response must not be success")
	}
}
