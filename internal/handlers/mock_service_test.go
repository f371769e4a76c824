package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"avatar_platform/internal/models"
	"avatar_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	users map[string]*models.User
	byID  map[int64]*models.User
	pass  map[int64]string

	createErr error
	authErr   error
	findErr   error

	lastCreateEmail string
	lastAuthEmail   string
}

func newMockAccounts() *mockAccounts {
	return &mockAccounts{
		users: map[string]*models.User{},
		byID:  map[int64]*models.User{},
		pass:  map[int64]string{},
	}
}

func (m *mockAccounts) add(email, name, password string) *models.User {
	u := &models.User{ID: int64(len(m.byID) + 1), Email: email, Name: name}
	m.users[email] = u
	m.byID[u.ID] = u
	m.pass[u.ID] = password
	return u
}

func (m *mockAccounts) Create(ctx context.Context, email, name, password string) (*models.User, error) {
	m.lastCreateEmail = email
	if m.createErr != nil {
		return nil, m.createErr
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, service.ErrValidation
	}
	if _, ok := m.users[email]; ok {
		return nil, service.ErrDuplicateEmail
	}
	return m.add(email, name, password), nil
}

func (m *mockAccounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	m.lastAuthEmail = email
	if m.authErr != nil {
		return nil, m.authErr
	}
	u, ok := m.users[email]
	if !ok || m.pass[u.ID] != password {
		return nil, service.ErrInvalidCredentials
	}
	return u, nil
}

func (m *mockAccounts) Verify(u *models.User, password string) bool {
	return u != nil && m.pass[u.ID] == password
}

func (m *mockAccounts) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.users[email], m.findErr
}

func (m *mockAccounts) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID[id], nil
}

type mockCatalog struct {
	products []models.Product
	err      error
}

func (m *mockCatalog) Seed(ctx context.Context) (int, error) {
	return 0, m.err
}

func (m *mockCatalog) List(ctx context.Context) ([]models.Product, error) {
	return m.products, m.err
}

func (m *mockCatalog) Get(ctx context.Context, slug string) (models.Product, error) {
	if m.err != nil {
		return models.Product{}, m.err
	}
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, service.ErrNotFound
}

type mockBootstrap struct {
	calls atomic.Int32
}

func (m *mockBootstrap) Ensure(ctx context.Context) {
	m.calls.Add(1)
}

// ---- Shared Test Helpers ----

const testSecret = "test-secret"

func newMockService() (*service.Service, *mockAccounts, *mockCatalog) {
	accounts := newMockAccounts()
	catalog := &mockCatalog{products: service.DemoProducts()}
	s := &service.Service{
		Accounts: accounts,
		Catalog:  catalog,
		Sessions: service.NewSessionService(testSecret, 0),
	}
	return s, accounts, catalog
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, Config{}, nil, nil)
	return h.InitRoutes()
}

// sessionCookie returns a valid session cookie for userID.
func sessionCookie(s *service.Service, userID int64) *http.Cookie {
	token, _, err := s.Sessions.Issue(userID)
	if err != nil {
		panic(err)
	}
	return &http.Cookie{Name: defaultSessionCookie, Value: token}
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
