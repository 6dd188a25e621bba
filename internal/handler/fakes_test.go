package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTokens = utils.NewTokenIssuer("handler-test-secret", time.Hour)

type memUsers struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]models.Profile
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]*models.User{}, profiles: map[uuid.UUID]models.Profile{}}
}

func (m *memUsers) add(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{ID: uuid.New(), Email: email, PasswordHash: string(hash), Role: role, IsActive: true, CreatedAt: time.Now()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	switch role {
	case models.RoleCustomer:
		m.profiles[u.ID] = &models.CustomerProfile{UserID: u.ID, FirstName: "Grace", LastName: "Hopper"}
	case models.RoleBusiness:
		m.profiles[u.ID] = &models.BusinessProfile{UserID: u.ID, CompanyName: "Green Hulls"}
	}
	return u
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) CreateAccount(_ context.Context, acc *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc.User.ID = uuid.New()
	acc.User.CreatedAt = time.Now()
	u := acc.User
	m.users[u.ID] = &u
	m.profiles[u.ID] = acc.Profile
	return nil
}

func (m *memUsers) GetAccount(_ context.Context, id uuid.UUID) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return models.NewAccount(*u, m.profiles[id])
}

func (m *memUsers) UpdateCustomerProfile(_ context.Context, p *models.CustomerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cp, ok := m.profiles[p.UserID].(*models.CustomerProfile); ok {
		*cp = *p
		return nil
	}
	return sql.ErrNoRows
}

func (m *memUsers) Deactivate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

func (m *memUsers) ListCustomers(context.Context) ([]models.CustomerSummary, error) {
	return []models.CustomerSummary{}, nil
}

func (m *memUsers) IsActive(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return ok && u.IsActive, nil
}

type memProducts struct {
	items map[uuid.UUID]*models.Product
}

func newMemProducts(ps ...*models.Product) *memProducts {
	m := &memProducts{items: map[uuid.UUID]*models.Product{}}
	for _, p := range ps {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) GetAll(context.Context, string, string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range m.items {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	p.ID = uuid.New()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) Update(_ context.Context, p *models.Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) UpdateStatus(_ context.Context, id uuid.UUID, active bool) error {
	if p, ok := m.items[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (m *memProducts) GetDistinctCategories(context.Context) ([]string, error) {
	return []string{"yachts"}, nil
}

type memQuotes struct {
	items map[uuid.UUID]*models.Quote
}

func newMemQuotes() *memQuotes {
	return &memQuotes{items: map[uuid.UUID]*models.Quote{}}
}

func (m *memQuotes) Create(_ context.Context, q *models.Quote) error {
	q.ID = uuid.New()
	q.CreatedAt = time.Now()
	cp := *q
	m.items[q.ID] = &cp
	return nil
}

func (m *memQuotes) GetByID(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	q, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotes) ListByUser(_ context.Context, userID uuid.UUID) ([]models.QuoteView, error) {
	out := []models.QuoteView{}
	for _, q := range m.items {
		if q.UserID == userID {
			out = append(out, models.QuoteView{ID: q.ID, UserID: q.UserID, TotalPrice: q.TotalPrice, Status: q.Status})
		}
	}
	return out, nil
}

func (m *memQuotes) ListAll(context.Context) ([]models.QuoteView, error) {
	return []models.QuoteView{}, nil
}

func (m *memQuotes) UpdateStatus(_ context.Context, id uuid.UUID, status models.QuoteStatus, notes string) (*models.Quote, error) {
	q, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	q.Status = status
	q.Notes = notes
	cp := *q
	return &cp, nil
}

// do performs a request against r. A non-nil user is authenticated with a
// freshly issued bearer token.
func do(t *testing.T, r http.Handler, method, path, body string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		token, err := testTokens.Generate(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
