package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GTDGit/ecolux_api/internal/media"
	"github.com/GTDGit/ecolux_api/internal/models"
)

type fakeUsers struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]models.Profile
	err      error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]*models.User{}, profiles: map[uuid.UUID]models.Profile{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) CreateAccount(_ context.Context, acc *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == acc.User.Email {
			return &pq.Error{Code: "23505"}
		}
	}
	if acc.User.ID == uuid.Nil {
		acc.User.ID = uuid.New()
	}
	acc.User.CreatedAt = time.Now()
	u := acc.User
	f.users[u.ID] = &u
	f.profiles[u.ID] = acc.Profile
	return nil
}

func (f *fakeUsers) GetAccount(_ context.Context, id uuid.UUID) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return models.NewAccount(*u, f.profiles[id])
}

func (f *fakeUsers) UpdateCustomerProfile(_ context.Context, p *models.CustomerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, prof := range f.profiles {
		if cp, ok := prof.(*models.CustomerProfile); ok && id == p.UserID {
			*cp = *p
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeUsers) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = false
	return nil
}

func (f *fakeUsers) ListCustomers(context.Context) ([]models.CustomerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CustomerSummary{}
	for id, u := range f.users {
		cp, ok := f.profiles[id].(*models.CustomerProfile)
		if !ok || !u.IsActive {
			continue
		}
		out = append(out, models.CustomerSummary{ID: id, Email: u.Email, Name: cp.FullName()})
	}
	return out, nil
}

// addCustomer seeds an active customer and returns its id.
func (f *fakeUsers) addCustomer(email string) uuid.UUID {
	id := uuid.New()
	f.users[id] = &models.User{ID: id, Email: email, Role: models.RoleCustomer, IsActive: true}
	f.profiles[id] = &models.CustomerProfile{ID: uuid.New(), UserID: id, FirstName: "Ada", LastName: "Lovelace"}
	return id
}

type fakeProducts struct {
	items     map[uuid.UUID]*models.Product
	updateErr error
}

func newFakeProducts(ps ...*models.Product) *fakeProducts {
	f := &fakeProducts{items: map[uuid.UUID]*models.Product{}}
	for _, p := range ps {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) GetAll(_ context.Context, productType, category string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.items {
		if !p.IsActive || (productType != "" && string(p.Type) != productType) || (category != "" && p.Category != category) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.items[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProducts) UpdateStatus(_ context.Context, id uuid.UUID, active bool) error {
	p, ok := f.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.IsActive = active
	return nil
}

func (f *fakeProducts) GetDistinctCategories(context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.items {
		if p.IsActive && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeQuotes struct {
	items map[uuid.UUID]*models.Quote
	views []models.QuoteView
	err   error
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{items: map[uuid.UUID]*models.Quote{}}
}

func (f *fakeQuotes) Create(_ context.Context, q *models.Quote) error {
	if f.err != nil {
		return f.err
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	cp := *q
	f.items[q.ID] = &cp
	return nil
}

func (f *fakeQuotes) GetByID(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	q, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuotes) ListByUser(_ context.Context, userID uuid.UUID) ([]models.QuoteView, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.QuoteView{}
	for _, v := range f.views {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeQuotes) ListAll(context.Context) ([]models.QuoteView, error) {
	return f.views, f.err
}

func (f *fakeQuotes) UpdateStatus(_ context.Context, id uuid.UUID, status models.QuoteStatus, notes string) (*models.Quote, error) {
	q, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	q.Status = status
	q.Notes = notes
	q.UpdatedAt = time.Now()
	cp := *q
	return &cp, nil
}

type fakeNotifier struct {
	created []*models.Quote
	changed []*models.Quote
}

func (n *fakeNotifier) NotifyQuoteCreated(q *models.Quote)       { n.created = append(n.created, q) }
func (n *fakeNotifier) NotifyQuoteStatusChanged(q *models.Quote) { n.changed = append(n.changed, q) }

type fakeAnalytics struct {
	revenue, co2, solar float64
	counts              models.QuoteCounts
	categories          []models.CategorySales
	trends              []models.MonthlyTrend
	top                 []models.ProductPopularity
	snapshots           []models.BusinessAnalytics
	insertErr           error
	queryErr            error

	trendSince time.Time
	topLimit   int
	histLimit  int
}

func (f *fakeAnalytics) ApprovedTotals(context.Context) (float64, float64, error) {
	return f.revenue, f.co2, f.queryErr
}

func (f *fakeAnalytics) QuoteCounts(context.Context, int) (*models.QuoteCounts, error) {
	c := f.counts
	return &c, nil
}

func (f *fakeAnalytics) TotalSolarPower(context.Context) (float64, error) { return f.solar, nil }

func (f *fakeAnalytics) SalesByCategory(context.Context) ([]models.CategorySales, error) {
	return f.categories, nil
}

func (f *fakeAnalytics) MonthlyTrends(_ context.Context, since time.Time) ([]models.MonthlyTrend, error) {
	f.trendSince = since
	return f.trends, nil
}

func (f *fakeAnalytics) TopProducts(_ context.Context, limit int) ([]models.ProductPopularity, error) {
	f.topLimit = limit
	return f.top, nil
}

func (f *fakeAnalytics) InsertSnapshot(_ context.Context, s *models.BusinessAnalytics) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.snapshots = append(f.snapshots, *s)
	return nil
}

func (f *fakeAnalytics) ListSnapshots(_ context.Context, _ uuid.UUID, limit int) ([]models.BusinessAnalytics, error) {
	f.histLimit = limit
	return f.snapshots, nil
}

type fakeAddresses struct {
	items map[uuid.UUID]*models.Address
}

func newFakeAddresses() *fakeAddresses {
	return &fakeAddresses{items: map[uuid.UUID]*models.Address{}}
}

func (f *fakeAddresses) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Address, error) {
	out := []models.Address{}
	for _, a := range f.items {
		if a.UserID == userID && a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddresses) GetActive(_ context.Context, id, userID uuid.UUID) (*models.Address, error) {
	a, ok := f.items[id]
	if !ok || a.UserID != userID || !a.IsActive {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAddresses) Create(_ context.Context, a *models.Address) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.IsActive = true
	if a.IsDefault {
		for _, other := range f.items {
			if other.UserID == a.UserID {
				other.IsDefault = false
			}
		}
	}
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAddresses) Deactivate(_ context.Context, id, userID uuid.UUID) error {
	a, ok := f.items[id]
	if !ok || a.UserID != userID || !a.IsActive {
		return sql.ErrNoRows
	}
	a.IsActive = false
	return nil
}

type fakeOrders struct {
	items []models.Order
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	for _, existing := range f.items {
		if existing.QuoteID == o.QuoteID {
			return &pq.Error{Code: "23505"}
		}
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	f.items = append(f.items, *o)
	return nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeStorage struct {
	objects []media.Object
	err     error
}

func (f *fakeStorage) Put(_ context.Context, obj media.Object) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.objects = append(f.objects, obj)
	return "https://cdn.example.com/" + obj.Folder + "/" + obj.Filename, nil
}

type fakeModerator struct {
	verdict *media.Verdict
	err     error
}

func (f fakeModerator) Moderate(context.Context, []byte) (*media.Verdict, error) {
	return f.verdict, f.err
}
