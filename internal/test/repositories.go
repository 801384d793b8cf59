package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	key := strings.ToLower(user.Email)
	if _, exists := s.Users[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *user
	created.ID = s.Next
	if created.Role == "" {
		created.Role = model.RoleUser
	}
	created.CreatedAt = time.Now()
	s.Next++
	s.Users[key] = &created
	s.ByID[created.ID] = &created
	out := created
	return &out, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(email)]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PackageRepositoryStub serves a fixed catalog.
type PackageRepositoryStub struct {
	Items []model.Package
	Err   error
}

// DefaultPackages mirrors the seeded catalog.
func DefaultPackages() []model.Package {
	return []model.Package{
		{ID: 1, Name: "Economy", Price: 100000},
		{ID: 2, Name: "Premium", Price: 150000, Discount: 10},
		{ID: 3, Name: "Business", Price: 200000},
		{ID: 4, Name: "First Class", Price: 300000},
	}
}

// NewPackageRepositoryStub returns a stub holding DefaultPackages.
func NewPackageRepositoryStub() *PackageRepositoryStub {
	return &PackageRepositoryStub{Items: DefaultPackages()}
}

func (s *PackageRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Package, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Items {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domainErrors.ErrPackageNotFound
}

func (s *PackageRepositoryStub) List(ctx context.Context) ([]model.Package, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Package(nil), s.Items...), nil
}

// OrderRepositoryStub keeps orders in memory. Transition holds the store lock
// while the callback runs, giving the same serialization as a row lock.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders []*model.Order
	next   int64

	// Writes counts persisted transitions.
	Writes int

	CreateErr        error
	AttachSessionErr error
	Packages         repository.PackageRepository
}

// NewOrderRepositoryStub builds an empty order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{next: 1}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	for _, o := range s.orders {
		if o.Reference == order.Reference {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.next == 0 {
		s.next = 1
	}
	created := *order
	created.ID = s.next
	s.next++
	if created.PaymentStatus == "" {
		created.PaymentStatus = model.PaymentStatusPending
	}
	now := time.Now()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now
	if s.Packages != nil && created.PackageName == "" {
		if p, err := s.Packages.GetByID(ctx, created.PackageID); err == nil {
			created.PackageName = p.Name
		}
	}
	s.orders = append(s.orders, &created)
	out := created
	return &out, nil
}

func (s *OrderRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.find(reference); o != nil {
		out := *o
		return &out, nil
	}
	return nil, domainErrors.ErrOrderNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.filter(func(o *model.Order) bool { return o.UserID == userID }, false), nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.filter(func(*model.Order) bool { return true }, false), nil
}

func (s *OrderRepositoryStub) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	result := s.filter(func(o *model.Order) bool {
		return o.PaymentStatus == model.PaymentStatusPending && o.SnapToken != nil && o.CreatedAt.Before(olderThan)
	}, true)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *OrderRepositoryStub) AttachSession(ctx context.Context, orderID int64, session model.PaymentSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AttachSessionErr != nil {
		return s.AttachSessionErr
	}
	for _, o := range s.orders {
		if o.ID == orderID {
			token, redirect := session.Token, session.RedirectURL
			o.SnapToken = &token
			o.RedirectURL = &redirect
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return domainErrors.ErrOrderNotFound
}

// Transition fails on a done context, as a database transaction would.
func (s *OrderRepositoryStub) Transition(ctx context.Context, reference string, fn repository.TransitionFunc) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.find(reference)
	if o == nil {
		return nil, domainErrors.ErrOrderNotFound
	}
	snapshot := *o
	update, err := fn(&snapshot)
	if err != nil {
		return nil, err
	}
	if !update.Empty() {
		if update.Status != nil {
			o.PaymentStatus = *update.Status
		}
		if update.PaymentMethod != nil {
			o.PaymentMethod = update.PaymentMethod
		}
		if update.TransactionID != nil {
			o.TransactionID = update.TransactionID
		}
		o.UpdatedAt = time.Now()
		s.Writes++
	}
	out := *o
	return &out, nil
}

// Put stores an order as-is, for arranging test state.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == 0 {
		s.next = 1
	}
	if order.ID == 0 {
		order.ID = s.next
		s.next++
	}
	s.orders = append(s.orders, &order)
}

func (s *OrderRepositoryStub) find(reference string) *model.Order {
	for _, o := range s.orders {
		if o.Reference == reference {
			return o
		}
	}
	return nil
}

func (s *OrderRepositoryStub) filter(keep func(*model.Order) bool, oldestFirst bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if keep(o) {
			result = append(result, *o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if oldestFirst {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// InvitationRepositoryStub enforces one invitation per order like the UNIQUE constraint.
type InvitationRepositoryStub struct {
	mu      sync.Mutex
	byOrder map[int64]*model.Invitation
	next    int64
	Err     error
}

// NewInvitationRepositoryStub builds an empty invitation store.
func NewInvitationRepositoryStub() *InvitationRepositoryStub {
	return &InvitationRepositoryStub{byOrder: make(map[int64]*model.Invitation), next: 1}
}

func (s *InvitationRepositoryStub) Create(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.byOrder == nil {
		s.byOrder = make(map[int64]*model.Invitation)
	}
	if _, exists := s.byOrder[inv.OrderID]; exists {
		return nil, domainErrors.ErrConflict
	}
	if s.next == 0 {
		s.next = 1
	}
	created := *inv
	created.ID = s.next
	created.CreatedAt = time.Now()
	s.next++
	s.byOrder[inv.OrderID] = &created
	out := created
	return &out, nil
}

func (s *InvitationRepositoryStub) GetByOrderID(ctx context.Context, orderID int64) (*model.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.byOrder[orderID]; ok {
		out := *inv
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Count returns the number of stored invitations.
func (s *InvitationRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byOrder)
}

var (
	_ repository.UserRepository       = (*UserRepositoryStub)(nil)
	_ repository.PackageRepository    = (*PackageRepositoryStub)(nil)
	_ repository.OrderRepository      = (*OrderRepositoryStub)(nil)
	_ repository.InvitationRepository = (*InvitationRepositoryStub)(nil)
)
