package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// ----- Fake repo -----

type fakeDomainRepo struct {
	// capture args
	createUserID   string
	createHostname string
	createCalled   bool

	listUserID string
	listItems  []domain.Domain
	listErr    error

	findUserID   string
	findHostname string
	findDomain   *domain.Domain
	findErr      error

	countUserID string
	countTotal  int64
	countErr    error

	deleteID     string
	deleteUserID string
	deleteErr    error
}

func (r *fakeDomainRepo) CreateDomain(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	r.createCalled = true
	r.createUserID, r.createHostname = userID, hostname
	return &domain.Domain{ID: "d1", UserID: userID, Hostname: hostname, Status: domain.DomainStatusPending}, nil
}

func (r *fakeDomainRepo) ListDomains(ctx context.Context, db *gorm.DB, userID string) ([]domain.Domain, error) {
	r.listUserID = userID
	return r.listItems, r.listErr
}

func (r *fakeDomainRepo) GetDomain(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Domain, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDomainRepo) FindDomainByHostname(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	r.findUserID, r.findHostname = userID, hostname
	return r.findDomain, r.findErr
}

func (r *fakeDomainRepo) CountDomains(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	r.countUserID = userID
	return r.countTotal, r.countErr
}

func (r *fakeDomainRepo) DeleteDomain(ctx context.Context, db *gorm.DB, id, userID string) error {
	r.deleteID, r.deleteUserID = id, userID
	return r.deleteErr
}

// ----- Tests -----

func TestNormalizeHostname(t *testing.T) {
	cases := map[string]string{
		"https://Example.COM/":      "example.com",
		"http://acme.dev":           "acme.dev",
		"  widgets.io  ":            "widgets.io",
		"https://sub.shop.co/":      "sub.shop.co",
		"plain.org":                 "plain.org",
		"https://":                  "",
		"":                          "",
		"   ":                       "",
	}
	for in, want := range cases {
		if got := NormalizeHostname(in); got != want {
			t.Fatalf("NormalizeHostname(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDomainCreate_EmptyHostname(t *testing.T) {
	r := &fakeDomainRepo{}
	s := NewDomainService(nil, r)

	_, err := s.Create(context.Background(), "u1", domain.PlanPro, "https:// ")
	if !errors.Is(err, ErrEmptyHostname) {
		t.Fatalf("expected ErrEmptyHostname, got %v", err)
	}
	if r.createCalled {
		t.Fatalf("store must not be called on validation failure")
	}
}

func TestDomainCreate_QuotaGateBeforeStore(t *testing.T) {
	r := &fakeDomainRepo{countTotal: 1} // free plan allows exactly 1
	s := NewDomainService(nil, r)

	_, err := s.Create(context.Background(), "u1", domain.PlanFree, "acme.dev")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if r.createCalled {
		t.Fatalf("CreateDomain must not be called when quota exceeded")
	}
	if r.findHostname != "" {
		t.Fatalf("duplicate check should not run after quota failure")
	}
}

func TestDomainCreate_DuplicateHostname(t *testing.T) {
	r := &fakeDomainRepo{
		findDomain: &domain.Domain{ID: "existing", Hostname: "acme.dev"},
	}
	s := NewDomainService(nil, r)

	_, err := s.Create(context.Background(), "u1", domain.PlanPro, "https://ACME.dev/")
	if !errors.Is(err, ErrDuplicateDomain) {
		t.Fatalf("expected ErrDuplicateDomain, got %v", err)
	}
	if r.findHostname != "acme.dev" {
		t.Fatalf("duplicate check should see the normalized hostname, got %q", r.findHostname)
	}
	if r.createCalled {
		t.Fatalf("CreateDomain must not be called for duplicates")
	}
}

func TestDomainCreate_Success_NormalizesAndPersists(t *testing.T) {
	r := &fakeDomainRepo{findErr: gorm.ErrRecordNotFound}
	s := NewDomainService(nil, r)

	d, err := s.Create(context.Background(), "u1", domain.PlanFree, "https://Example.COM/")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Hostname != "example.com" || d.Status != domain.DomainStatusPending {
		t.Fatalf("created domain unexpected: %+v", d)
	}
	if r.createUserID != "u1" || r.createHostname != "example.com" {
		t.Fatalf("store called with wrong args: %q %q", r.createUserID, r.createHostname)
	}
}

func TestDomainCreate_CountError(t *testing.T) {
	boom := errors.New("db down")
	r := &fakeDomainRepo{countErr: boom}
	s := NewDomainService(nil, r)

	_, err := s.Create(context.Background(), "u1", domain.PlanPro, "acme.dev")
	if !errors.Is(err, boom) {
		t.Fatalf("expected count error passthrough, got %v", err)
	}
}

func TestDomainDelete_NotFoundMapped(t *testing.T) {
	r := &fakeDomainRepo{deleteErr: gorm.ErrRecordNotFound}
	s := NewDomainService(nil, r)

	if err := s.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrDomainNotFound) {
		t.Fatalf("expected ErrDomainNotFound, got %v", err)
	}
	if r.deleteID != "missing" || r.deleteUserID != "u1" {
		t.Fatalf("delete args unexpected: %q %q", r.deleteID, r.deleteUserID)
	}
}

func TestDomainList_Delegates(t *testing.T) {
	r := &fakeDomainRepo{listItems: []domain.Domain{{ID: "d1"}, {ID: "d2"}}}
	s := NewDomainService(nil, r)

	items, err := s.List(context.Background(), "u7")
	if err != nil || len(items) != 2 {
		t.Fatalf("List unexpected: %v %v", items, err)
	}
	if r.listUserID != "u7" {
		t.Fatalf("list user unexpected: %q", r.listUserID)
	}
}
