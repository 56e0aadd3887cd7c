package social

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/cache"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
	"github.com/dropDatabas3/vetboard/internal/jwt"
	"github.com/dropDatabas3/vetboard/internal/store/memory"
)

// ─── provider fake ───

type fakeProvider struct {
	name        string
	profile     *providers.UserProfile
	exchangeErr error
	profileErr  error
	block       bool // Exchange espera hasta que venza el contexto

	exchanges atomic.Int32
	profiles  atomic.Int32
}

func (p *fakeProvider) Name() string                     { return p.name }
func (p *fakeProvider) AuthorizeURL(state string) string { return "https://idp.test/authorize?state=" + state }

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*providers.TokenSet, error) {
	p.exchanges.Add(1)
	if p.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &providers.TokenSet{AccessToken: "at-" + code, TokenType: "bearer"}, nil
}

func (p *fakeProvider) UserInfo(ctx context.Context, accessToken string) (*providers.UserProfile, error) {
	p.profiles.Add(1)
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	cp := *p.profile
	return &cp, nil
}

// ─── store con contadores ───

type countingStore struct {
	*memory.Store
	lookups   atomic.Int32
	lastLogin atomic.Int32
}

func (s *countingStore) Accounts() repository.AccountRepository {
	return &countingAccounts{AccountRepository: s.Store.Accounts(), s: s}
}

func (s *countingStore) SocialLinks() repository.SocialLinkRepository {
	return &countingLinks{SocialLinkRepository: s.Store.SocialLinks(), s: s}
}

type countingAccounts struct {
	repository.AccountRepository
	s *countingStore
}

func (a *countingAccounts) FindByEmail(ctx context.Context, email string) (*repository.Account, error) {
	a.s.lookups.Add(1)
	return a.AccountRepository.FindByEmail(ctx, email)
}

func (a *countingAccounts) AdvanceLastLogin(ctx context.Context, userID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.s.lastLogin.Add(1)
	return a.AccountRepository.AdvanceLastLogin(ctx, userID, at)
}

type countingLinks struct {
	repository.SocialLinkRepository
	s *countingStore
}

func (l *countingLinks) FindAccountBySocialLink(ctx context.Context, provider, providerUserID string) (*repository.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.s.lookups.Add(1)
	return l.SocialLinkRepository.FindAccountBySocialLink(ctx, provider, providerUserID)
}

func (l *countingLinks) ListByUserID(ctx context.Context, userID string) ([]repository.SocialLink, error) {
	l.s.lookups.Add(1)
	return l.SocialLinkRepository.ListByUserID(ctx, userID)
}

// ─── cache caída ───

// downCache responde como un Redis inaccesible.
type downCache struct{ cache.Client }

var errCacheDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (downCache) SetIfAbsent(context.Context, string, string, time.Duration) (bool, error) {
	return false, errCacheDown
}

// ─── armado ───

func testRoutes(t *testing.T) *RouteTable {
	t.Helper()
	rt, err := NewRouteTable(map[string]Route{
		"veterinarian": {Dashboard: "/dashboard/veterinarian", Completion: "/register/veterinarian"},
		"student":      {Dashboard: "/dashboard/veterinary-student", Completion: "/register/veterinary-student"},
		"hospital":     {Dashboard: "/dashboard/hospital", Completion: "/register/hospital"},
	})
	require.NoError(t, err)
	return rt
}

func testIssuer(t *testing.T) *jwt.Issuer {
	t.Helper()
	ks, err := jwt.NewEphemeral("test")
	require.NoError(t, err)
	return jwt.NewIssuer("https://vetboard.test", ks)
}

type harness struct {
	store    *countingStore
	registry *providers.Registry
	issuer   *jwt.Issuer
	svc      Services
}

func newHarness(t *testing.T, ps ...providers.Provider) *harness {
	t.Helper()
	return newHarnessWithGuard(t, cache.NewMemory("test"), ps...)
}

func newHarnessWithGuard(t *testing.T, guard cache.Client, ps ...providers.Provider) *harness {
	t.Helper()
	h := &harness{
		store:    &countingStore{Store: memory.New()},
		registry: providers.NewRegistry(),
		issuer:   testIssuer(t),
	}
	for _, p := range ps {
		h.registry.Add(p)
	}
	h.svc = NewServices(Deps{
		Store:           h.store,
		Providers:       h.registry,
		Issuer:          h.issuer,
		StateGuard:      guard,
		StateTTL:        time.Minute,
		ProviderTimeout: 50 * time.Millisecond,
		Routes:          testRoutes(t),
	})
	return h
}

func (h *harness) state(t *testing.T, provider, cat string) string {
	t.Helper()
	res, err := h.svc.Start.Start(context.Background(), StartRequest{Provider: provider, Category: cat, Popup: true})
	require.NoError(t, err)
	tok := res.RedirectURL[len("https://idp.test/authorize?state="):]
	return tok
}

func requireFlowError(t *testing.T, err error) *FlowError {
	t.Helper()
	require.Error(t, err)
	fe, ok := AsFlowError(err)
	require.True(t, ok, "expected *FlowError, got %T", err)
	return fe
}
