package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/config"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/events"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

type fakeDirectory struct {
	createFn func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error)
	listFn   func(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error)
	listHits int
}

func (f *fakeDirectory) CreateStaff(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
	return f.createFn(ctx, input)
}

func (f *fakeDirectory) List(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error) {
	f.listHits++
	return f.listFn(ctx, params)
}

// memoryCache is an in-process stand-in for the Redis store.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(ctx context.Context, namespace, key string, out any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[namespace+":"+key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (m *memoryCache) SetJSON(ctx context.Context, namespace, key string, val any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	m.entries[namespace+":"+key] = raw
}

func (m *memoryCache) Invalidate(ctx context.Context, namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, namespace)
	for key := range m.entries {
		delete(m.entries, key)
	}
}

type fakeAudit struct {
	records []*domain.SubmissionAudit
}

func (f *fakeAudit) Record(ctx context.Context, record *domain.SubmissionAudit) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAudit) ListRecent(ctx context.Context, limit int) ([]domain.SubmissionAudit, error) {
	out := make([]domain.SubmissionAudit, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func zeroDelayConfig() config.Config {
	return config.Config{Reconcile: config.ReconcileConfig{}}
}

func TestStaffServiceCreateSuccessSignalsRefreshAndAudits(t *testing.T) {
	directory := &fakeDirectory{
		createFn: func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			assert.Equal(t, domain.RoleStationStaff, input.Role)
			return &domain.CreatedStaff{User: staffUser(input.Email), TemporaryPassword: "tmp-123"}, nil
		},
	}
	store := newMemoryCache()
	audit := &fakeAudit{}
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventStaffCreated, func(ctx context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewStaffService(zeroDelayConfig(), StaffDependencies{
		Directory:  directory,
		Audit:      audit,
		Dispatcher: dispatcher,
		Cache:      store,
	}, zap.NewNop())

	result, err := svc.Create(context.Background(), "admin-1", platform.CreateStaffInput{
		FullName: "Nguyen Van A",
		Email:    "a@vinfast.vn",
		Phone:    "0912345678",
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseSucceeded, result.Phase)
	assert.Equal(t, []string{"users"}, store.invalidated)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "admin-1", audit.records[0].ActorID)
	assert.Equal(t, string(PhaseSucceeded), audit.records[0].Phase)

	require.Len(t, published, 1)
	assert.Equal(t, "u-1", published[0].SubjectID)
	payload, ok := published[0].Payload.(events.StaffCreatedPayload)
	require.True(t, ok)
	assert.False(t, payload.Reconciled)
}

func TestStaffServiceCreateReconciledPublishesReconciledEvent(t *testing.T) {
	directory := &fakeDirectory{
		createFn: func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.New(apierr.KindTimeout, "TIMEOUT", "timed out", 504)
		},
		listFn: func(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error) {
			assert.Equal(t, "a@vinfast.vn", params.Search)
			assert.Equal(t, domain.RoleStationStaff, params.Role)
			return []domain.User{staffUser("a@vinfast.vn")}, nil
		},
	}
	audit := &fakeAudit{}
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventStaffReconciled, func(ctx context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewStaffService(zeroDelayConfig(), StaffDependencies{
		Directory:  directory,
		Audit:      audit,
		Dispatcher: dispatcher,
		Cache:      newMemoryCache(),
	}, zap.NewNop())

	result, err := svc.Create(context.Background(), "admin-1", platform.CreateStaffInput{
		FullName: "Nguyen Van A",
		Email:    "a@vinfast.vn",
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseReconciledSuccess, result.Phase)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.StaffCreatedPayload)
	require.True(t, ok)
	assert.True(t, payload.Reconciled)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "timeout", audit.records[0].OutcomeKind)
}

func TestStaffServiceCreateDuplicateDoesNotPublish(t *testing.T) {
	directory := &fakeDirectory{
		createFn: func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.NewDuplicateEmail(input.Email)
		},
		listFn: func(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error) {
			return []domain.User{staffUser("a@vinfast.vn")}, nil
		},
	}
	store := newMemoryCache()
	dispatcher := events.NewInMemoryDispatcher()

	var published int
	dispatcher.Subscribe(events.EventStaffCreated, func(ctx context.Context, e events.Event) error {
		published++
		return nil
	})
	dispatcher.Subscribe(events.EventStaffReconciled, func(ctx context.Context, e events.Event) error {
		published++
		return nil
	})

	svc := NewStaffService(zeroDelayConfig(), StaffDependencies{
		Directory:  directory,
		Dispatcher: dispatcher,
		Cache:      store,
	}, zap.NewNop())

	result, err := svc.Create(context.Background(), "admin-1", platform.CreateStaffInput{
		FullName: "Nguyen Van A",
		Email:    "a@vinfast.vn",
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseConfirmedFailure, result.Phase)
	assert.True(t, result.Duplicate)
	assert.Zero(t, published)
	assert.Empty(t, store.invalidated)
}

func TestStaffServiceListUsesCache(t *testing.T) {
	directory := &fakeDirectory{
		listFn: func(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error) {
			return []domain.User{staffUser("a@vinfast.vn")}, nil
		},
	}
	store := newMemoryCache()

	svc := NewStaffService(zeroDelayConfig(), StaffDependencies{
		Directory:  directory,
		Dispatcher: events.NewInMemoryDispatcher(),
		Cache:      store,
	}, zap.NewNop())

	params := platform.ListUsersParams{Role: domain.RoleStationStaff, Limit: 50, Page: 1}

	first, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, directory.listHits)

	// A different query misses the cache.
	_, err = svc.List(context.Background(), platform.ListUsersParams{Search: "b@vinfast.vn"})
	require.NoError(t, err)
	assert.Equal(t, 2, directory.listHits)
}

func TestStaffServiceRecentAuditsWithoutStore(t *testing.T) {
	svc := NewStaffService(zeroDelayConfig(), StaffDependencies{
		Directory:  &fakeDirectory{},
		Dispatcher: events.NewInMemoryDispatcher(),
		Cache:      newMemoryCache(),
	}, zap.NewNop())

	audits, err := svc.RecentAudits(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, audits)
}
