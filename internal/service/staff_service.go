package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/config"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/events"
	"github.com/spec-kit/ev-admin-gateway/internal/observability"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/repository"
)

// StaffDirectory is the slice of the users client the staff service needs.
type StaffDirectory interface {
	CreateStaff(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error)
	List(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error)
}

// Cache is the response cache contract services depend on.
type Cache interface {
	GetJSON(ctx context.Context, namespace, key string, out any) bool
	SetJSON(ctx context.Context, namespace, key string, val any, ttl time.Duration)
	Invalidate(ctx context.Context, namespace string)
}

const (
	cacheNamespaceUsers = "users"
	staffListCacheTTL   = 30 * time.Second
	verifyListLimit     = 10
)

// StaffService owns staff account administration: listing and the
// reconciling creation flow.
type StaffService struct {
	directory  StaffDirectory
	audit      repository.AuditRepository
	dispatcher events.Dispatcher
	cache      Cache
	reconcile  config.ReconcileConfig
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// StaffDependencies bundles what the staff service needs.
type StaffDependencies struct {
	Directory  StaffDirectory
	Audit      repository.AuditRepository
	Dispatcher events.Dispatcher
	Cache      Cache
	Metrics    *observability.Metrics
}

// NewStaffService constructs the service. Audit may be nil when the audit
// store is not configured.
func NewStaffService(cfg config.Config, deps StaffDependencies, logger *zap.Logger) *StaffService {
	return &StaffService{
		directory:  deps.Directory,
		audit:      deps.Audit,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		reconcile:  cfg.Reconcile,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// Create submits a new staff account through the reconciliation flow and
// records the attempt in the audit log.
func (s *StaffService) Create(ctx context.Context, actorID string, input platform.CreateStaffInput) (*SubmissionResult, error) {
	input.Role = domain.RoleStationStaff

	session := NewFormSession(SubmissionHooks{
		Close: func() {
			s.logger.Debug("staff form closed", zap.String("email", input.Email))
		},
		Notify: func(n Notice) {
			s.logger.Info("staff submission notice",
				zap.String("level", string(n.Level)),
				zap.String("message", n.Message),
			)
		},
		Refresh: func() {
			s.cache.Invalidate(ctx, cacheNamespaceUsers)
		},
	})

	flow := NewReconcileFlow(
		s.directory.CreateStaff,
		s.verificationLookup,
		s.reconcile.DuplicateDelay(),
		s.reconcile.AmbiguousDelay(),
		s.reconcile.TransportDelay(),
		s.logger,
	)

	result, err := flow.Run(ctx, session, input)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordReconcileOutcome(string(result.Phase))
	}
	s.recordAudit(ctx, actorID, input, result)

	switch result.Phase {
	case PhaseSucceeded, PhaseReconciledSuccess:
		s.publishCreated(ctx, actorID, input, result)
	}
	return result, nil
}

// List fetches staff accounts, serving repeat queries from the cache until
// the next refresh-signal invalidates the namespace.
func (s *StaffService) List(ctx context.Context, params platform.ListUsersParams) ([]domain.User, error) {
	key := listCacheKey(params)

	var cached []domain.User
	if s.cache != nil && s.cache.GetJSON(ctx, cacheNamespaceUsers, key, &cached) {
		return cached, nil
	}

	users, err := s.directory.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheNamespaceUsers, key, users, staffListCacheTTL)
	}
	return users, nil
}

// verificationLookup is the flow's read side: the same list endpoint the
// console uses, filtered to staff accounts by the submitted email.
func (s *StaffService) verificationLookup(ctx context.Context, email string) ([]domain.User, error) {
	return s.directory.List(ctx, platform.ListUsersParams{
		Search: email,
		Role:   domain.RoleStationStaff,
		Limit:  verifyListLimit,
	})
}

func (s *StaffService) publishCreated(ctx context.Context, actorID string, input platform.CreateStaffInput, result *SubmissionResult) {
	subjectID := ""
	if result.Staff != nil {
		subjectID = result.Staff.User.ID
	} else if result.Matched != nil {
		subjectID = result.Matched.ID
	}
	eventType := events.EventStaffCreated
	if result.Phase == PhaseReconciledSuccess {
		eventType = events.EventStaffReconciled
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.StaffCreatedPayload{
			Email:      input.Email,
			FullName:   input.FullName,
			Role:       input.Role,
			Reconciled: result.Phase == PhaseReconciledSuccess,
		},
	})
}

func (s *StaffService) recordAudit(ctx context.Context, actorID string, input platform.CreateStaffInput, result *SubmissionResult) {
	if s.audit == nil {
		return
	}
	record := &domain.SubmissionAudit{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Email:       input.Email,
		FullName:    input.FullName,
		Phase:       string(result.Phase),
		OutcomeKind: result.Outcome.String(),
		Message:     result.Message,
	}
	if err := s.audit.Record(ctx, record); err != nil {
		s.logger.Warn("failed to record submission audit", zap.Error(err))
	}
}

// RecentAudits returns the latest submission audit records.
func (s *StaffService) RecentAudits(ctx context.Context, limit int) ([]domain.SubmissionAudit, error) {
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.ListRecent(ctx, limit)
}

func listCacheKey(params platform.ListUsersParams) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d|%d", params.Search, params.Role, params.Limit, params.Page)))
	return "list:" + hex.EncodeToString(sum[:8])
}
