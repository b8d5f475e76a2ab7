package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// SubmissionPhase tracks a staff creation attempt through submission and,
// when the write outcome is ambiguous, read-based verification.
type SubmissionPhase string

const (
	PhaseIdle               SubmissionPhase = "IDLE"
	PhaseSubmitting         SubmissionPhase = "SUBMITTING"
	PhaseVerifying          SubmissionPhase = "VERIFYING"
	PhaseSucceeded          SubmissionPhase = "SUCCEEDED"
	PhaseReconciledSuccess  SubmissionPhase = "RECONCILED_SUCCESS"
	PhaseConfirmedFailure   SubmissionPhase = "CONFIRMED_FAILURE"
	PhaseVerificationFailed SubmissionPhase = "VERIFICATION_FAILED"
)

// ErrSubmissionAbandoned reports that the form was closed while a
// verification delay was pending; no side effects were performed.
var ErrSubmissionAbandoned = errors.New("submission no longer relevant")

// NoticeLevel grades operator notifications.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a non-blocking operator notification.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// SubmissionHooks are the callbacks a caller provides to the flow: close the
// form, surface a notification, and signal a list refresh.
type SubmissionHooks struct {
	Close   func()
	Notify  func(Notice)
	Refresh func()
}

// FormSession models one open creation form. It guards hook invocation so
// that the success effects fire exactly once and in order, repeated closes
// are no-ops, and a verification timer that outlives the form mutates
// nothing.
type FormSession struct {
	mu        sync.Mutex
	hooks     SubmissionHooks
	closed    bool
	completed bool
}

// NewFormSession wraps the caller's hooks.
func NewFormSession(hooks SubmissionHooks) *FormSession {
	return &FormSession{hooks: hooks}
}

// Close performs the close callback once. Safe to call repeatedly; a second
// close never re-fires notifications or refresh signals.
func (s *FormSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.hooks.Close != nil {
		s.hooks.Close()
	}
}

// Alive reports whether the form is still open and the submission outcome
// still matters to anyone.
func (s *FormSession) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && !s.completed
}

// completeSuccess performs the terminal success effects exactly once, in
// the contractual order: close, then notify, then refresh, so the refresh
// observer always sees a closed form.
func (s *FormSession) completeSuccess(n Notice) {
	s.mu.Lock()
	if s.completed || s.closed {
		s.mu.Unlock()
		return
	}
	s.completed = true
	s.closed = true
	s.mu.Unlock()

	if s.hooks.Close != nil {
		s.hooks.Close()
	}
	if s.hooks.Notify != nil {
		s.hooks.Notify(n)
	}
	if s.hooks.Refresh != nil {
		s.hooks.Refresh()
	}
}

// notifyFailure surfaces a failure notice while keeping the form open.
func (s *FormSession) notifyFailure(n Notice) {
	s.mu.Lock()
	if s.completed || s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if s.hooks.Notify != nil {
		s.hooks.Notify(n)
	}
}

// SubmitFunc issues the staff creation write.
type SubmitFunc func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error)

// LookupFunc is the verification read: list accounts matching an email.
type LookupFunc func(ctx context.Context, email string) ([]domain.User, error)

// SubmissionResult is the terminal state of one submission attempt.
type SubmissionResult struct {
	Phase     SubmissionPhase
	Staff     *domain.CreatedStaff
	Matched   *domain.User
	Message   string
	Duplicate bool
	Outcome   apierr.Kind
}

// ReconcileFlow submits a staff account and, on an ambiguous failure,
// disambiguates "created but response lost" from "truly failed" with a
// single verification read. The write itself is never retried.
type ReconcileFlow struct {
	submit SubmitFunc
	lookup LookupFunc

	duplicateDelay time.Duration
	ambiguousDelay time.Duration
	transportDelay time.Duration

	logger *zap.Logger
}

// NewReconcileFlow builds the flow.
func NewReconcileFlow(submit SubmitFunc, lookup LookupFunc, duplicateDelay, ambiguousDelay, transportDelay time.Duration, logger *zap.Logger) *ReconcileFlow {
	return &ReconcileFlow{
		submit:         submit,
		lookup:         lookup,
		duplicateDelay: duplicateDelay,
		ambiguousDelay: ambiguousDelay,
		transportDelay: transportDelay,
		logger:         logger,
	}
}

// Run executes one submission attempt against the given form session.
func (f *ReconcileFlow) Run(ctx context.Context, session *FormSession, input platform.CreateStaffInput) (*SubmissionResult, error) {
	created, err := f.submit(ctx, input)
	if err == nil {
		session.completeSuccess(Notice{
			Level:   NoticeSuccess,
			Message: successMessage(input.FullName),
		})
		return &SubmissionResult{
			Phase:   PhaseSucceeded,
			Staff:   created,
			Message: successMessage(input.FullName),
		}, nil
	}

	apiErr := apierr.ToError(err)
	likelyDuplicate := apiErr.Kind == apierr.KindDuplicateEmail ||
		(apiErr.Kind == apierr.KindUnknown && apierr.IsDuplicateIndicator(apiErr.Code, apiErr.Message))

	f.logger.Warn("staff submission failed, verifying",
		zap.String("email", input.Email),
		zap.String("kind", apiErr.Kind.String()),
		zap.Bool("likely_duplicate", likelyDuplicate),
	)

	// The backend may still be processing after a timeout or dropped
	// connection, so those outcomes get the longer delay.
	delay := f.ambiguousDelay
	switch {
	case likelyDuplicate:
		delay = f.duplicateDelay
	case apiErr.Kind == apierr.KindTimeout, apiErr.Kind == apierr.KindNetwork:
		delay = f.transportDelay
	}
	if err := sleepCtx(ctx, delay); err != nil {
		return nil, ErrSubmissionAbandoned
	}
	if !session.Alive() {
		return nil, ErrSubmissionAbandoned
	}

	// Exactly one verification read per submission attempt.
	users, lookupErr := f.lookup(ctx, input.Email)
	if lookupErr != nil {
		msg := verifyFailedMessage()
		session.notifyFailure(Notice{Level: NoticeWarning, Message: msg})
		return &SubmissionResult{
			Phase:   PhaseVerificationFailed,
			Message: msg,
			Outcome: apiErr.Kind,
		}, nil
	}

	matched := matchByEmail(users, input.Email)

	if likelyDuplicate {
		result := &SubmissionResult{
			Phase:     PhaseConfirmedFailure,
			Matched:   matched,
			Duplicate: matched != nil,
			Outcome:   apiErr.Kind,
		}
		if matched != nil {
			result.Message = duplicateMessage(input.Email)
		} else {
			result.Message = genericFailureMessage(apiErr.Message)
		}
		session.notifyFailure(Notice{Level: NoticeError, Message: result.Message})
		return result, nil
	}

	if matched != nil {
		// The write went through even though the response was lost.
		msg := successMessage(input.FullName)
		session.completeSuccess(Notice{Level: NoticeSuccess, Message: msg})
		return &SubmissionResult{
			Phase:   PhaseReconciledSuccess,
			Matched: matched,
			Message: msg,
			Outcome: apiErr.Kind,
		}, nil
	}

	msg := genericFailureMessage(apiErr.Message)
	session.notifyFailure(Notice{Level: NoticeError, Message: msg})
	return &SubmissionResult{
		Phase:   PhaseConfirmedFailure,
		Message: msg,
		Outcome: apiErr.Kind,
	}, nil
}

func matchByEmail(users []domain.User, email string) *domain.User {
	for i := range users {
		if strings.EqualFold(strings.TrimSpace(users[i].Email), strings.TrimSpace(email)) {
			return &users[i]
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func successMessage(fullName string) string {
	return fmt.Sprintf("Tạo tài khoản %s thành công", fullName)
}

func duplicateMessage(email string) string {
	return fmt.Sprintf("Email %s đã được sử dụng", email)
}

func verifyFailedMessage() string {
	return "Không thể xác minh kết quả tạo tài khoản, vui lòng kiểm tra lại danh sách nhân viên"
}

func genericFailureMessage(detail string) string {
	if detail == "" {
		return "Tạo tài khoản thất bại, vui lòng thử lại"
	}
	return "Tạo tài khoản thất bại: " + detail
}
