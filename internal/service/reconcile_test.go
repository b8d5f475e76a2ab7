package service

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

type sessionRecorder struct {
	events  []string
	notices []Notice
}

func (r *sessionRecorder) session() *FormSession {
	return NewFormSession(SubmissionHooks{
		Close: func() {
			r.events = append(r.events, "close")
		},
		Notify: func(n Notice) {
			r.events = append(r.events, "notify")
			r.notices = append(r.notices, n)
		},
		Refresh: func() {
			r.events = append(r.events, "refresh")
		},
	})
}

var testInput = platform.CreateStaffInput{
	FullName: "Nguyen Van A",
	Email:    "a@vinfast.vn",
	Phone:    "0912345678",
	Role:     domain.RoleStationStaff,
}

func newFlow(submit SubmitFunc, lookup LookupFunc) *ReconcileFlow {
	// Zero delays keep the tests fast; the delay selection itself is
	// covered separately.
	return NewReconcileFlow(submit, lookup, 0, 0, 0, zap.NewNop())
}

func staffUser(email string) domain.User {
	return domain.User{
		ID:       "u-1",
		FullName: "Nguyen Van A",
		Email:    email,
		Role:     domain.RoleStationStaff,
		Status:   domain.UserStatusActive,
	}
}

func TestRunSuccessFiresEffectsInOrder(t *testing.T) {
	rec := &sessionRecorder{}
	created := &domain.CreatedStaff{User: staffUser("a@vinfast.vn"), TemporaryPassword: "tmp-123"}

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return created, nil
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			t.Fatal("lookup must not run on a clean success")
			return nil, nil
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseSucceeded, result.Phase)
	assert.Equal(t, created, result.Staff)
	assert.Equal(t, "Tạo tài khoản Nguyen Van A thành công", result.Message)
	assert.Equal(t, []string{"close", "notify", "refresh"}, rec.events)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, NoticeSuccess, rec.notices[0].Level)
}

func TestRunDuplicateConfirmedKeepsFormOpen(t *testing.T) {
	rec := &sessionRecorder{}
	var lookups int32

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.NewDuplicateEmail(input.Email)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			atomic.AddInt32(&lookups, 1)
			return []domain.User{staffUser(email)}, nil
		},
	)

	session := rec.session()
	result, err := flow.Run(context.Background(), session, testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseConfirmedFailure, result.Phase)
	assert.True(t, result.Duplicate)
	assert.Equal(t, "Email a@vinfast.vn đã được sử dụng", result.Message)
	assert.Equal(t, apierr.KindDuplicateEmail, result.Outcome)
	assert.EqualValues(t, 1, lookups)

	// The form stays open for correction: no close, no refresh.
	assert.Equal(t, []string{"notify"}, rec.events)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, NoticeError, rec.notices[0].Level)
	assert.True(t, session.Alive())
}

func TestRunDuplicateWithoutMatchIsGenericFailure(t *testing.T) {
	rec := &sessionRecorder{}

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.NewDuplicateEmail(input.Email)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			return []domain.User{staffUser("someone-else@vinfast.vn")}, nil
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseConfirmedFailure, result.Phase)
	assert.False(t, result.Duplicate)
	assert.Nil(t, result.Matched)
	assert.Contains(t, result.Message, "Tạo tài khoản thất bại")
}

func TestRunTimeoutReconciledAsSuccess(t *testing.T) {
	rec := &sessionRecorder{}
	timeoutErr := apierr.New(apierr.KindTimeout, "TIMEOUT", "request to platform backend timed out", http.StatusGatewayTimeout)

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, timeoutErr
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			return []domain.User{staffUser("A@VinFast.vn")}, nil
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseReconciledSuccess, result.Phase)
	require.NotNil(t, result.Matched)
	assert.Equal(t, "Tạo tài khoản Nguyen Van A thành công", result.Message)
	assert.Equal(t, apierr.KindTimeout, result.Outcome)
	assert.Equal(t, []string{"close", "notify", "refresh"}, rec.events)
}

func TestRunTimeoutWithoutMatchIsConfirmedFailure(t *testing.T) {
	rec := &sessionRecorder{}
	timeoutErr := apierr.New(apierr.KindTimeout, "TIMEOUT", "request to platform backend timed out", http.StatusGatewayTimeout)

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, timeoutErr
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			return nil, nil
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseConfirmedFailure, result.Phase)
	assert.False(t, result.Duplicate)
	assert.Equal(t, []string{"notify"}, rec.events)
}

func TestRunVerificationFailureWarnsWithoutDeciding(t *testing.T) {
	rec := &sessionRecorder{}

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.New(apierr.KindNetwork, "NETWORK_ERROR", "could not reach platform backend", http.StatusBadGateway)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			return nil, errors.New("list unavailable")
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseVerificationFailed, result.Phase)
	assert.Equal(t, "Không thể xác minh kết quả tạo tài khoản, vui lòng kiểm tra lại danh sách nhân viên", result.Message)
	assert.Equal(t, []string{"notify"}, rec.events)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, NoticeWarning, rec.notices[0].Level)
}

func TestRunUnknownFailureWithDuplicateMessageTreatedAsDuplicate(t *testing.T) {
	rec := &sessionRecorder{}

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.New(apierr.KindUnknown, "", "Email đã tồn tại", http.StatusInternalServerError)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			return []domain.User{staffUser(email)}, nil
		},
	)

	result, err := flow.Run(context.Background(), rec.session(), testInput)
	require.NoError(t, err)

	assert.Equal(t, PhaseConfirmedFailure, result.Phase)
	assert.True(t, result.Duplicate)
}

func TestRunAbandonedWhenFormClosedBeforeVerification(t *testing.T) {
	rec := &sessionRecorder{}
	var lookups int32

	session := rec.session()
	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			session.Close()
			return nil, apierr.NewDuplicateEmail(input.Email)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			atomic.AddInt32(&lookups, 1)
			return nil, nil
		},
	)

	result, err := flow.Run(context.Background(), session, testInput)
	require.ErrorIs(t, err, ErrSubmissionAbandoned)
	assert.Nil(t, result)
	assert.EqualValues(t, 0, lookups)

	// Only the close callback ran; nothing was notified or refreshed.
	assert.Equal(t, []string{"close"}, rec.events)
}

func TestRunAbandonedWhenContextCancelledDuringDelay(t *testing.T) {
	rec := &sessionRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flow := newFlow(
		func(ctx context.Context, input platform.CreateStaffInput) (*domain.CreatedStaff, error) {
			return nil, apierr.NewDuplicateEmail(input.Email)
		},
		func(ctx context.Context, email string) ([]domain.User, error) {
			t.Fatal("lookup must not run after cancellation")
			return nil, nil
		},
	)

	result, err := flow.Run(ctx, rec.session(), testInput)
	require.ErrorIs(t, err, ErrSubmissionAbandoned)
	assert.Nil(t, result)
}

func TestFormSessionCloseIsIdempotent(t *testing.T) {
	rec := &sessionRecorder{}
	session := rec.session()

	session.Close()
	session.Close()
	session.Close()

	assert.Equal(t, []string{"close"}, rec.events)
	assert.False(t, session.Alive())
}

func TestFormSessionSuccessThenCloseDoesNotRefire(t *testing.T) {
	rec := &sessionRecorder{}
	session := rec.session()

	session.completeSuccess(Notice{Level: NoticeSuccess, Message: "ok"})
	session.Close()
	session.completeSuccess(Notice{Level: NoticeSuccess, Message: "again"})

	assert.Equal(t, []string{"close", "notify", "refresh"}, rec.events)
	require.Len(t, rec.notices, 1)
	assert.Equal(t, "ok", rec.notices[0].Message)
}

func TestMatchByEmailIgnoresCaseAndWhitespace(t *testing.T) {
	users := []domain.User{
		staffUser("other@vinfast.vn"),
		staffUser("  A@VinFast.VN  "),
	}

	matched := matchByEmail(users, "a@vinfast.vn")
	require.NotNil(t, matched)
	assert.Equal(t, "  A@VinFast.VN  ", matched.Email)

	assert.Nil(t, matchByEmail(users, "missing@vinfast.vn"))
}
