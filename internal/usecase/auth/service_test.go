package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/osaa-analytics/unga-readout/errors"
	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
	"github.com/osaa-analytics/unga-readout/pkg/jwt"
)

type memUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (m *memUserRepo) Create(ctx context.Context, u *entities.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, entities.ErrUserNotFound
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (m *memUserRepo) Update(ctx context.Context, u *entities.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) ListByStatus(ctx context.Context, status entities.UserStatus) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range m.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestAuth() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	manager := jwt.NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewService(repo, manager, zap.NewNop()), repo
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Email:    "analyst@osaa.un.org",
		Password: "correct-horse",
		FullName: "Test Analyst",
		Title:    "Analyst",
		Office:   "OSAA",
		Purpose:  "readout research",
	}
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	svc, _ := newTestAuth()

	pub, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.Equal(t, entities.UserStatusPending, pub.Status)

	_, err = svc.Register(context.Background(), registerReq())
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_ALREADY_EXISTS, appErr.Code)
}

func TestLoginRequiresApproval(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Login(ctx, registerReq().Email, "correct-horse")
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_AUTH_ACCOUNT_NOT_ACTIVE, appErr.Code)

	_, err = svc.Approve(ctx, pub.ID, "admin")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, registerReq().Email, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1, pair.User.LoginCount)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	_, err = svc.Approve(ctx, pub.ID, "admin")
	require.NoError(t, err)

	_, err = svc.Login(ctx, registerReq().Email, "wrong")
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_AUTH_INVALID_CREDENTIALS, appErr.Code)

	// Unknown email reports the same error as a wrong password.
	_, err = svc.Login(ctx, "nobody@osaa.un.org", "wrong")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_AUTH_INVALID_CREDENTIALS, appErr.Code)
}

func TestRejectedAccountCannotLogin(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	_, err = svc.Reject(ctx, pub.ID, "admin")
	require.NoError(t, err)

	_, err = svc.Login(ctx, registerReq().Email, "correct-horse")
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_AUTH_ACCOUNT_NOT_ACTIVE, appErr.Code)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	_, err = svc.Approve(ctx, pub.ID, "admin")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, registerReq().Email, "correct-horse")
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.Equal(t, pub.ID, fresh.User.ID)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestListPendingQueue(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = svc.Approve(ctx, pub.ID, "admin")
	require.NoError(t, err)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.Approve(ctx, uuid.New(), "admin")
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_NOT_FOUND, appErr.Code)
}
