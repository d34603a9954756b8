package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tasktrack/internal/auth"
	"tasktrack/internal/domain"
	"tasktrack/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if _, ok := r.users[user.Username]; ok {
		return 0, repository.ErrUsernameTaken
	}
	user.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.Username] = &clone
	return user.ID, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func newTestUserService(t *testing.T) (UserService, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService(
		"0123456789abcdef0123456789abcdef",
		"tasktrack", "tasktrack-api",
		time.Hour, 0,
	)
	require.NoError(t, err)

	return NewUserService(newFakeUserRepo(), auth.NewPasswordHasher(bcrypt.MinCost), tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, tokens := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Secr3tPass!")
	require.NoError(t, err)
	require.Positive(t, user.ID)
	require.Empty(t, user.PasswordHash)

	result, err := svc.Login(ctx, "alice", "Secr3tPass!")
	require.NoError(t, err)
	require.Equal(t, user.ID, result.UserID)
	require.True(t, result.ExpiresAt.After(time.Now()))

	subject, ok := tokens.Subject(result.Token)
	require.True(t, ok)
	require.Equal(t, user.ID, subject)
}

func TestLogin_GenericFailure(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "correct-pw-123")
	require.NoError(t, err)

	// An unknown username and a wrong password produce the identical error;
	// neither reveals whether the account exists.
	_, ghostErr := svc.Login(ctx, "ghost", "whatever12")
	_, wrongErr := svc.Login(ctx, "admin", "wrong-pw-456")

	require.ErrorIs(t, ghostErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, ghostErr, wrongErr)
}

func TestLogin_BlankInputRejectedBeforeStore(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "password123")
	require.ErrorIs(t, err, ErrMissingUsername)

	_, err = svc.Login(ctx, "alice", "")
	require.ErrorIs(t, err, ErrMissingPassword)

	_, err = svc.Login(ctx, "alice", "   ")
	require.ErrorIs(t, err, ErrMissingPassword)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password123")
	require.ErrorIs(t, err, ErrMissingUsername)

	_, err = svc.Register(ctx, "alice", "")
	require.ErrorIs(t, err, ErrMissingPassword)

	_, err = svc.Register(ctx, "alice", "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "different-pw")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetByID_NeverExposesHash(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Empty(t, got.PasswordHash)
}
