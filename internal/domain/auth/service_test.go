package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "User@Example.com",
		Password: "pass1234",
		Name:     "  Asha   Rao ",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", view.Email)
	require.Equal(t, "Asha Rao", view.Name)
	require.Equal(t, DefaultAvatarColor, view.AvatarColor)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, view.Email, resp.User.Email)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.Equal(t, view.Email, claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, "Asha Rao", refreshed.User.Name)

	_, err = svc.Refresh(context.Background(), resp.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "pass1234",
		Name:     "One",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "pass12345",
		Name:     "Two",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "email_exists"))
	require.Contains(t, err.Error(), "already registered")
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{name: "bad email", req: RegisterRequest{Email: "nope", Password: "pass1234", Name: "A"}},
		{name: "empty name", req: RegisterRequest{Email: "a@b.co", Password: "pass1234", Name: "  "}},
		{name: "short password", req: RegisterRequest{Email: "a@b.co", Password: "short", Name: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.True(t, apperrors.IsCode(err, "invalid_input"))
		})
	}
}

func TestService_LoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.co", Password: "pass1234", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "wrongpass"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "missing@b.co", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))
}

func TestService_UpdateProfile(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Email: "first@example.com", Password: "pass1234", Name: "First"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "second@example.com", Password: "pass1234", Name: "Second"})
	require.NoError(t, err)

	taken := "second@example.com"
	_, err = svc.UpdateProfile(ctx, first.ID, UpdateProfileRequest{Email: &taken})
	require.True(t, apperrors.IsCode(err, "email_exists"))

	badColor := "neon"
	_, err = svc.UpdateProfile(ctx, first.ID, UpdateProfileRequest{AvatarColor: &badColor})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	name, bio, color, password := "Renamed", "  likes long walks ", "Rose", "newpass99"
	updated, err := svc.UpdateProfile(ctx, first.ID, UpdateProfileRequest{
		Name:        &name,
		Bio:         &bio,
		AvatarColor: &color,
		Password:    &password,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "likes long walks", updated.Bio)
	require.Equal(t, "rose", updated.AvatarColor)
	require.Equal(t, "first@example.com", updated.Email)

	_, err = svc.Login(ctx, LoginRequest{Email: "first@example.com", Password: "newpass99"})
	require.NoError(t, err)

	empty := ""
	cleared, err := svc.UpdateProfile(ctx, first.ID, UpdateProfileRequest{Bio: &empty, Name: &empty})
	require.NoError(t, err)
	require.Empty(t, cleared.Bio)
	require.Equal(t, "Renamed", cleared.Name)

	_, err = svc.UpdateProfile(ctx, 999, UpdateProfileRequest{Name: &name})
	require.True(t, apperrors.IsCode(err, "user_not_found"))
}

func TestService_AdminFlag(t *testing.T) {
	svc := NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		AdminEmails:     []string{" Admin@Example.com "},
	}, newMemoryRepo(), newTestLogger())

	admin, err := svc.Register(context.Background(), RegisterRequest{Email: "admin@example.com", Password: "pass1234", Name: "Admin"})
	require.NoError(t, err)
	require.True(t, admin.Admin)

	user, err := svc.Register(context.Background(), RegisterRequest{Email: "user@example.com", Password: "pass1234", Name: "User"})
	require.NoError(t, err)
	require.False(t, user.Admin)
}

func newTestService(repo Repository) Service {
	return NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, repo, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (m *memoryRepo) Create(_ context.Context, user User) (User, error) {
	m.seq++
	user.ID = m.seq
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) Update(_ context.Context, user User) (User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return User{}, ErrUserNotFound
	}
	m.users[user.ID] = user
	return user, nil
}
