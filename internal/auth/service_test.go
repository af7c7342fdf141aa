package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smart-canteen/internal/domain"
)

type fakeRepo struct {
	users    map[string]*domain.User
	sessions map[string]*domain.Session
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[string]*domain.User{},
		sessions: map[string]*domain.Session{},
		nextID:   1,
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeRepo) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, domain.NotFoundf("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) UserByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.NotFoundf("user not found")
}

func (f *fakeRepo) CreateSession(_ context.Context, s *domain.Session) error {
	cp := *s
	f.sessions[s.Token] = &cp
	return nil
}

func (f *fakeRepo) SessionUser(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil, domain.NotFoundf("session not found")
	}
	for _, u := range f.users {
		if u.ID == s.UserID {
			uc, sc := *u, *s
			return &uc, &sc, nil
		}
	}
	return nil, nil, domain.NotFoundf("session not found")
}

func (f *fakeRepo) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func registerDemo(t *testing.T, svc *Service) *LoginResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Demo Customer",
		Email:    "customer@canteen.local",
		Password: "password123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)

	resp := registerDemo(t, svc)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, domain.RoleCustomer, resp.User.Role, "self-registration always yields a customer")
	require.NotEqual(t, "password123", resp.User.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     " ",
		Email:    "not-an-email",
		Password: "short",
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "name")
	require.Contains(t, ve.Fields, "email")
	require.Contains(t, ve.Fields, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)
	registerDemo(t, svc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone Else",
		Email:    "customer@canteen.local",
		Password: "password123",
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "email")
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)
	registerDemo(t, svc)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "customer@canteen.local",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)
	registerDemo(t, svc)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "customer@canteen.local",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@canteen.local",
		Password: "password123",
	})
	// An unknown email answers the same way as a bad password.
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyToken(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)
	resp := registerDemo(t, svc)

	user, err := svc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, user.ID)
	require.Equal(t, domain.RoleCustomer, user.Role)
}

func TestVerifyTokenUnknown(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)

	_, err := svc.VerifyToken(context.Background(), "no-such-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyTokenExpired(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, -time.Hour)
	resp := registerDemo(t, svc)

	_, err := svc.VerifyToken(context.Background(), resp.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := NewService(newFakeRepo(), 24*time.Hour)
	resp := registerDemo(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	_, err := svc.VerifyToken(context.Background(), resp.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPasswordIsHashed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 24*time.Hour)
	registerDemo(t, svc)

	stored := repo.users["customer@canteen.local"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}
