package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noteboard-backend/internal/domains/account/model"
	"noteboard-backend/pkg/jwt"
)

// fakeAccountRepo is an in-memory AccountRepository for service tests.
type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
}

func (f *fakeAccountRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return model.ErrEmailAlreadyExists
		}
	}
	copied := *a
	f.accounts[a.ID] = &copied
	return nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// seed inserts an account with the given password already hashed.
// MinCost keeps the tests fast.
func (f *fakeAccountRepo) seed(t *testing.T, email, password, displayName string) *model.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	a := &model.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.accounts[a.ID] = a
	return a
}

type fakeProvisioner struct {
	provisioned []uuid.UUID
}

func (f *fakeProvisioner) ProvisionWithTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) error {
	f.provisioned = append(f.provisioned, accountID)
	return nil
}

func newTestService(repo *fakeAccountRepo) AccountService {
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewAccountService(repo, &fakeProvisioner{}, nil, manager)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed(t, "taken@example.com", "password123", "First")
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:       "taken@example.com",
		Password:    "password123",
		DisplayName: "Second",
	})
	require.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := repo.seed(t, "alice@example.com", "s3cretpass", "Alice")
	svc := newTestService(repo)

	res, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.True(t, res.ExpiresAt.After(time.Now()))
	require.Equal(t, seeded.ID, res.Account.ID)
	require.Equal(t, "alice@example.com", res.Account.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed(t, "alice@example.com", "s3cretpass", "Alice")
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpass",
	})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginDoesNotRevealUnknownEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestService(repo)

	// Unknown email must produce the same error as a wrong password.
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := repo.seed(t, "bob@example.com", "s3cretpass", "Bob")

	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	svc := NewAccountService(repo, &fakeProvisioner{}, nil, manager)

	refreshToken, err := manager.GenerateRefreshToken(seeded.ID.String())
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.Equal(t, seeded.ID, res.Account.ID)

	// The new access token must carry the account identity.
	claims, err := manager.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, seeded.ID.String(), claims.AccountID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := repo.seed(t, "bob@example.com", "s3cretpass", "Bob")

	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	svc := NewAccountService(repo, &fakeProvisioner{}, nil, manager)

	accessToken, err := manager.GenerateAccessToken(seeded.ID.String(), seeded.Email)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRefreshRejectsDeletedAccount(t *testing.T) {
	repo := newFakeAccountRepo()

	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	svc := NewAccountService(repo, &fakeProvisioner{}, nil, manager)

	// Token is cryptographically valid but the account no longer exists.
	refreshToken, err := manager.GenerateRefreshToken(uuid.NewString())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), refreshToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestGetProfile(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := repo.seed(t, "carol@example.com", "s3cretpass", "Carol")
	svc := newTestService(repo)

	profile, err := svc.GetProfile(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", profile.Email)
	require.Equal(t, "Carol", profile.DisplayName)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, model.ErrAccountNotFound)
}
