package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	meta := domain.ClientMeta{IP: "10.0.0.1"}

	t.Run("Should reject a duplicate email with 409", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: "u1", Email: "taken@example.com"}, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email:    "Taken@Example.com",
			Password: "password123",
			FullName: "Ada Lovelace",
			Role:     domain.RoleWorker,
		}, meta)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a unique violation on insert to 409", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "race@example.com").Return(nil, domain.ErrNotFound)
		users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email: "race@example.com", Password: "password123", FullName: "Grace Hopper", Role: domain.RoleHirer,
		}, meta)

		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
	})

	t.Run("Should create the worker profile in the same call as the user", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokens)
		expires := time.Now().Add(time.Hour)

		users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
		users.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*domain.User"),
			mock.MatchedBy(func(p *domain.WorkerProfile) bool {
				return p.UserID != "" && p.AvailabilityStatus == domain.AvailabilityAvailable
			})).Return(nil)
		tokens.On("Issue", mock.Anything, "new@example.com", domain.RoleWorker).Return("signed", expires, nil)

		uc := usecase.NewAuthUsecase(users, nil, tokens, nil, nil, nil)
		resp, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email: "new@example.com", Password: "password123", FullName: "Alan Turing", Role: domain.RoleWorker,
		}, meta)

		require.NoError(t, err)
		assert.Equal(t, "signed", resp.Token)
		assert.Equal(t, domain.RoleWorker, resp.User.Role)
		assert.NotEqual(t, "password123", resp.User.PasswordHash)
		users.AssertExpectations(t)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail with 500 and issue no token when the profile insert fails", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokens)

		users.On("GetByEmail", mock.Anything, "broken@example.com").Return(nil, domain.ErrNotFound)
		users.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		uc := usecase.NewAuthUsecase(users, nil, tokens, nil, nil, nil)
		_, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email: "broken@example.com", Password: "password123", FullName: "Barbara Liskov", Role: domain.RoleWorker,
		}, meta)

		assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should not create a profile for hirers", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokens)

		users.On("GetByEmail", mock.Anything, "hirer@example.com").Return(nil, domain.ErrNotFound)
		users.On("Create", mock.Anything, mock.Anything).Return(nil)
		tokens.On("Issue", mock.Anything, mock.Anything, domain.RoleHirer).Return("signed", time.Now(), nil)

		uc := usecase.NewAuthUsecase(users, nil, tokens, nil, nil, nil)
		_, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email: "hirer@example.com", Password: "password123", FullName: "Hedy Lamarr", Role: domain.RoleHirer,
		}, meta)

		require.NoError(t, err)
		users.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse self-registration as admin", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Register(context.Background(), domain.RegisterRequest{
			Email: "root@example.com", Password: "password123", FullName: "Root", Role: domain.RoleAdmin,
		}, meta)

		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	})
}

func TestLogin(t *testing.T) {
	meta := domain.ClientMeta{IP: "10.0.0.2", UserAgent: "test"}
	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	user := &domain.User{ID: "u1", Email: "user@example.com", PasswordHash: hash, Role: domain.RoleWorker}

	t.Run("Should return 401 and record the failure on a wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		guard := new(MockGuard)
		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
		guard.On("IsBlocked", mock.Anything, "user@example.com", "10.0.0.2").Return(false, nil)
		guard.On("RecordFailure", mock.Anything, "user@example.com", "10.0.0.2").Return(false, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), guard, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "user@example.com", Password: "nope"}, meta)

		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
		guard.AssertCalled(t, "RecordFailure", mock.Anything, "user@example.com", "10.0.0.2")
	})

	t.Run("Should return 429 when the failure triggers a block", func(t *testing.T) {
		users := new(MockUserRepo)
		guard := new(MockGuard)
		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
		guard.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		guard.On("RecordFailure", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), guard, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "user@example.com", Password: "nope"}, meta)

		assert.Equal(t, http.StatusTooManyRequests, apperror.StatusOf(err))
	})

	t.Run("Should reject blocked clients before checking credentials", func(t *testing.T) {
		users := new(MockUserRepo)
		guard := new(MockGuard)
		guard.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), guard, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "user@example.com", Password: "correct-password"}, meta)

		assert.Equal(t, http.StatusTooManyRequests, apperror.StatusOf(err))
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should use the same message for unknown emails", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "x"}, meta)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Should refuse disabled accounts", func(t *testing.T) {
		disabled := *user
		disabled.IsDisabled = true
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "user@example.com").Return(&disabled, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "user@example.com", Password: "correct-password"}, meta)

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
	})

	t.Run("Should require a TOTP code for admins with 2FA", func(t *testing.T) {
		secret := "JBSWY3DPEHPK3PXP"
		admin := &domain.User{ID: "a1", Email: "admin@example.com", PasswordHash: hash, Role: domain.RoleAdmin, TOTPEnabled: true, TOTPSecret: &secret}
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

		uc := usecase.NewAuthUsecase(users, nil, new(MockTokens), nil, nil, nil)
		_, err := uc.Login(context.Background(), domain.LoginRequest{Email: "admin@example.com", Password: "correct-password"}, meta)
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))

		_, err = uc.Login(context.Background(), domain.LoginRequest{Email: "admin@example.com", Password: "correct-password", TOTPCode: "000000"}, meta)
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
	})

	t.Run("Should clear failures and issue a token on success", func(t *testing.T) {
		users := new(MockUserRepo)
		guard := new(MockGuard)
		tokens := new(MockTokens)
		users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
		guard.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		guard.On("Clear", mock.Anything, "user@example.com", "10.0.0.2").Return(nil)
		tokens.On("Issue", "u1", "user@example.com", domain.RoleWorker).Return("signed", time.Now().Add(time.Hour), nil)

		uc := usecase.NewAuthUsecase(users, nil, tokens, guard, nil, nil)
		resp, err := uc.Login(context.Background(), domain.LoginRequest{Email: " USER@example.com ", Password: "correct-password"}, meta)

		require.NoError(t, err)
		assert.Equal(t, "signed", resp.Token)
		guard.AssertExpectations(t)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("Should reject tokens for disabled users", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokens)
		claims := &auth.Claims{}
		claims.Subject = "u1"
		tokens.On("Parse", "tok").Return(claims, nil)
		users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", IsDisabled: true}, nil)

		uc := usecase.NewAuthUsecase(users, nil, tokens, nil, nil, nil)
		_, err := uc.Authenticate(context.Background(), "tok")

		assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
	})

	t.Run("Should reject unparseable tokens", func(t *testing.T) {
		tokens := new(MockTokens)
		tokens.On("Parse", "garbage").Return(nil, assert.AnError)

		uc := usecase.NewAuthUsecase(new(MockUserRepo), nil, tokens, nil, nil, nil)
		_, err := uc.Authenticate(context.Background(), "garbage")

		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
	})
}

func TestUpdateMe(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"

	refresher := func(workers *MockWorkerRepo) usecase.ProfileRefresher {
		skills := new(MockSkillRepo)
		portfolio := new(MockPortfolioRepo)
		skills.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		portfolio.On("CountByWorker", mock.Anything, "w1").Return(0, nil)
		return usecase.NewProfileRefresher(usecase.WorkerDeps{Workers: workers, Skills: skills, Portfolio: portfolio})
	}

	t.Run("Should recompute completeness when a worker changes their avatar", func(t *testing.T) {
		users := new(MockUserRepo)
		workers := new(MockWorkerRepo)
		users.On("GetByID", mock.Anything, "w1").Return(&domain.User{ID: "w1", Role: domain.RoleWorker}, nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)
		workers.On("GetProfile", mock.Anything, "w1").
			Return(&domain.WorkerProfile{UserID: "w1", AvatarURL: &avatar}, nil)
		workers.On("SetCompleteness", mock.Anything, "w1", mock.MatchedBy(func(pct int) bool { return pct > 0 })).Return(nil)

		uc := usecase.NewAuthUsecase(users, refresher(workers), new(MockTokens), nil, nil, nil)
		user, err := uc.UpdateMe(context.Background(), "w1", domain.UpdateMeRequest{AvatarURL: &avatar})

		require.NoError(t, err)
		assert.Equal(t, avatar, *user.AvatarURL)
		workers.AssertExpectations(t)
	})

	t.Run("Should keep the update when the completeness refresh fails", func(t *testing.T) {
		users := new(MockUserRepo)
		workers := new(MockWorkerRepo)
		users.On("GetByID", mock.Anything, "w1").Return(&domain.User{ID: "w1", Role: domain.RoleWorker}, nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)
		workers.On("GetProfile", mock.Anything, "w1").Return(nil, domain.ErrNotFound)

		uc := usecase.NewAuthUsecase(users, refresher(workers), new(MockTokens), nil, nil, nil)
		_, err := uc.UpdateMe(context.Background(), "w1", domain.UpdateMeRequest{AvatarURL: &avatar})

		require.NoError(t, err)
	})

	t.Run("Should not touch completeness when the avatar is unchanged", func(t *testing.T) {
		users := new(MockUserRepo)
		workers := new(MockWorkerRepo)
		same := avatar
		users.On("GetByID", mock.Anything, "w1").Return(&domain.User{ID: "w1", Role: domain.RoleWorker, AvatarURL: &same}, nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		name := "Alan Turing"
		uc := usecase.NewAuthUsecase(users, refresher(workers), new(MockTokens), nil, nil, nil)
		_, err := uc.UpdateMe(context.Background(), "w1", domain.UpdateMeRequest{FullName: &name, AvatarURL: &avatar})

		require.NoError(t, err)
		workers.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("Should not refresh completeness for hirers", func(t *testing.T) {
		users := new(MockUserRepo)
		workers := new(MockWorkerRepo)
		users.On("GetByID", mock.Anything, "h1").Return(&domain.User{ID: "h1", Role: domain.RoleHirer}, nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewAuthUsecase(users, refresher(workers), new(MockTokens), nil, nil, nil)
		_, err := uc.UpdateMe(context.Background(), "h1", domain.UpdateMeRequest{AvatarURL: &avatar})

		require.NoError(t, err)
		workers.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})
}
