package impl

import (
	"context"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	svc := NewUserService(txManager, userRepo, hasher, tokenService, slog.Default())

	return userServiceFixtures{
		service:      svc,
		txManager:    txManager,
		factory:      factory,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func (fx userServiceFixtures) passThroughTx(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.EXPECT().
		Hash("s3cret").
		Return("$2a$10$hash", nil)

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     " Ada@Example.com ",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.EXPECT().
		Hash("s3cret").
		Return("$2a$10$hash", nil)

	fx.passThroughTx(ctx)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(&entity.User{Email: "ada@example.com"}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "ada@example.com",
		Role:         entity.RoleAdmin,
		PasswordHash: "$2a$10$hash",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(user, nil)

	fx.hasher.EXPECT().
		Check("s3cret", "$2a$10$hash").
		Return(true)

	fx.tokenService.EXPECT().
		GenerateTokens(userID, "admin").
		Return("access-token", "refresh-token", nil)

	fx.userRepo.EXPECT().
		UpdateRefreshToken(ctx, userID, "refresh-token").
		Return(nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, "refresh-token", out.User.RefreshToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(&entity.User{PasswordHash: "$2a$10$hash"}, nil)

	fx.hasher.EXPECT().
		Check("wrong", "$2a$10$hash").
		Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh-token").
		Return(&service.TokenClaims{UserID: userID, Role: "user", Kind: service.TokenKindRefresh}, nil)

	fx.userRepo.EXPECT().
		FindByRefreshToken(ctx, "refresh-token").
		Return(&entity.User{ID: userID, Role: entity.RoleUser, RefreshToken: "refresh-token"}, nil)

	fx.tokenService.EXPECT().
		GenerateTokens(userID, "user").
		Return("new-access", "ignored-refresh", nil)

	out, err := fx.service.Refresh(ctx, "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "new-access", out.AccessToken)
	assert.Empty(t, out.RefreshToken)
}

func TestUserService_Refresh_StoredTokenMismatch(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("stale-token").
		Return(&service.TokenClaims{UserID: userID, Role: "user", Kind: service.TokenKindRefresh}, nil)

	// The token was rotated, so no row holds it anymore.
	fx.userRepo.EXPECT().
		FindByRefreshToken(ctx, "stale-token").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Refresh(ctx, "stale-token")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Refresh_TokenHeldByAnotherUser(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh-token").
		Return(&service.TokenClaims{UserID: uuid.New(), Role: "user", Kind: service.TokenKindRefresh}, nil)

	fx.userRepo.EXPECT().
		FindByRefreshToken(ctx, "refresh-token").
		Return(&entity.User{ID: uuid.New(), RefreshToken: "refresh-token"}, nil)

	_, err := fx.service.Refresh(ctx, "refresh-token")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_ClearsToken(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		UpdateRefreshToken(ctx, userID, "").
		Return(nil)

	err := fx.service.Logout(ctx, userID)
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Email: "old@example.com"}, nil)

	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	user, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		FirstName: "Ada",
		LastName:  "King",
		Email:     "New@Example.com",
		Mobile:    "+44 1234 567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetUser(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
