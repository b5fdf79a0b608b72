package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	jwtsvc "favorites/internal/pkg/jwt"
)

func setupTestService(t *testing.T) (*Service, *jwtsvc.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	j := jwtsvc.New("test-secret", time.Hour)
	return NewService(NewUserRepository(db), j), j
}

func TestRegisterAndLogin(t *testing.T) {
	svc, j := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: " alice ", Email: "Alice@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, token, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "chris", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "chris", Password: "other-password"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "dawn", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "dawn", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidatesTrimmedInput(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{name: "blank username", req: RegisterRequest{Username: "   ", Password: "password123"}, field: "Username"},
		{name: "one char after trim", req: RegisterRequest{Username: " a ", Password: "password123"}, field: "Username"},
		{name: "bad email", req: RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"}, field: "Email"},
		{name: "short password", req: RegisterRequest{Username: "alice", Password: "123"}, field: "Password"},
		{name: "password over 72 chars", req: RegisterRequest{Username: "alice", Password: strings.Repeat("x", 80)}, field: "Password"},
		{name: "password over 72 bytes", req: RegisterRequest{Username: "alice", Password: strings.Repeat("ж", 40)}, field: "Password"},
	}

	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tc.name)
		assert.Contains(t, verr.Fields, tc.field, tc.name)
	}

	var count int64
	require.NoError(t, svc.users.db.Model(&User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMe(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	got, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.String())

	_, err = svc.Me(ctx, user.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
