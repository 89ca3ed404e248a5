package user

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/Gabrielsb1/destalhe/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, MigrateDB())
}

func TestCreateAndAuthenticate(t *testing.T) {
	setupTestDB(t)

	created, err := Create(CreateInput{Name: "Alice", Email: "Alice@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, TypeCollaborator, created.Type)
	require.True(t, created.Active)
	// 邮箱入库前归一化为小写
	require.Equal(t, "alice@example.com", created.Email)
	require.NotEqual(t, "secret1", created.PasswordHash)

	u, sessionToken, err := Authenticate("alice@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)
	require.NotEmpty(t, sessionToken)

	userID, err := token.ValidateSession(sessionToken)
	require.NoError(t, err)
	require.Equal(t, created.ID.String(), userID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	setupTestDB(t)

	_, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = Authenticate("alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// 不存在的账户和密码错误返回同一个错误
	_, _, err = Authenticate("nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateInactiveAccountPersistsInactive(t *testing.T) {
	setupTestDB(t)

	inactive := false
	created, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1", Active: &inactive})
	require.NoError(t, err)
	require.False(t, created.Active)

	// 返回值和落库的行必须一致
	stored, err := FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.False(t, stored.Active)
}

func TestAuthenticateRejectsInactiveAccount(t *testing.T) {
	setupTestDB(t)

	inactive := false
	_, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1", Active: &inactive})
	require.NoError(t, err)

	_, _, err = Authenticate("alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateValidation(t *testing.T) {
	setupTestDB(t)

	_, err := Create(CreateInput{Name: "", Email: "a@example.com", Password: "secret1"})
	require.True(t, apperror.IsValidation(err))

	_, err = Create(CreateInput{Name: "Alice", Email: "a@example.com", Password: "short"})
	require.True(t, apperror.IsValidation(err))

	_, err = Create(CreateInput{Name: "Alice", Email: "a@example.com", Password: "secret1", Type: "superuser"})
	require.True(t, apperror.IsValidation(err))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	_, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = Create(CreateInput{Name: "Alicia", Email: "ALICE@example.com", Password: "secret2"})
	require.True(t, apperror.IsValidation(err))
}

func TestUpdateChangesPasswordAndActive(t *testing.T) {
	setupTestDB(t)

	created, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	newPassword := "secret2"
	inactive := false
	_, err = Update(created.ID, UpdateInput{Password: &newPassword, Active: &inactive})
	require.NoError(t, err)

	// 旧密码失效，且账户停用后新密码也无法登录
	_, _, err = Authenticate("alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = Authenticate("alice@example.com", "secret2")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	active := true
	_, err = Update(created.ID, UpdateInput{Active: &active})
	require.NoError(t, err)
	_, _, err = Authenticate("alice@example.com", "secret2")
	require.NoError(t, err)
}

func TestActiveCollaboratorsExcludesAdminsAndInactive(t *testing.T) {
	setupTestDB(t)

	_, err := Create(CreateInput{Name: "Bruna", Email: "bruna@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = Create(CreateInput{Name: "Root", Email: "root@example.com", Password: "secret1", Type: TypeAdmin})
	require.NoError(t, err)
	inactive := false
	_, err = Create(CreateInput{Name: "Zoe", Email: "zoe@example.com", Password: "secret1", Active: &inactive})
	require.NoError(t, err)

	list, err := ActiveCollaborators()
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 按姓名排序
	require.Equal(t, "Alice", list[0].Name)
	require.Equal(t, "Bruna", list[1].Name)
}

func authRequest(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"name": actor.Name})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	setupTestDB(t)
	token.GenerateSecretKey()

	created, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	sessionToken, err := token.SignSession(created.ID.String(), SessionTTL)
	require.NoError(t, err)

	recorder := authRequest(t, "Bearer "+sessionToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Alice")
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	setupTestDB(t)
	token.GenerateSecretKey()

	require.Equal(t, http.StatusUnauthorized, authRequest(t, "").Code)
	require.Equal(t, http.StatusUnauthorized, authRequest(t, "Bearer not-a-token").Code)
	require.Equal(t, http.StatusUnauthorized, authRequest(t, "Basic abc").Code)
}

func TestRequireAuthRejectsDeactivatedAccount(t *testing.T) {
	setupTestDB(t)
	token.GenerateSecretKey()

	created, err := Create(CreateInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	sessionToken, err := token.SignSession(created.ID.String(), SessionTTL)
	require.NoError(t, err)

	// 令牌签发后账户被停用，后续请求必须被拒绝
	inactive := false
	_, err = Update(created.ID, UpdateInput{Active: &inactive})
	require.NoError(t, err)

	recorder := authRequest(t, "Bearer "+sessionToken)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
