package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/infra/minio"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"
	"vidtube-go/internal/service/mocks"
	"vidtube-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authDeps struct {
	users     *mocks.UserStore
	images    *mocks.ImageStore
	blocklist *mocks.TokenBlocklist
	tokens    *utils.TokenManager
	svc       *service.AuthService
}

func newAuthDeps() *authDeps {
	d := &authDeps{
		users:     new(mocks.UserStore),
		images:    new(mocks.ImageStore),
		blocklist: new(mocks.TokenBlocklist),
		tokens:    newTokenManager(),
	}
	d.svc = service.NewAuthService(d.users, d.images, d.tokens, d.blocklist)
	return d
}

func validRegister() *dto.RegisterRequest {
	return &dto.RegisterRequest{FullName: "Alice A", Email: "Alice@Example.com", Username: " Alice ", Password: "secret"}
}

func avatarFile() *service.FileUpload {
	return &service.FileUpload{Filename: "me.png", ContentType: "image/png", Size: 3, Reader: strings.NewReader("png")}
}

func TestRegister_BlankField(t *testing.T) {
	d := newAuthDeps()
	req := validRegister()
	req.FullName = "   "

	_, err := d.svc.Register(context.Background(), req, avatarFile(), nil)
	requireAppErr(t, err, http.StatusBadRequest, "All fields are required")
	d.users.AssertNotCalled(t, "ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_Conflict(t *testing.T) {
	d := newAuthDeps()
	d.users.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(true, nil)

	_, err := d.svc.Register(context.Background(), validRegister(), avatarFile(), nil)
	requireAppErr(t, err, http.StatusConflict, "User with email or username already exists")
}

func TestRegister_MissingAvatar(t *testing.T) {
	d := newAuthDeps()
	d.users.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)

	_, err := d.svc.Register(context.Background(), validRegister(), nil, nil)
	requireAppErr(t, err, http.StatusBadRequest, "Avatar file is required")
}

func TestRegister_AvatarUploadFails(t *testing.T) {
	d := newAuthDeps()
	d.users.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	d.images.On("Upload", mock.Anything, "avatars", "me.png", mock.Anything, int64(3), "image/png").
		Return(nil, errors.New("minio down"))

	_, err := d.svc.Register(context.Background(), validRegister(), avatarFile(), nil)
	requireAppErr(t, err, http.StatusBadRequest, "Avatar file is required")
	d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	d := newAuthDeps()
	d.users.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	d.images.On("Upload", mock.Anything, "avatars", "me.png", mock.Anything, int64(3), "image/png").
		Return(&minio.UploadedObject{Bucket: "images", Object: "avatars/x.png", URL: "http://cdn/images/avatars/x.png"}, nil)
	d.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com" &&
			u.AvatarObject == "avatars/x.png" && utils.VerifyPassword("secret", u.Password)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 11
	}).Return(nil)
	d.users.On("GetByID", mock.Anything, int64(11)).Return(&model.User{
		ID: 11, Username: "alice", Email: "alice@example.com", FullName: "Alice A", Avatar: "http://cdn/images/avatars/x.png",
	}, nil)

	info, err := d.svc.Register(context.Background(), validRegister(), avatarFile(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.ID)
	assert.Equal(t, "http://cdn/images/avatars/x.png", info.Avatar)
	assert.Empty(t, info.CoverImage)
	d.users.AssertExpectations(t)
}

func TestRegister_CreateFailsRemovesUploads(t *testing.T) {
	d := newAuthDeps()
	d.users.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	d.images.On("Upload", mock.Anything, "avatars", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&minio.UploadedObject{Bucket: "images", Object: "avatars/x.png"}, nil)
	d.images.On("Upload", mock.Anything, "covers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&minio.UploadedObject{Bucket: "images", Object: "covers/y.png"}, nil)
	d.users.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	d.images.On("Remove", mock.Anything, "images", "avatars/x.png").Return(nil)
	d.images.On("Remove", mock.Anything, "images", "covers/y.png").Return(nil)

	cover := &service.FileUpload{Filename: "c.png", ContentType: "image/png", Size: 1, Reader: strings.NewReader("c")}
	_, err := d.svc.Register(context.Background(), validRegister(), avatarFile(), cover)
	requireAppErr(t, err, http.StatusInternalServerError, "Something went wrong while registering the user")
	d.images.AssertExpectations(t)
}

func TestLogin_RequiresIdentifier(t *testing.T) {
	d := newAuthDeps()
	_, err := d.svc.Login(context.Background(), &dto.LoginRequest{Password: "x"})
	requireAppErr(t, err, http.StatusBadRequest, "username or email is required")
}

func TestLogin_UserMissing(t *testing.T) {
	d := newAuthDeps()
	d.users.On("FindByUsernameOrEmail", mock.Anything, "bob", "").Return(nil, gorm.ErrRecordNotFound)

	_, err := d.svc.Login(context.Background(), &dto.LoginRequest{Username: "Bob", Password: "x"})
	requireAppErr(t, err, http.StatusNotFound, "User does not exist")
}

func TestLogin_WrongPassword(t *testing.T) {
	d := newAuthDeps()
	hash, _ := utils.HashPassword("right")
	d.users.On("FindByUsernameOrEmail", mock.Anything, "", "bob@x.io").Return(&model.User{ID: 2, Password: hash}, nil)

	_, err := d.svc.Login(context.Background(), &dto.LoginRequest{Email: "bob@x.io", Password: "wrong"})
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid user credentials")
}

func TestLogin_Success(t *testing.T) {
	d := newAuthDeps()
	hash, _ := utils.HashPassword("right")
	d.users.On("FindByUsernameOrEmail", mock.Anything, "bob", "").Return(&model.User{ID: 2, Username: "bob", Password: hash}, nil)

	var stored string
	d.users.On("SetRefreshToken", mock.Anything, int64(2), mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) { stored = *args.Get(2).(*string) }).Return(nil)

	data, err := d.svc.Login(context.Background(), &dto.LoginRequest{Username: "bob", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, stored, data.RefreshToken)
	assert.Equal(t, "bob", data.User.Username)

	claims, err := d.tokens.ParseAccessToken(data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
}

func TestLogout_ClearsAndRevokes(t *testing.T) {
	d := newAuthDeps()
	access, err := d.tokens.GenerateAccessToken(utils.TokenIdentity{UserID: 3})
	require.NoError(t, err)
	claims, err := d.tokens.ParseAccessToken(access)
	require.NoError(t, err)

	d.users.On("SetRefreshToken", mock.Anything, int64(3), (*string)(nil)).Return(nil)
	d.blocklist.On("Revoke", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	require.NoError(t, d.svc.Logout(context.Background(), 3, claims))
	require.NoError(t, d.svc.Logout(context.Background(), 3, claims))
	d.blocklist.AssertNumberOfCalls(t, "Revoke", 2)
}

func TestRefresh_Missing(t *testing.T) {
	d := newAuthDeps()
	_, err := d.svc.Refresh(context.Background(), "")
	requireAppErr(t, err, http.StatusUnauthorized, "Unauthorized request")
}

func TestRefresh_InvalidSignature(t *testing.T) {
	d := newAuthDeps()
	access, _ := d.tokens.GenerateAccessToken(utils.TokenIdentity{UserID: 3})

	_, err := d.svc.Refresh(context.Background(), access)
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestRefresh_UserGone(t *testing.T) {
	d := newAuthDeps()
	refresh, _ := d.tokens.GenerateRefreshToken(3)
	d.users.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := d.svc.Refresh(context.Background(), refresh)
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestRefresh_ReusedToken(t *testing.T) {
	d := newAuthDeps()
	old, _ := d.tokens.GenerateRefreshToken(3)
	current, _ := d.tokens.GenerateRefreshToken(3)
	d.users.On("GetByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, RefreshToken: &current}, nil)

	_, err := d.svc.Refresh(context.Background(), old)
	requireAppErr(t, err, http.StatusUnauthorized, "Refresh token is expired or used")
}

func TestRefresh_Rotates(t *testing.T) {
	d := newAuthDeps()
	current, _ := d.tokens.GenerateRefreshToken(3)
	d.users.On("GetByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, Username: "c", RefreshToken: &current}, nil)
	d.users.On("ReplaceRefreshToken", mock.Anything, int64(3), current, mock.AnythingOfType("string")).Return(true, nil)

	pair, err := d.svc.Refresh(context.Background(), current)
	require.NoError(t, err)
	assert.NotEqual(t, current, pair.RefreshToken)
	_, err = d.tokens.ParseAccessToken(pair.AccessToken)
	assert.NoError(t, err)
}

func TestRefresh_LosesRace(t *testing.T) {
	d := newAuthDeps()
	current, _ := d.tokens.GenerateRefreshToken(3)
	d.users.On("GetByID", mock.Anything, int64(3)).Return(&model.User{ID: 3, RefreshToken: &current}, nil)
	d.users.On("ReplaceRefreshToken", mock.Anything, int64(3), current, mock.Anything).Return(false, nil)

	_, err := d.svc.Refresh(context.Background(), current)
	requireAppErr(t, err, http.StatusUnauthorized, "Refresh token is expired or used")
}

func TestChangePassword(t *testing.T) {
	d := newAuthDeps()
	hash, _ := utils.HashPassword("old")
	d.users.On("GetByID", mock.Anything, int64(4)).Return(&model.User{ID: 4, Password: hash}, nil)

	err := d.svc.ChangePassword(context.Background(), 4, &dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "new"})
	requireAppErr(t, err, http.StatusBadRequest, "Invalid old password")

	d.users.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(m map[string]interface{}) bool {
		return utils.VerifyPassword("new", m["password"].(string))
	})).Return(&model.User{ID: 4}, nil)
	require.NoError(t, d.svc.ChangePassword(context.Background(), 4, &dto.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"}))
	d.users.AssertExpectations(t)
}

func TestAuthenticate(t *testing.T) {
	d := newAuthDeps()
	ctx := context.Background()

	_, _, err := d.svc.Authenticate(ctx, "")
	requireAppErr(t, err, http.StatusUnauthorized, "Unauthorized request")

	_, _, err = d.svc.Authenticate(ctx, "garbage")
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid access token")

	token, _ := d.tokens.GenerateAccessToken(utils.TokenIdentity{UserID: 5})
	claims, _ := d.tokens.ParseAccessToken(token)

	d.blocklist.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil).Once()
	_, _, err = d.svc.Authenticate(ctx, token)
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid access token")

	d.blocklist.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)
	d.users.On("GetByID", mock.Anything, int64(5)).Return(&model.User{ID: 5, Username: "eve"}, nil)
	user, got, err := d.svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "eve", user.Username)
	assert.Equal(t, claims.ID, got.ID)
}

func TestLogoutAuthenticator_AcceptsRevokedToken(t *testing.T) {
	d := newAuthDeps()
	ctx := context.Background()

	token, _ := d.tokens.GenerateAccessToken(utils.TokenIdentity{UserID: 6})
	d.users.On("GetByID", mock.Anything, int64(6)).Return(&model.User{ID: 6}, nil)

	user, claims, err := d.svc.ForLogout().Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(6), user.ID)
	assert.NotEmpty(t, claims.ID)
	d.blocklist.AssertNotCalled(t, "IsRevoked", mock.Anything, mock.Anything)

	_, _, err = d.svc.ForLogout().Authenticate(ctx, "garbage")
	requireAppErr(t, err, http.StatusUnauthorized, "Invalid access token")
}

func TestLogout_Repeatable(t *testing.T) {
	d := newAuthDeps()
	ctx := context.Background()

	token, _ := d.tokens.GenerateAccessToken(utils.TokenIdentity{UserID: 6})
	claims, _ := d.tokens.ParseAccessToken(token)
	d.users.On("SetRefreshToken", mock.Anything, int64(6), (*string)(nil)).Return(nil).Twice()
	d.blocklist.On("Revoke", mock.Anything, claims.ID, mock.Anything).Return(nil).Twice()

	require.NoError(t, d.svc.Logout(ctx, 6, claims))
	require.NoError(t, d.svc.Logout(ctx, 6, claims))
	d.users.AssertExpectations(t)
	d.blocklist.AssertExpectations(t)
}
