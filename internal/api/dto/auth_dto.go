package dto

// RegisterRequest 注册请求（multipart/form-data，头像与封面图另行读取）
type RegisterRequest struct {
	FullName string `form:"fullName" binding:"notblank,max=255"`
	Email    string `form:"email" binding:"notblank,max=255"`
	Username string `form:"username" binding:"notblank,max=255"`
	Password string `form:"password" binding:"notblank,max=255"`
}

// LoginRequest 登录请求，username 与 email 二选一
type LoginRequest struct {
	Username string `json:"username" binding:"max=255"`
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=255"`
}

// RefreshTokenRequest 刷新令牌请求，Cookie 中没有时从 body 读取
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"notblank"`
	NewPassword string `json:"newPassword" binding:"notblank,max=255"`
}

// TokenPair access / refresh 令牌
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginData 登录成功返回
type LoginData struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}
