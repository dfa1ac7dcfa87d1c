package domain

// Role 使用者角色
type Role string

// 角色集合，與遠端 auth service 的 enum 對齊
const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleBaseUser  Role = "base_user"
)

// User 由 auth service 解析 token 後取得的身份，單一請求內不可變
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	Role     Role   `json:"role"`
}

// SignIn sign-in request body
type SignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse 轉發 auth service 的 token 回應
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	Expiration  string `json:"expiration"`
}
