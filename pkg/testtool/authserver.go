package testtool

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"convert_gateway_service/internal/auth/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// MockAuthServer 模擬遠端 auth service：/sign-in 發 token，/me 以 token 換身份。
// 密碼以 bcrypt 雜湊存放，token 是 HS256 簽名的 JWT。
type MockAuthServer struct {
	Server *httptest.Server

	secret []byte
	users  map[string]mockUser // email -> user
}

type mockUser struct {
	passwordHash []byte
	user         domain.User
}

// NewMockAuthServer 啟動一個 in-process 的 mock auth service
func NewMockAuthServer() *MockAuthServer {
	s := &MockAuthServer{
		secret: []byte("testtool-secret"),
		users:  map[string]mockUser{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/sign-in", s.handleSignIn)
	mux.HandleFunc("/me", s.handleMe)
	s.Server = httptest.NewServer(mux)

	return s
}

// AddUser 註冊一個測試使用者並回傳可用的 bearer token
func (s *MockAuthServer) AddUser(password string, user domain.User) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.users[user.Email] = mockUser{passwordHash: hash, user: user}

	token, err := s.issueToken(user.Email)
	if err != nil {
		panic(err)
	}
	return token
}

// URL mock auth service base url
func (s *MockAuthServer) URL() string {
	return s.Server.URL
}

// Close 關閉 server
func (s *MockAuthServer) Close() {
	s.Server.Close()
}

func (s *MockAuthServer) issueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *MockAuthServer) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request")
		return
	}

	u, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issueToken(req.Email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"expiration":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
}

func (s *MockAuthServer) handleMe(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	email, _ := claims["sub"].(string)

	u, ok := s.users[email]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u.user)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
