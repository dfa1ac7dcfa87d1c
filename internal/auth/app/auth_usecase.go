package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"convert_gateway_service/internal/auth/domain"
	errprocess "convert_gateway_service/pkg/err"
)

// AuthUseCase 這裡封裝了對外提供的應用服務
type AuthUseCase interface {
	SignIn(ctx context.Context, in domain.SignIn) (*domain.SignInResponse, error)
	GetUserFromToken(ctx context.Context, token string) (*domain.User, error)
}

type authUseCase struct {
	baseURL string
	client  *http.Client
}

// NewAuthUseCase 建立一個新的 AuthUseCase。
// 這個 gateway 不驗簽 token，token 對它是不透明的，一律交給遠端 auth service。
func NewAuthUseCase(baseURL string, timeout time.Duration) AuthUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &authUseCase{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// upstreamDetail auth service 失敗回應的 body
type upstreamDetail struct {
	Detail string `json:"detail"`
}

// SignIn 轉發帳密給 auth service 的 sign-in endpoint，轉發它的 token 回應。
// 不能把原始密碼寫進任何日誌。
func (a *authUseCase) SignIn(ctx context.Context, in domain.SignIn) (*domain.SignInResponse, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindValidation, "invalid sign-in payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/sign-in", bytes.NewReader(payload))
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindUpstreamUnavailable, "Auth Service not available", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		// 連線失敗與認證失敗是兩回事，不能混在一起回報
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("Auth Service not available : %v", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("讀取 auth service 回應失敗 : %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errprocess.New(errprocess.KindAuthentication, detailFrom(data, resp.StatusCode))
	}

	var out domain.SignInResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("解析 auth service 回應失敗 : %v", err))
	}
	return &out, nil
}

// GetUserFromToken 用 bearer token 跟 auth service 換取使用者身份
func (a *authUseCase) GetUserFromToken(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/me", nil)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindUpstreamUnavailable, "Auth Service not available", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("Auth Service not available : %v", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("讀取 auth service 回應失敗 : %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errprocess.New(errprocess.KindAuthentication, detailFrom(data, resp.StatusCode))
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, errprocess.Set(errprocess.KindUpstreamUnavailable, fmt.Sprintf("解析 auth service 回應失敗 : %v", err))
	}
	return &user, nil
}

// detailFrom 取出 auth service 回傳的 detail 訊息
func detailFrom(data []byte, statusCode int) string {
	var d upstreamDetail
	if err := json.Unmarshal(data, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return fmt.Sprintf("authentication failed (status %d)", statusCode)
}
