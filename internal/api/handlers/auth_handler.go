package handlers

import (
	"convert_gateway_service/internal/auth/app"
	"convert_gateway_service/internal/auth/domain"
	errprocess "convert_gateway_service/pkg/err"
	"convert_gateway_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler 處理登入相關的 HTTP 請求
type AuthHandler struct {
	AuthUseCase app.AuthUseCase
}

// NewAuthHandler 建立新的 AuthHandler
func NewAuthHandler(auth app.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		AuthUseCase: auth,
	}
}

// SignIn 轉發帳密給遠端 auth service
// @Summary Sign in
// @Description Forwards credentials to the auth service and relays its token response
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.SignIn true "credentials"
// @Success 200 {object} domain.SignInResponse "token + expiration"
// @Failure 401 {object} string "invalid credentials"
// @Failure 503 {object} string "auth service not available"
// @Router /v1/auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req domain.SignIn
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request"})
	}

	// 密碼不落日誌
	logger.Log.Debug("SignIn request", zap.String("email", req.Email))

	resp, err := h.AuthUseCase.SignIn(c.UserContext(), req)
	if err != nil {
		return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"detail": errprocess.Detail(err)})
	}

	return c.JSON(resp)
}
