package middlewares

import (
	"strings"

	"convert_gateway_service/internal/auth/app"
	"convert_gateway_service/internal/auth/domain"
	errprocess "convert_gateway_service/pkg/err"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderAuthorization bearer token header name
	HeaderAuthorization = "Authorization"

	// LocalsUser resolved user, set c.Locals name
	LocalsUser = "CurrentUser"
)

// BearerMiddleware 取出 bearer token，交給遠端 auth service 換取身份。
// 成功後把 user 放進 c.Locals，後續 handler 再做角色授權。
func BearerMiddleware(auth app.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid authorization code",
			})
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid authentication scheme",
			})
		}

		user, err := auth.GetUserFromToken(c.UserContext(), token)
		if err != nil {
			return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{
				"detail": errprocess.Detail(err),
			})
		}

		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "Inactive user",
			})
		}

		c.Locals(LocalsUser, user)
		return c.Next()
	}
}

// CurrentUser 從 c.Locals 取出已解析的使用者，middleware 未跑過時回傳 nil
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(LocalsUser).(*domain.User)
	return user
}
