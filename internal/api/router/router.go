package router

import (
	authapp "convert_gateway_service/internal/auth/app"

	"convert_gateway_service/internal/api/handlers"
	"convert_gateway_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 註冊 gateway 路由
// @title Convert Gateway Service API
// @version 1.0
// @description Gateway fronting the audio/video conversion pipeline
// @host localhost:8080
// @BasePath /v1
func RegisterRoutes(app *fiber.App,
	authHandler *handlers.AuthHandler,
	converterHandler *handlers.ConverterHandler,
	authUseCase authapp.AuthUseCase,
) {
	v1 := app.Group("/v1")

	v1.Get("/swagger/*", swagger.HandlerDefault)
	v1.Get("/", handlers.ConnectCheck)
	v1.Post("/debug", handlers.DebugLogFlag)

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/sign-in", authHandler.SignIn)

	converterRoutes := v1.Group("/converter")
	converterRoutes.Use(middlewares.BearerMiddleware(authUseCase))
	converterRoutes.Post("/upload", converterHandler.Upload)
	converterRoutes.Post("/upload/:email", converterHandler.Upload)
	converterRoutes.Get("/download", converterHandler.Download)
	converterRoutes.Get("/files", converterHandler.ListFiles)
}
