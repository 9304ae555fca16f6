package http

import (
	"github.com/gofiber/fiber/v3"

	"inkpost/internal/adapters/http/middleware"
	"inkpost/internal/adapters/http/posts"
	"inkpost/internal/adapters/http/users"
	"inkpost/internal/ports/api"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/apierror"
)

// Deps содержит зависимости HTTP маршрутизатора.
type Deps struct {
	Auth         api.AuthUseCase
	Users        api.UserUseCase
	Verification api.VerificationUseCase
	Posts        api.PostUseCase
	Tokens       svc.TokenService
	UserRepo     repositories.UserRepository
	Production   bool
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	usersHandler := users.NewHandler(deps.Auth, deps.Users, deps.Verification, deps.Production)
	postsHandler := posts.NewHandler(deps.Posts)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	requireAuth := middleware.NewAuthMiddleware(deps.Tokens, deps.UserRepo)

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты учетных записей.
	userRoutes := apiV1.Group("/user")
	userRoutes.Post("/register", usersHandler.Register)
	userRoutes.Post("/login", usersHandler.Login)
	userRoutes.Post("/refresh-token", usersHandler.RefreshTokens)
	userRoutes.Get("/verify-email", usersHandler.VerifyEmail)
	userRoutes.Post("/logout", usersHandler.Logout, requireAuth)
	userRoutes.Post("/send-verification-email", usersHandler.SendVerificationEmail, requireAuth)
	userRoutes.Get("/profile", usersHandler.GetProfile, requireAuth)
	userRoutes.Patch("/profile", usersHandler.UpdateProfile, requireAuth)
	userRoutes.Patch("/avatar", usersHandler.UpdateAvatar, requireAuth)
	userRoutes.Patch("/cover-image", usersHandler.UpdateCoverImage, requireAuth)

	// Маршруты публикаций.
	postRoutes := apiV1.Group("/post")
	postRoutes.Post("/create-post", postsHandler.CreatePost, requireAuth)
	postRoutes.Get("/:slug", postsHandler.GetPost)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return apierror.New("Route not found", fiber.StatusNotFound, apierror.CodeNotFound).
			WithPath(ctx.Path())
	})
}
