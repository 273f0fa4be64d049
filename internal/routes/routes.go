package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/locavor/account-service/internal/handlers"
	"github.com/locavor/account-service/internal/middleware"
)

func Setup(
	app *fiber.App,
	accountHandler *handlers.AccountHandler,
	professionHandler *handlers.ProfessionHandler,
	stripeHandler *handlers.StripeHandler,
	internalHandler *handlers.InternalHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	account := api.Group("/v1/account")

	// Profession catalog (public, read-only)
	account.Get("/professions", professionHandler.List)
	account.Get("/professions/:id", professionHandler.GetByID)

	// Personal account
	account.Get("/me", middleware.Identity(), accountHandler.GetMyProfile)
	account.Put("/me", middleware.Identity(), accountHandler.UpdatePersonalInfo)

	// Restaurant profile
	account.Get("/restaurant/:id", accountHandler.GetRestaurantProfile)
	account.Post("/restaurant", middleware.Identity(), accountHandler.CreateRestaurantProfile)
	account.Put("/restaurant", middleware.Identity(), accountHandler.UpdateMyRestaurantProfile)
	account.Delete("/restaurant", middleware.Identity(), accountHandler.DeleteMyRestaurantProfile)

	// Producer profile
	account.Get("/producer/:id", accountHandler.GetProducerProfile)
	account.Post("/producer", middleware.Identity(), accountHandler.CreateProducerProfile)
	account.Put("/producer", middleware.Identity(), accountHandler.UpdateMyProducerProfile)
	account.Delete("/producer", middleware.Identity(), accountHandler.DeleteMyProducerProfile)
	account.Post("/producer/professions/:professionId", middleware.Identity(), accountHandler.AddProfession)
	account.Delete("/producer/professions/:professionId", middleware.Identity(), accountHandler.RemoveProfession)

	// Stripe Connect
	stripeGroup := account.Group("/stripe", middleware.Identity())
	stripeGroup.Post("/connected-account", stripeHandler.CreateConnectedAccount)
	stripeGroup.Get("/connected-account", stripeHandler.GetConnectedAccount)
	stripeGroup.Delete("/connected-account", stripeHandler.DeleteConnectedAccount)
	stripeGroup.Post("/refresh-onboarding", stripeHandler.RefreshOnboardingLink)
	stripeGroup.Post("/sync-status", stripeHandler.SyncAccountStatus)

	// Internal service-to-service endpoints (no rate limit; the network
	// boundary keeps these off the public gateway)
	internal := app.Group("/internal")
	internal.Post("/users", internalHandler.RegisterIdentity)
	internal.Get("/user/:id/keycloak-id", internalHandler.GetKeycloakIDByUserID)
	internal.Put("/restaurant/:id", internalHandler.UpdateRestaurantByID)
	internal.Delete("/restaurant/:id", internalHandler.DeleteRestaurantByID)
	internal.Put("/producer/:id", internalHandler.UpdateProducerByID)
	internal.Delete("/producer/:id", internalHandler.DeleteProducerByID)
	internal.Get("/:keycloakId", internalHandler.GetOrCreateUser)
}
