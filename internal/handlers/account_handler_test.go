package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/handlers"
	"github.com/locavor/account-service/internal/middleware"
	"github.com/locavor/account-service/internal/models"
	"github.com/locavor/account-service/internal/repository"
	"github.com/locavor/account-service/internal/routes"
	"github.com/locavor/account-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubGateway struct {
	createCalls int
}

func (g *stubGateway) CreateAccount(u *models.User, country, businessType, email string) (string, error) {
	g.createCalls++
	return fmt.Sprintf("acct_test_%d", g.createCalls), nil
}

func (g *stubGateway) CreateOnboardingLink(accountID string) (string, error) {
	return "https://connect.stripe.test/onboarding/" + accountID, nil
}

func (g *stubGateway) RetrieveAccount(accountID string) (*services.AccountSnapshot, error) {
	return &services.AccountSnapshot{}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Profession{}, &models.User{}))

	userRepo := repository.NewUserRepository(db)
	professionRepo := repository.NewProfessionRepository(db)
	userService := services.NewUserService(userRepo, professionRepo)
	connectService := services.NewStripeConnectService(&stubGateway{}, userRepo, userService, "https://dashboard.stripe.com/express/")

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	routes.Setup(app,
		handlers.NewAccountHandler(userService),
		handlers.NewProfessionHandler(professionRepo),
		handlers.NewStripeHandler(connectService),
		handlers.NewInternalHandler(userService),
		handlers.NewHealthHandler(db),
	)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, keycloakID, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if keycloakID != "" {
		req.Header.Set(middleware.HeaderKeycloakID, keycloakID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestIdentityHeaderValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/account/me", "not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Contains(t, body.Message, "not-a-uuid")
	assert.False(t, body.Timestamp.IsZero())
}

func TestRestaurantLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	kid := uuid.NewString()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/account/restaurant", kid,
		`{"service_type":"Dine-in","cuisine_type":"Bistro"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.NotNil(t, profile.ServiceType)
	assert.Equal(t, "Dine-in", *profile.ServiceType)
	assert.Equal(t, kid, profile.KeycloakID)

	// Public read by local id.
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/account/restaurant/%d", profile.ID), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public dto.RestaurantPublicProfileResponse
	require.NoError(t, json.Unmarshal(raw, &public))
	assert.Equal(t, profile.ID, public.ID)

	// Producer read of a restaurant row is a caller error.
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/account/producer/%d", profile.ID), "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/account/restaurant", kid, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/account/me", kid, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducerUpsertOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	kid := uuid.NewString()

	p := models.Profession{Code: "maraicher", NameEn: "Market gardener", NameFr: "Maraîcher"}
	require.NoError(t, db.Create(&p).Error)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/account/producer", kid,
		fmt.Sprintf(`{"siret":"12345678900011","profession_ids":[%d]}`, p.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	require.Len(t, profile.Professions, 1)
	assert.Equal(t, "maraicher", profile.Professions[0].Code)

	// Invalid profession id rejects the whole update.
	resp, raw = doJSON(t, app, http.MethodPut, "/api/v1/account/producer", kid,
		`{"siret":"12345678900011","profession_ids":[9999]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errBody))
	assert.Contains(t, errBody.Message, "9999")
}

func TestProfessionCatalogEndpoints(t *testing.T) {
	app, db := newTestApp(t)

	p := models.Profession{Code: "vigneron", NameEn: "Winemaker", NameFr: "Vigneron"}
	require.NoError(t, db.Create(&p).Error)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/account/professions", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ProfessionResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "vigneron", list[0].Code)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/account/professions/%d", p.ID), "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/account/professions/9999", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInternalResolverEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	kid := uuid.NewString()

	// First reference materializes the row.
	resp, raw := doJSON(t, app, http.MethodGet, "/internal/"+kid, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, kid, profile.KeycloakID)

	// Second reference resolves to the same row.
	resp, raw = doJSON(t, app, http.MethodGet, "/internal/"+kid, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &second))
	assert.Equal(t, profile.ID, second.ID)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/internal/user/%d/keycloak-id", profile.ID), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lookup dto.KeycloakIDResponse
	require.NoError(t, json.Unmarshal(raw, &lookup))
	assert.Equal(t, kid, lookup.KeycloakID)

	resp, _ = doJSON(t, app, http.MethodGet, "/internal/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInternalScopedDeletes(t *testing.T) {
	app, db := newTestApp(t)
	kid := uuid.NewString()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/account/restaurant", kid,
		`{"service_type":"Takeaway"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/internal/restaurant/%d", profile.ID), "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Deleting an absent row by id is a 404 either way.
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/internal/producer/%d", profile.ID), "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStripeEndpointsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	kid := uuid.NewString()

	// Creating a connected account for an unknown user is a 404.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/account/stripe/connected-account", kid, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, raw := doJSON(t, app, http.MethodGet, "/internal/"+kid, "", "")
	var profile dto.UserProfileResponse
	require.NoError(t, json.Unmarshal(raw, &profile))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/v1/account/stripe/connected-account", kid, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.ConnectedAccountResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "pending_onboarding", created.AccountStatus)
	require.NotNil(t, created.OnboardingURL)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/account/stripe/connected-account", kid, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Reading after detach is a precondition failure, not a 404.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/account/stripe/connected-account", kid, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
}
