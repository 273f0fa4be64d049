package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/models"
)

// Local cache values for the connected-account status column.
const (
	AccountStatusPendingOnboarding = "pending_onboarding"
	AccountStatusIncomplete        = "incomplete"
	AccountStatusPending           = "pending"
	AccountStatusActive            = "active"
	AccountStatusRejected          = "rejected"
	AccountStatusUnknown           = "unknown"
)

type StripeConnectService struct {
	gateway          PaymentGateway
	users            UserStore
	userService      *UserService
	dashboardBaseURL string
}

func NewStripeConnectService(gateway PaymentGateway, users UserStore, userService *UserService, dashboardBaseURL string) *StripeConnectService {
	return &StripeConnectService{
		gateway:          gateway,
		users:            users,
		userService:      userService,
		dashboardBaseURL: dashboardBaseURL,
	}
}

// CreateConnectedAccount provisions a connected account for an existing
// user. It is idempotent: a second call never re-provisions, it returns the
// existing linkage via the info path.
func (s *StripeConnectService) CreateConnectedAccount(ctx context.Context, keycloakID uuid.UUID, req *dto.ConnectedAccountRequest) (*dto.ConnectedAccountResponse, error) {
	u, err := s.userService.findByKeycloakID(ctx, keycloakID, "user")
	if err != nil {
		return nil, err
	}

	if u.StripeAccountID != nil {
		slog.Info("user already has a connected account, returning existing linkage",
			"user_id", u.ID, "stripe_account_id", *u.StripeAccountID)
		return s.GetConnectedAccountInfo(ctx, keycloakID)
	}

	email := req.Email
	if email == "" {
		email = keycloakID.String() + "@temp.local"
	}

	accountID, err := s.gateway.CreateAccount(u, req.Country, req.BusinessType, email)
	if err != nil {
		slog.Error("connected account creation failed", "user_id", u.ID, "error", err)
		return nil, apperr.BadRequest("failed to create payment account: %v", err)
	}

	// Persist the linkage before requesting the link, so a link failure
	// does not lose the provisioned account.
	status := AccountStatusPendingOnboarding
	complete := false
	u.StripeAccountID = &accountID
	u.StripeAccountStatus = &status
	u.StripeOnboardingComplete = &complete
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	url, err := s.gateway.CreateOnboardingLink(accountID)
	if err != nil {
		slog.Error("onboarding link creation failed", "stripe_account_id", accountID, "error", err)
		return nil, apperr.BadRequest("failed to create onboarding link: %v", err)
	}

	return &dto.ConnectedAccountResponse{
		StripeAccountID:    accountID,
		OnboardingURL:      &url,
		OnboardingComplete: false,
		AccountStatus:      AccountStatusPendingOnboarding,
	}, nil
}

// GetConnectedAccountInfo returns the linkage with a best-effort live status
// sync. Platform unavailability degrades to the cached status; it never
// fails this read path. The onboarding URL is never returned here.
func (s *StripeConnectService) GetConnectedAccountInfo(ctx context.Context, keycloakID uuid.UUID) (*dto.ConnectedAccountResponse, error) {
	u, err := s.requireLinkedUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}

	if err := s.syncStatus(ctx, u); err != nil {
		slog.Warn("could not sync connected account status, returning cached",
			"user_id", u.ID, "error", err)
		return s.cachedResponse(u), nil
	}

	resp := s.cachedResponse(u)
	if resp.AccountStatus == AccountStatusActive {
		dashboardURL := s.dashboardBaseURL + *u.StripeAccountID
		resp.DashboardURL = &dashboardURL
	}
	return resp, nil
}

// RefreshOnboardingLink issues a fresh single-purpose onboarding link.
// Refreshing a finished onboarding is a caller error.
func (s *StripeConnectService) RefreshOnboardingLink(ctx context.Context, keycloakID uuid.UUID) (*dto.ConnectedAccountResponse, error) {
	u, err := s.requireLinkedUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	if u.StripeOnboardingComplete != nil && *u.StripeOnboardingComplete {
		return nil, apperr.BadRequest("user has already completed onboarding")
	}

	url, err := s.gateway.CreateOnboardingLink(*u.StripeAccountID)
	if err != nil {
		slog.Error("onboarding link refresh failed", "stripe_account_id", *u.StripeAccountID, "error", err)
		return nil, apperr.BadRequest("failed to create onboarding link: %v", err)
	}

	resp := s.cachedResponse(u)
	resp.OnboardingURL = &url
	return resp, nil
}

// SyncAccountStatus forces a live sync and returns the full profile. Unlike
// the info read path, a platform failure propagates here.
func (s *StripeConnectService) SyncAccountStatus(ctx context.Context, keycloakID uuid.UUID) (*dto.UserProfileResponse, error) {
	u, err := s.requireLinkedUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	if err := s.syncStatus(ctx, u); err != nil {
		return nil, apperr.BadRequest("failed to sync account status: %v", err)
	}
	return s.userService.GetProfile(ctx, keycloakID)
}

// DeleteConnectedAccount detaches the local linkage. The account itself is
// never deleted or deactivated on the platform.
func (s *StripeConnectService) DeleteConnectedAccount(ctx context.Context, keycloakID uuid.UUID) error {
	u, err := s.requireLinkedUser(ctx, keycloakID)
	if err != nil {
		return err
	}

	slog.Info("detaching connected account", "user_id", u.ID, "stripe_account_id", *u.StripeAccountID)
	u.StripeAccountID = nil
	u.StripeAccountStatus = nil
	u.StripeOnboardingComplete = nil
	return s.users.Save(ctx, u)
}

func (s *StripeConnectService) requireLinkedUser(ctx context.Context, keycloakID uuid.UUID) (*models.User, error) {
	u, err := s.userService.findByKeycloakID(ctx, keycloakID, "user")
	if err != nil {
		return nil, err
	}
	if u.StripeAccountID == nil {
		return nil, apperr.BadRequest("user does not have a connected payment account")
	}
	return u, nil
}

func (s *StripeConnectService) syncStatus(ctx context.Context, u *models.User) error {
	snap, err := s.gateway.RetrieveAccount(*u.StripeAccountID)
	if err != nil {
		return err
	}
	status, complete := deriveAccountStatus(snap)
	u.StripeAccountStatus = &status
	u.StripeOnboardingComplete = &complete
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}
	slog.Debug("synced connected account status", "user_id", u.ID, "status", status, "complete", complete)
	return nil
}

func (s *StripeConnectService) cachedResponse(u *models.User) *dto.ConnectedAccountResponse {
	status := AccountStatusUnknown
	if u.StripeAccountStatus != nil {
		status = *u.StripeAccountStatus
	}
	complete := u.StripeOnboardingComplete != nil && *u.StripeOnboardingComplete
	return &dto.ConnectedAccountResponse{
		StripeAccountID:    *u.StripeAccountID,
		OnboardingComplete: complete,
		AccountStatus:      status,
	}
}

// deriveAccountStatus maps a live snapshot onto the local status enum.
func deriveAccountStatus(snap *AccountSnapshot) (status string, onboardingComplete bool) {
	onboardingComplete = snap.DetailsSubmitted && snap.ChargesEnabled
	switch {
	case snap.DisabledReason != "":
		status = AccountStatusRejected
	case onboardingComplete:
		status = AccountStatusActive
	case snap.DetailsSubmitted:
		status = AccountStatusPending
	default:
		status = AccountStatusIncomplete
	}
	return status, onboardingComplete
}
