package services

import (
	"log/slog"
	"strconv"

	"github.com/locavor/account-service/internal/config"
	"github.com/locavor/account-service/internal/models"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/accountlink"
)

// AccountSnapshot is the live state of a connected account as reported by
// the payment platform.
type AccountSnapshot struct {
	DetailsSubmitted bool
	ChargesEnabled   bool
	DisabledReason   string
}

// PaymentGateway is the external payment platform boundary. The Stripe
// implementation lives below; tests substitute a stub.
type PaymentGateway interface {
	CreateAccount(u *models.User, country, businessType, email string) (string, error)
	CreateOnboardingLink(accountID string) (string, error)
	RetrieveAccount(accountID string) (*AccountSnapshot, error)
}

// StripeGateway provisions Stripe Express connected accounts.
type StripeGateway struct {
	cfg *config.Config
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	stripe.Key = cfg.StripeSecretKey
	return &StripeGateway{cfg: cfg}
}

func (g *StripeGateway) CreateAccount(u *models.User, country, businessType, email string) (string, error) {
	params := &stripe.AccountParams{
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String(country),
		Email:        stripe.String(email),
		BusinessType: stripe.String(businessType),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	params.AddMetadata("user_id", strconv.FormatInt(u.ID, 10))
	params.AddMetadata("keycloak_id", u.KeycloakID.String())
	params.AddMetadata("user_type", accountUserType(u))

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	slog.Info("created stripe connected account", "stripe_account_id", acct.ID, "user_id", u.ID)
	return acct.ID, nil
}

func (g *StripeGateway) CreateOnboardingLink(accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(g.cfg.StripeRefreshURL),
		ReturnURL:  stripe.String(g.cfg.StripeReturnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func (g *StripeGateway) RetrieveAccount(accountID string) (*AccountSnapshot, error) {
	acct, err := account.GetByID(accountID, nil)
	if err != nil {
		return nil, err
	}
	snap := &AccountSnapshot{
		DetailsSubmitted: acct.DetailsSubmitted,
		ChargesEnabled:   acct.ChargesEnabled,
	}
	if acct.Requirements != nil {
		snap.DisabledReason = string(acct.Requirements.DisabledReason)
	}
	return snap, nil
}

func accountUserType(u *models.User) string {
	switch {
	case u.IsProducer():
		return "producer"
	case u.IsRestaurant():
		return "restaurant"
	default:
		return "consumer"
	}
}
