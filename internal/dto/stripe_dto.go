package dto

type ConnectedAccountRequest struct {
	Country      string `json:"country"`
	BusinessType string `json:"business_type"`
	Email        string `json:"email"`
}

type ConnectedAccountResponse struct {
	StripeAccountID    string  `json:"stripe_account_id"`
	OnboardingURL      *string `json:"onboarding_url,omitempty"`
	OnboardingComplete bool    `json:"onboarding_complete"`
	AccountStatus      string  `json:"account_status"`
	DashboardURL       *string `json:"dashboard_url,omitempty"`
}
