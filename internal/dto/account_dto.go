package dto

import "time"

// Requests use pointer fields deliberately: profile updates are
// full-replace, so an absent field nulls out the stored value.

type UpdatePersonalInfoRequest struct {
	Biography *string `json:"biography"`
	Website   *string `json:"website"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Linkedin  *string `json:"linkedin"`
}

type RestaurantProfileRequest struct {
	UpdatePersonalInfoRequest
	ServiceType           *string `json:"service_type"`
	CuisineType           *string `json:"cuisine_type"`
	HygieneCertifications *string `json:"hygiene_certifications"`
	Awards                *string `json:"awards"`
}

type ProducerProfileRequest struct {
	UpdatePersonalInfoRequest
	Siret            *string `json:"siret"`
	OrganizationType *string `json:"organization_type"`
	InstallationYear *int    `json:"installation_year"`
	EmployeesCount   *int    `json:"employees_count"`
	// nil: leave the profession set untouched. Empty: clear it.
	ProfessionIDs *[]int64 `json:"profession_ids"`
}

type RegisterIdentityRequest struct {
	KeycloakID string `json:"keycloak_id"`
}

type ProfessionResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	NameEn string `json:"name_en"`
	NameFr string `json:"name_fr"`
}

// BaseProfileResponse carries the fields shared by every profile shape.
type BaseProfileResponse struct {
	ID        int64   `json:"id"`
	Biography *string `json:"biography"`
	Website   *string `json:"website"`
	Facebook  *string `json:"facebook"`
	Instagram *string `json:"instagram"`
	Linkedin  *string `json:"linkedin"`
}

type UserProfileResponse struct {
	BaseProfileResponse
	KeycloakID string `json:"keycloak_id"`

	Siret            *string              `json:"siret"`
	OrganizationType *string              `json:"organization_type"`
	InstallationYear *int                 `json:"installation_year"`
	EmployeesCount   *int                 `json:"employees_count"`
	Professions      []ProfessionResponse `json:"professions"`

	ServiceType           *string `json:"service_type"`
	CuisineType           *string `json:"cuisine_type"`
	HygieneCertifications *string `json:"hygiene_certifications"`
	Awards                *string `json:"awards"`

	StripeAccountID          *string `json:"stripe_account_id"`
	StripeAccountStatus      *string `json:"stripe_account_status"`
	StripeOnboardingComplete *bool   `json:"stripe_onboarding_complete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RestaurantPublicProfileResponse struct {
	BaseProfileResponse
	ServiceType           *string `json:"service_type"`
	CuisineType           *string `json:"cuisine_type"`
	HygieneCertifications *string `json:"hygiene_certifications"`
	Awards                *string `json:"awards"`
}

type ProducerPublicProfileResponse struct {
	BaseProfileResponse
	Siret            *string              `json:"siret"`
	OrganizationType *string              `json:"organization_type"`
	InstallationYear *int                 `json:"installation_year"`
	EmployeesCount   *int                 `json:"employees_count"`
	Professions      []ProfessionResponse `json:"professions"`
}

type KeycloakIDResponse struct {
	UserID     int64  `json:"user_id"`
	KeycloakID string `json:"keycloak_id"`
}
