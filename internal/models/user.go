package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the single wide account row. A user is "a restaurant" when
// ServiceType or CuisineType is set, "a producer" when Siret is set,
// and generic otherwise; the two field groups are never set together.
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	KeycloakID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;<-:create" json:"keycloak_id"`

	// Common profile fields
	Biography *string `gorm:"type:text" json:"biography"`
	Website   *string `gorm:"size:255" json:"website"`
	Facebook  *string `gorm:"size:255" json:"facebook"`
	Instagram *string `gorm:"size:255" json:"instagram"`
	Linkedin  *string `gorm:"size:255" json:"linkedin"`

	// Producer fields
	Siret            *string      `gorm:"size:14" json:"siret"`
	OrganizationType *string      `gorm:"size:100" json:"organization_type"`
	InstallationYear *int         `json:"installation_year"`
	EmployeesCount   *int         `json:"employees_count"`
	Professions      []Profession `gorm:"many2many:user_professions" json:"professions"`

	// Restaurant fields
	ServiceType           *string `gorm:"size:100" json:"service_type"`
	CuisineType           *string `gorm:"size:100" json:"cuisine_type"`
	HygieneCertifications *string `gorm:"type:text" json:"hygiene_certifications"`
	Awards                *string `gorm:"type:text" json:"awards"`

	// Stripe connected-account fields
	StripeAccountID          *string `gorm:"size:255" json:"-"`
	StripeAccountStatus      *string `gorm:"size:50" json:"-"`
	StripeOnboardingComplete *bool   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsProducer reports whether the row currently carries a producer profile.
func (u *User) IsProducer() bool {
	return u.Siret != nil
}

// IsRestaurant reports whether the row currently carries a restaurant profile.
func (u *User) IsRestaurant() bool {
	return u.ServiceType != nil || u.CuisineType != nil
}
