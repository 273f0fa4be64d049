package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/models"
	"github.com/locavor/account-service/internal/repository"
	"gorm.io/gorm"
)

// UserStore is the persistence boundary for user rows. The gorm-backed
// repository is the production implementation; tests substitute doubles to
// drive storage conditions that a live database will not produce on demand.
type UserStore interface {
	FindByKeycloakID(ctx context.Context, keycloakID uuid.UUID) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, u *models.User) error
}

type UserService struct {
	users       UserStore
	professions *repository.ProfessionRepository
}

func NewUserService(users UserStore, professions *repository.ProfessionRepository) *UserService {
	return &UserService{users: users, professions: professions}
}

// getOrCreateUser is the single get-or-create path for every operation that
// may be the first reference to an identity. The check-then-insert is not
// atomic across concurrent callers; a losing insert surfaces as
// gorm.ErrDuplicatedKey and is recovered by re-reading the winner's row.
func (s *UserService) getOrCreateUser(ctx context.Context, keycloakID uuid.UUID) (*models.User, error) {
	u, err := s.users.FindByKeycloakID(ctx, keycloakID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &models.User{KeycloakID: keycloakID, Professions: []models.Profession{}}
	err = s.users.Create(ctx, created)
	if err == nil {
		slog.Info("user created", "user_id", created.ID, "keycloak_id", keycloakID)
		return created, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the first-materialization race; the winner's row must exist now.
	u, err = s.users.FindByKeycloakID(ctx, keycloakID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("user with keycloak id %s missing after duplicate-key insert", keycloakID)
	}
	return u, err
}

// GetOrCreate resolves an identity to its local row, materializing it on
// first reference. Used by internal service-to-service calls.
func (s *UserService) GetOrCreate(ctx context.Context, keycloakID uuid.UUID) (*dto.UserProfileResponse, error) {
	u, err := s.getOrCreateUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// RegisterIdentity handles the identity-provider provisioning notification.
func (s *UserService) RegisterIdentity(ctx context.Context, keycloakID uuid.UUID) (*dto.UserProfileResponse, error) {
	return s.GetOrCreate(ctx, keycloakID)
}

func (s *UserService) GetProfile(ctx context.Context, keycloakID uuid.UUID) (*dto.UserProfileResponse, error) {
	u, err := s.findByKeycloakID(ctx, keycloakID, "user")
	if err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

func (s *UserService) GetKeycloakIDByUserID(ctx context.Context, userID int64) (*dto.KeycloakIDResponse, error) {
	u, err := s.findByID(ctx, userID, "user")
	if err != nil {
		return nil, err
	}
	return &dto.KeycloakIDResponse{UserID: u.ID, KeycloakID: u.KeycloakID.String()}, nil
}

// UpdatePersonalInfo overwrites the five common fields. Absent request
// fields overwrite stored values with null: full replace, not a patch.
func (s *UserService) UpdatePersonalInfo(ctx context.Context, keycloakID uuid.UUID, req *dto.UpdatePersonalInfoRequest) (*dto.UserProfileResponse, error) {
	u, err := s.getOrCreateUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	applyCommonFields(u, req)
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// UpsertRestaurant creates or replaces the restaurant profile and clears
// any producer fields, including the profession set.
func (s *UserService) UpsertRestaurant(ctx context.Context, keycloakID uuid.UUID, req *dto.RestaurantProfileRequest) (*dto.UserProfileResponse, error) {
	u, err := s.getOrCreateUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	applyCommonFields(u, &req.UpdatePersonalInfoRequest)
	applyRestaurantFields(u, req)
	clearProducerFields(u)
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// UpsertProducer creates or replaces the producer profile, synchronizes the
// profession set and clears any restaurant fields.
func (s *UserService) UpsertProducer(ctx context.Context, keycloakID uuid.UUID, req *dto.ProducerProfileRequest) (*dto.UserProfileResponse, error) {
	u, err := s.getOrCreateUser(ctx, keycloakID)
	if err != nil {
		return nil, err
	}
	applyCommonFields(u, &req.UpdatePersonalInfoRequest)
	applyProducerFields(u, req)
	if err := s.syncProfessions(ctx, u, req.ProfessionIDs); err != nil {
		return nil, err
	}
	clearRestaurantFields(u)
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// UpdateRestaurantByID is the trusted ID-scoped update used by internal
// callers. It does not enforce type exclusivity: the caller is expected to
// send a row that is already consistent.
func (s *UserService) UpdateRestaurantByID(ctx context.Context, id int64, req *dto.RestaurantProfileRequest) (*dto.UserProfileResponse, error) {
	u, err := s.findByID(ctx, id, "restaurant")
	if err != nil {
		return nil, err
	}
	applyCommonFields(u, &req.UpdatePersonalInfoRequest)
	applyRestaurantFields(u, req)
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// UpdateProducerByID is the trusted ID-scoped variant of UpsertProducer;
// like UpdateRestaurantByID it skips cross-type clearing.
func (s *UserService) UpdateProducerByID(ctx context.Context, id int64, req *dto.ProducerProfileRequest) (*dto.UserProfileResponse, error) {
	u, err := s.findByID(ctx, id, "producer")
	if err != nil {
		return nil, err
	}
	applyCommonFields(u, &req.UpdatePersonalInfoRequest)
	applyProducerFields(u, req)
	if err := s.syncProfessions(ctx, u, req.ProfessionIDs); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

func (s *UserService) GetRestaurantProfile(ctx context.Context, id int64) (*dto.RestaurantPublicProfileResponse, error) {
	u, err := s.findByID(ctx, id, "restaurant")
	if err != nil {
		return nil, err
	}
	if !u.IsRestaurant() {
		return nil, apperr.BadRequest("user with id %d is not a restaurant", id)
	}
	return mapRestaurantPublicProfile(u), nil
}

func (s *UserService) GetProducerProfile(ctx context.Context, id int64) (*dto.ProducerPublicProfileResponse, error) {
	u, err := s.findByID(ctx, id, "producer")
	if err != nil {
		return nil, err
	}
	if !u.IsProducer() {
		return nil, apperr.BadRequest("user with id %d is not a producer", id)
	}
	return mapProducerPublicProfile(u), nil
}

func (s *UserService) DeleteRestaurantByKeycloakID(ctx context.Context, keycloakID uuid.UUID) error {
	u, err := s.findByKeycloakID(ctx, keycloakID, "restaurant")
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, u)
}

func (s *UserService) DeleteRestaurantByID(ctx context.Context, id int64) error {
	u, err := s.findByID(ctx, id, "restaurant")
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, u)
}

func (s *UserService) DeleteProducerByKeycloakID(ctx context.Context, keycloakID uuid.UUID) error {
	u, err := s.findByKeycloakID(ctx, keycloakID, "producer")
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, u)
}

func (s *UserService) DeleteProducerByID(ctx context.Context, id int64) error {
	u, err := s.findByID(ctx, id, "producer")
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, u)
}

// AddProfession adds a catalog entry to a producer's set. Adding an already
// held profession is a no-op.
func (s *UserService) AddProfession(ctx context.Context, keycloakID uuid.UUID, professionID int64) (*dto.UserProfileResponse, error) {
	u, err := s.findByKeycloakID(ctx, keycloakID, "user")
	if err != nil {
		return nil, err
	}
	if !u.IsProducer() {
		return nil, apperr.BadRequest("user is not a producer; create a producer profile first")
	}

	p, err := s.professions.FindByID(ctx, professionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadRequest("profession not found with id %d", professionID)
	}
	if err != nil {
		return nil, err
	}

	held := false
	for _, existing := range u.Professions {
		if existing.ID == p.ID {
			held = true
			break
		}
	}
	if !held {
		u.Professions = append(u.Professions, *p)
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// RemoveProfession removes a catalog entry from a producer's set. Removing
// an unheld profession is a no-op.
func (s *UserService) RemoveProfession(ctx context.Context, keycloakID uuid.UUID, professionID int64) (*dto.UserProfileResponse, error) {
	u, err := s.findByKeycloakID(ctx, keycloakID, "user")
	if err != nil {
		return nil, err
	}
	if !u.IsProducer() {
		return nil, apperr.BadRequest("user is not a producer")
	}

	kept := make([]models.Profession, 0, len(u.Professions))
	for _, p := range u.Professions {
		if p.ID != professionID {
			kept = append(kept, p)
		}
	}
	u.Professions = kept
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return mapUserProfile(u), nil
}

// syncProfessions applies the profession-set replacement policy: nil leaves
// the set untouched, empty clears it, non-empty validates every ID against
// the catalog and replaces the whole set or fails without partial effect.
func (s *UserService) syncProfessions(ctx context.Context, u *models.User, ids *[]int64) error {
	if ids == nil {
		return nil
	}
	if len(*ids) == 0 {
		u.Professions = []models.Profession{}
		return nil
	}

	found, err := s.professions.FindByIDs(ctx, *ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Profession, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var invalid []int64
	set := make([]models.Profession, 0, len(*ids))
	for _, id := range *ids {
		p, ok := byID[id]
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		set = append(set, p)
	}
	if len(invalid) > 0 {
		return apperr.BadRequest("invalid profession ids: %v", invalid)
	}

	u.Professions = set
	return nil
}

func (s *UserService) findByKeycloakID(ctx context.Context, keycloakID uuid.UUID, kind string) (*models.User, error) {
	u, err := s.users.FindByKeycloakID(ctx, keycloakID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("%s not found with keycloak id %s", kind, keycloakID)
	}
	return u, err
}

func (s *UserService) findByID(ctx context.Context, id int64, kind string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("%s not found with id %d", kind, id)
	}
	return u, err
}

func applyCommonFields(u *models.User, req *dto.UpdatePersonalInfoRequest) {
	u.Biography = req.Biography
	u.Website = req.Website
	u.Facebook = req.Facebook
	u.Instagram = req.Instagram
	u.Linkedin = req.Linkedin
}

func applyRestaurantFields(u *models.User, req *dto.RestaurantProfileRequest) {
	u.ServiceType = req.ServiceType
	u.CuisineType = req.CuisineType
	u.HygieneCertifications = req.HygieneCertifications
	u.Awards = req.Awards
}

func applyProducerFields(u *models.User, req *dto.ProducerProfileRequest) {
	u.Siret = req.Siret
	u.OrganizationType = req.OrganizationType
	u.InstallationYear = req.InstallationYear
	u.EmployeesCount = req.EmployeesCount
}

func clearProducerFields(u *models.User) {
	u.Siret = nil
	u.OrganizationType = nil
	u.InstallationYear = nil
	u.EmployeesCount = nil
	u.Professions = []models.Profession{}
}

func clearRestaurantFields(u *models.User) {
	u.ServiceType = nil
	u.CuisineType = nil
	u.HygieneCertifications = nil
	u.Awards = nil
}

func mapProfessions(professions []models.Profession) []dto.ProfessionResponse {
	out := make([]dto.ProfessionResponse, 0, len(professions))
	for _, p := range professions {
		out = append(out, dto.ProfessionResponse{ID: p.ID, Code: p.Code, NameEn: p.NameEn, NameFr: p.NameFr})
	}
	return out
}

func mapBaseProfile(u *models.User) dto.BaseProfileResponse {
	return dto.BaseProfileResponse{
		ID:        u.ID,
		Biography: u.Biography,
		Website:   u.Website,
		Facebook:  u.Facebook,
		Instagram: u.Instagram,
		Linkedin:  u.Linkedin,
	}
}

func mapUserProfile(u *models.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		BaseProfileResponse: mapBaseProfile(u),
		KeycloakID:          u.KeycloakID.String(),

		Siret:            u.Siret,
		OrganizationType: u.OrganizationType,
		InstallationYear: u.InstallationYear,
		EmployeesCount:   u.EmployeesCount,
		Professions:      mapProfessions(u.Professions),

		ServiceType:           u.ServiceType,
		CuisineType:           u.CuisineType,
		HygieneCertifications: u.HygieneCertifications,
		Awards:                u.Awards,

		StripeAccountID:          u.StripeAccountID,
		StripeAccountStatus:      u.StripeAccountStatus,
		StripeOnboardingComplete: u.StripeOnboardingComplete,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func mapRestaurantPublicProfile(u *models.User) *dto.RestaurantPublicProfileResponse {
	return &dto.RestaurantPublicProfileResponse{
		BaseProfileResponse:   mapBaseProfile(u),
		ServiceType:           u.ServiceType,
		CuisineType:           u.CuisineType,
		HygieneCertifications: u.HygieneCertifications,
		Awards:                u.Awards,
	}
}

func mapProducerPublicProfile(u *models.User) *dto.ProducerPublicProfileResponse {
	return &dto.ProducerPublicProfileResponse{
		BaseProfileResponse: mapBaseProfile(u),
		Siret:               u.Siret,
		OrganizationType:    u.OrganizationType,
		InstallationYear:    u.InstallationYear,
		EmployeesCount:      u.EmployeesCount,
		Professions:         mapProfessions(u.Professions),
	}
}
