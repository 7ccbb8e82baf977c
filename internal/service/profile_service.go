package service

import (
	"strings"

	"jianstory-server/internal/domain"
)

const maxBioLength = 500

type profileService struct {
	profileRepo domain.ProfileRepository
	logger      domain.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo domain.ProfileRepository, logger domain.Logger) domain.ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (s *profileService) GetProfile(userID string, token string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.profileRepo.GetByID(userID, token)
}

func (s *profileService) UpdateProfile(userID string, update domain.ProfileUpdate, token string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, &domain.ValidationError{Field: "username", Message: "username cannot be empty"}
		}
		update.Username = &username
	}
	if update.Bio != nil && len(*update.Bio) > maxBioLength {
		return nil, &domain.ValidationError{Field: "bio", Message: "bio is too long"}
	}

	return s.profileRepo.Update(userID, update, token)
}
