package domain

import "time"

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

// Profile represents a user's public profile row.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

type ProfileRepository interface {
	GetByID(userID string, token string) (*Profile, error)
	Update(userID string, update ProfileUpdate, token string) (*Profile, error)
}

type ProfileService interface {
	GetProfile(userID string, token string) (*Profile, error)
	UpdateProfile(userID string, update ProfileUpdate, token string) (*Profile, error)
}
