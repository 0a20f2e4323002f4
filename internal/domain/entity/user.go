package entity

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Username       string     `bson:"username" json:"username"`
	Email          string     `bson:"email" json:"email"`
	PasswordHash   string     `bson:"password_hash" json:"-"`
	Admin          bool       `bson:"admin" json:"admin"`
	IsVerified     bool       `bson:"is_verified" json:"is_verified"`
	SuspendedUntil *time.Time `bson:"suspended_until,omitempty" json:"suspended_until,omitempty"`
	AvatarURL      string     `bson:"avatar_url" json:"avatar_url"`
	Bio            string     `bson:"bio,omitempty" json:"bio,omitempty"`
	// SharedRecipeIDs holds recipes other users shared to this account.
	// Owned recipes are not stored here; they are derived from Recipe.CreatorID.
	SharedRecipeIDs []string  `bson:"shared_recipe_ids,omitempty" json:"shared_recipe_ids,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// IsSuspended reports whether the user is currently suspended.
func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedUntil != nil && now.Before(*u.SuspendedUntil)
}
