package entity

import (
	"time"
)

// TokenType distinguishes the purpose of a stored token.
type TokenType string

const (
	TokenTypeEmailVerification TokenType = "email_verification"
	TokenTypeRefresh           TokenType = "refresh"
)

// Token is a server-side token record. Only a hash of the plain token is
// stored; the verifier is the lookup key sent alongside it.
type Token struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenType TokenType `bson:"token_type" json:"token_type"`
	TokenHash string    `bson:"token_hash" json:"-"`
	Verifier  string    `bson:"verifier" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Revoke    bool      `bson:"revoke" json:"revoke"`
}
