package postgrest

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Supabase API key roles.
const (
	RoleAnon        = "anon"
	RoleServiceRole = "service_role"
)

// KeyInfo describes a Supabase API key.
type KeyInfo struct {
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the key has an expiry before now.
func (k KeyInfo) Expired(now time.Time) bool {
	return !k.ExpiresAt.IsZero() && now.After(k.ExpiresAt)
}

type keyClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// InspectKey reads the claims of a Supabase API key. The signature is not
// verified; only the server holding the JWT secret can do that.
func InspectKey(key string) (KeyInfo, error) {
	var claims keyClaims
	if _, _, err := jwt.NewParser().ParseUnverified(key, &claims); err != nil {
		return KeyInfo{}, fmt.Errorf("parse api key: %w", err)
	}
	if claims.Role == "" {
		return KeyInfo{}, fmt.Errorf("api key has no role claim")
	}

	info := KeyInfo{Role: claims.Role}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
