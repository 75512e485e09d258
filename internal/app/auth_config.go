package app

import iauth "github.com/ivoicehq/ivoice-server/internal/auth"

// JWTServiceConfig converts AuthConfig to the JWT service representation.
func (c AuthConfig) JWTServiceConfig() iauth.JWTConfig {
	return iauth.JWTConfig{
		Secret: c.JWT.Secret,
		Issuer: c.JWT.Issuer,
		TTL:    c.JWT.TTL,
	}
}
