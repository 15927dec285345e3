// Package auth resolves the username every library request acts as.
//
// It supports two modes:
//   - "none": no authentication (default), every request acts as AUTH_DEFAULT_USERNAME
//   - "token": a Bearer API token is hashed and resolved to a profile
//
// # Configuration
//
//	AUTH_MODE=none                  # Default
//	AUTH_MODE=token                 # Require "Authorization: Bearer <token>"
//	AUTH_DEFAULT_USERNAME=admin     # Username used in "none" mode
//	AUTH_TOKEN_EXPIRY=720h          # API token expiry (30 days default, 0 disables)
//
// Tokens are issued with the issue-token command. Only their SHA-256 hash is stored.
//
// # Usage
//
//	authService := auth.NewService(profilesRepo, cfg.Auth)
//	router.Use(auth.NewMiddleware(authService, cfg.Auth, log).Handler())
//
// Extract the username in handlers:
//
//	username := auth.GetUsername(c)
package auth
