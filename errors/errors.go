package errors

import "fmt"

var (
	ErrStoreNotConfigured = fmt.Errorf("message store is not configured")
	ErrSchemaMissing      = fmt.Errorf("messages table does not exist")
	ErrUnknownBackend     = fmt.Errorf("unknown shoutbox backend")
	ErrInvalidPayload     = fmt.Errorf("invalid payload")
	ErrIDRequired         = fmt.Errorf("id required")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
	ErrNoAccessToken      = fmt.Errorf("no access token available")
	ErrNoRefreshToken     = fmt.Errorf("no refresh token configured")
	ErrNoClientCredential = fmt.Errorf("missing spotify client id or secret")
	ErrLyricsNotFound     = fmt.Errorf("lyrics not found")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidToken       = fmt.Errorf("invalid token")
)
