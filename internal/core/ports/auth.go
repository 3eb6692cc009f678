package ports

import "context"

// AuthGateway is the remote identity service. Login returns the issued
// bearer credential; Register creates the account without authenticating.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
}

// CredentialStore persists the current bearer credential across process
// restarts. Get returns the empty string when no credential is stored.
// No validation happens here; any string may be stored.
type CredentialStore interface {
	Get() (string, error)
	Set(credential string) error
	Clear() error
}
