package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// ErrNoCredential is returned when a token source is requested for an empty credential.
var ErrNoCredential = errors.New("google: no credential")

// NewTokenSource creates an oauth2.TokenSource for a service account credential.
// File credentials are read and parsed on every call; inline credentials are
// assembled from the email and private key. The returned source caches tokens
// until they expire.
func NewTokenSource(ctx context.Context, cred domain.Credential, scopes ...string) (oauth2.TokenSource, error) {
	conf, err := jwtConfig(cred, scopes)
	if err != nil {
		return nil, err
	}
	return conf.TokenSource(ctx), nil
}

func jwtConfig(cred domain.Credential, scopes []string) (*jwt.Config, error) {
	switch {
	case cred.IsInline():
		return &jwt.Config{
			Email:      cred.ClientEmail,
			PrivateKey: []byte(cred.PrivateKey),
			Scopes:     scopes,
			TokenURL:   google.JWTTokenURL,
		}, nil
	case cred.Path != "":
		data, err := os.ReadFile(cred.Path)
		if err != nil {
			return nil, fmt.Errorf("read service account key: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse service account key: %w", err)
		}
		return conf, nil
	default:
		return nil, ErrNoCredential
	}
}
