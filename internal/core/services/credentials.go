package services

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Ensure CredentialResolver implements the interface.
var _ driving.CredentialService = (*CredentialResolver)(nil)

// Environment variables naming a service-account key file, in check order.
const (
	EnvApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvServiceAccountKeyPath  = "GOOGLE_SERVICE_ACCOUNT_KEY_PATH"
	EnvCredentialsPath        = "GOOGLE_CREDENTIALS_PATH"
)

// Environment variables carrying an inline service-account key.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvServiceAccountEmail = "GOOGLE_SERVICE_ACCOUNT_EMAIL"
	EnvPrivateKey          = "GOOGLE_PRIVATE_KEY"
	EnvProjectID           = "GOOGLE_PROJECT_ID"
)

// ServiceAccountFile is the key file name looked for in default locations.
const ServiceAccountFile = "service_account.json"

// ResolverOptions configures a CredentialResolver.
type ResolverOptions struct {
	// ConfigPaths are checked after the environment variables.
	ConfigPaths []string
	// ConfigDir adds <ConfigDir>/service_account.json to the defaults.
	ConfigDir string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Exists defaults to a regular-file check with os.Stat.
	Exists func(string) bool
}

// CredentialResolver finds the service-account key.
// The first resolution is kept for the lifetime of the resolver.
type CredentialResolver struct {
	opts ResolverOptions

	once sync.Once
	cred domain.Credential
	ok   bool
}

// NewCredentialResolver creates a resolver.
func NewCredentialResolver(opts ResolverOptions) *CredentialResolver {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Exists == nil {
		opts.Exists = fileExists
	}
	return &CredentialResolver{opts: opts}
}

// Resolve returns the first usable credential.
// "No credential" is a valid state; ok is false and the proxy runs degraded.
func (r *CredentialResolver) Resolve() (domain.Credential, bool) {
	r.once.Do(func() {
		r.cred, r.ok = r.resolve()
		if r.ok {
			logger.Info("Google credential resolved from %s: %s", r.cred.Source, r.cred.Describe())
		} else {
			logger.Warn("No Google credential found; Google routes will answer 503")
		}
	})
	return r.cred, r.ok
}

// ResolvePath returns the key file path or "".
func (r *CredentialResolver) ResolvePath() string {
	cred, ok := r.Resolve()
	if !ok {
		return ""
	}
	return cred.Path
}

// Candidates lists every file location in check order.
// Existence is checked now, not at the time of the first Resolve.
func (r *CredentialResolver) Candidates() []driving.Candidate {
	candidates := r.candidates()
	for i := range candidates {
		candidates[i].Exists = r.opts.Exists(candidates[i].Path)
	}
	return candidates
}

func (r *CredentialResolver) resolve() (domain.Credential, bool) {
	for _, c := range r.candidates() {
		if !r.opts.Exists(c.Path) {
			logger.Debug("credential candidate %s (%s) not found", c.Path, c.Origin)
			continue
		}
		return domain.Credential{Path: c.Path, Source: c.Source, Origin: c.Origin}, true
	}

	email := r.opts.Getenv(EnvServiceAccountEmail)
	key := r.opts.Getenv(EnvPrivateKey)
	if email != "" && key != "" {
		return domain.Credential{
			ClientEmail: email,
			PrivateKey:  strings.ReplaceAll(key, `\n`, "\n"),
			ProjectID:   r.opts.Getenv(EnvProjectID),
			Source:      domain.CredentialSourceInline,
			Origin:      EnvServiceAccountEmail,
		}, true
	}

	return domain.Credential{}, false
}

func (r *CredentialResolver) candidates() []driving.Candidate {
	var out []driving.Candidate
	for _, name := range []string{EnvApplicationCredentials, EnvServiceAccountKeyPath, EnvCredentialsPath} {
		if v := strings.TrimSpace(r.opts.Getenv(name)); v != "" {
			out = append(out, driving.Candidate{Origin: name, Source: domain.CredentialSourceEnv, Path: v})
		}
	}
	for _, p := range r.opts.ConfigPaths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, driving.Candidate{Origin: "config", Source: domain.CredentialSourceConfig, Path: p})
		}
	}
	for _, p := range DefaultCredentialPaths(r.opts.ConfigDir) {
		out = append(out, driving.Candidate{Origin: "default", Source: domain.CredentialSourceDefault, Path: p})
	}
	return out
}

// DefaultCredentialPaths returns the built-in key locations relative to the
// working directory, plus the config directory when it is set.
func DefaultCredentialPaths(configDir string) []string {
	paths := []string{
		filepath.Join(".", ServiceAccountFile),
		filepath.Join(".", "config", ServiceAccountFile),
		filepath.Join(".", "automation", "config", ServiceAccountFile),
	}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, ServiceAccountFile))
	}
	return paths
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
