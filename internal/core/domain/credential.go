package domain

// OAuth scopes requested for each API surface.
const (
	ScopeSpreadsheets  = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDrive         = "https://www.googleapis.com/auth/drive"
	ScopeDriveFile     = "https://www.googleapis.com/auth/drive.file"
	ScopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"
)

// Surface identifies one Google API family served by the proxy.
type Surface string

const (
	// SurfaceSheets is the Google Sheets v4 API.
	SurfaceSheets Surface = "sheets"
	// SurfaceDrive is the Google Drive v3 API.
	SurfaceDrive Surface = "drive"
)

// Surfaces lists every supported surface in a stable order.
func Surfaces() []Surface {
	return []Surface{SurfaceSheets, SurfaceDrive}
}

// Scopes returns the fixed scope set for the surface.
// Unknown surfaces have no scopes.
func (s Surface) Scopes() []string {
	switch s {
	case SurfaceSheets:
		return []string{ScopeSpreadsheets, ScopeDrive, ScopeDriveFile}
	case SurfaceDrive:
		return []string{ScopeDrive, ScopeDriveFile, ScopeDriveReadonly}
	default:
		return nil
	}
}

// IsValid reports whether s is a known surface.
func (s Surface) IsValid() bool {
	return s == SurfaceSheets || s == SurfaceDrive
}

func (s Surface) String() string {
	return string(s)
}

// CredentialSource describes where a credential was found.
type CredentialSource string

const (
	// CredentialSourceEnv is a key file named by an environment variable.
	CredentialSourceEnv CredentialSource = "env"
	// CredentialSourceConfig is a key file listed in config.toml.
	CredentialSourceConfig CredentialSource = "config"
	// CredentialSourceDefault is a key file at one of the built-in locations.
	CredentialSourceDefault CredentialSource = "default"
	// CredentialSourceInline is a key assembled from environment variables.
	CredentialSourceInline CredentialSource = "inline"
)

// Credential is a service-account key used to authorise API clients.
// Either Path is set, or the inline fields are.
// A Credential is resolved once at startup and never changes.
type Credential struct {
	// Path is the service-account JSON file on disk.
	Path string

	// ClientEmail, PrivateKey and ProjectID carry an inline key.
	ClientEmail string
	PrivateKey  string
	ProjectID   string

	// Source records which candidate produced the credential.
	Source CredentialSource

	// Origin is the environment variable or config entry that matched, if any.
	Origin string
}

// IsInline reports whether the credential carries an inline key rather than a file.
func (c Credential) IsInline() bool {
	return c.Path == "" && c.ClientEmail != "" && c.PrivateKey != ""
}

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool {
	return c.Path == "" && !c.IsInline()
}

// Identity returns a stable key for the credential, used to memoise clients.
func (c Credential) Identity() string {
	if c.IsInline() {
		return "inline:" + c.ClientEmail
	}
	return "file:" + c.Path
}

// Describe returns a human-readable location without secret material.
func (c Credential) Describe() string {
	switch {
	case c.IsInline():
		return c.ClientEmail + " (inline)"
	case c.Path != "":
		return c.Path
	default:
		return "none"
	}
}
