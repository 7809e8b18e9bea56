package mcp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gproxy/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/core/services"
)

// fixedCreds implements driving.CredentialService with one key file.
type fixedCreds struct {
	ok bool
}

func (f fixedCreds) Resolve() (domain.Credential, bool) {
	if !f.ok {
		return domain.Credential{}, false
	}
	return domain.Credential{Path: "/keys/sa.json", Source: domain.CredentialSourceEnv, Origin: "GOOGLE_APPLICATION_CREDENTIALS"}, true
}

func (f fixedCreds) ResolvePath() string {
	cred, _ := f.Resolve()
	return cred.Path
}

func (f fixedCreds) Candidates() []driving.Candidate {
	return []driving.Candidate{
		{Origin: "GOOGLE_APPLICATION_CREDENTIALS", Source: domain.CredentialSourceEnv, Path: "/keys/sa.json", Exists: f.ok},
		{Origin: "default", Source: domain.CredentialSourceDefault, Path: "./service-account.json"},
	}
}

func newTestServer(t *testing.T, configured bool) (*Server, *memory.Workspace) {
	t.Helper()

	ws := memory.NewWorkspace()
	creds := fixedCreds{ok: configured}
	cache := services.NewClientCache(creds, ws, nil)

	server, err := NewServer(&Ports{
		Sheets:      services.NewSheetsProxy(cache, nil),
		Drive:       services.NewDriveProxy(cache, nil),
		Credentials: creds,
	})
	require.NoError(t, err)
	return server, ws
}
