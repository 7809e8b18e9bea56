package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// --- Credentials ---

// staticCredentials implements driving.CredentialService with a fixed answer.
type staticCredentials struct {
	cred domain.Credential
	ok   bool
}

func (s staticCredentials) Resolve() (domain.Credential, bool) { return s.cred, s.ok }
func (s staticCredentials) ResolvePath() string              { return s.cred.Path }
func (s staticCredentials) Candidates() []driving.Candidate  { return nil }

func configured() staticCredentials {
	return staticCredentials{cred: domain.Credential{Path: "/keys/sa.json"}, ok: true}
}

// --- Google clients ---

// mockSheetsClient implements driven.SheetsClient.
type mockSheetsClient struct {
	err error

	mu      sync.Mutex
	calls   []string
	written domain.ValueMatrix
}

func (m *mockSheetsClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockSheetsClient) GetValues(_ context.Context, _, rng string) (*domain.ValueRange, error) {
	m.record("GetValues")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ValueRange{Range: rng, MajorDimension: domain.DimensionRows, Values: domain.ValueMatrix{{"a"}}}, nil
}

func (m *mockSheetsClient) UpdateValues(
	_ context.Context, id, rng string, values domain.ValueMatrix,
) (*domain.UpdateResult, error) {
	m.record("UpdateValues")
	if m.err != nil {
		return nil, m.err
	}
	m.written = values
	return &domain.UpdateResult{SpreadsheetID: id, UpdatedRange: rng, UpdatedRows: int64(values.Rows())}, nil
}

func (m *mockSheetsClient) AppendValues(
	_ context.Context, id, rng string, values domain.ValueMatrix,
) (*domain.AppendResult, error) {
	m.record("AppendValues")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AppendResult{SpreadsheetID: id, TableRange: rng}, nil
}

func (m *mockSheetsClient) ClearValues(_ context.Context, id, rng string) (*domain.ClearResult, error) {
	m.record("ClearValues")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ClearResult{SpreadsheetID: id, ClearedRange: rng}, nil
}

func (m *mockSheetsClient) GetSpreadsheet(_ context.Context, id string) (*domain.SpreadsheetMetadata, error) {
	m.record("GetSpreadsheet")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SpreadsheetMetadata{SpreadsheetID: id}, nil
}

func (m *mockSheetsClient) BatchGetValues(_ context.Context, id string, ranges []string) (*domain.BatchValueRanges, error) {
	m.record("BatchGetValues")
	if m.err != nil {
		return nil, m.err
	}
	out := &domain.BatchValueRanges{SpreadsheetID: id}
	for _, r := range ranges {
		out.ValueRanges = append(out.ValueRanges, domain.ValueRange{Range: r})
	}
	return out, nil
}

// mockDriveClient implements driven.DriveClient.
type mockDriveClient struct {
	err error

	lastFolder string
	lastRole   domain.PermissionRole
	lastUpload domain.Upload
	deleted    []string
}

func (m *mockDriveClient) ListFiles(_ context.Context, folderID string) ([]domain.File, error) {
	m.lastFolder = folderID
	if m.err != nil {
		return nil, m.err
	}
	return []domain.File{{ID: "f1", Name: "one"}}, nil
}

func (m *mockDriveClient) GetFile(_ context.Context, fileID string) (*domain.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.File{ID: fileID}, nil
}

func (m *mockDriveClient) DeleteFile(_ context.Context, fileID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, fileID)
	return nil
}

func (m *mockDriveClient) CreatePermission(
	_ context.Context, _, email string, role domain.PermissionRole,
) (*domain.Permission, error) {
	m.lastRole = role
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Permission{ID: "p1", Type: domain.PermissionTypeUser, Role: role, EmailAddress: email}, nil
}

func (m *mockDriveClient) RenameFile(_ context.Context, fileID, name string) (*domain.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.File{ID: fileID, Name: name}, nil
}

func (m *mockDriveClient) CreateFolder(_ context.Context, name, parentID string) (*domain.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	f := &domain.File{ID: "folder-1", Name: name, MimeType: domain.MimeTypeFolder}
	if parentID != "" {
		f.Parents = []string{parentID}
	}
	return f, nil
}

func (m *mockDriveClient) UploadFile(_ context.Context, upload domain.Upload) (*domain.File, error) {
	m.lastUpload = upload
	if m.err != nil {
		return nil, m.err
	}
	return &domain.File{ID: "up-1", Name: upload.Name, MimeType: upload.MimeType}, nil
}

// mockFactory implements driven.ClientFactory and counts constructions.
type mockFactory struct {
	sheets    driven.SheetsClient
	drive     driven.DriveClient
	sheetsErr error
	driveErr  error
	delay     time.Duration

	sheetsBuilds atomic.Int32
	driveBuilds  atomic.Int32
}

func (f *mockFactory) NewSheetsClient(_ context.Context, _ domain.Credential) (driven.SheetsClient, error) {
	f.sheetsBuilds.Add(1)
	time.Sleep(f.delay)
	if f.sheetsErr != nil {
		return nil, f.sheetsErr
	}
	if f.sheets != nil {
		return f.sheets, nil
	}
	return &mockSheetsClient{}, nil
}

func (f *mockFactory) NewDriveClient(_ context.Context, _ domain.Credential) (driven.DriveClient, error) {
	f.driveBuilds.Add(1)
	time.Sleep(f.delay)
	if f.driveErr != nil {
		return nil, f.driveErr
	}
	if f.drive != nil {
		return f.drive, nil
	}
	return &mockDriveClient{}, nil
}

// recordingObserver implements driven.ProxyObserver.
type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	inits []string
}

func (o *recordingObserver) ObserveCall(surface domain.Surface, op string, outcome driven.CallOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, string(surface)+"/"+op+"/"+string(outcome))
}

func (o *recordingObserver) ObserveClientInit(surface domain.Surface, outcome driven.CallOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inits = append(o.inits, string(surface)+"/"+string(outcome))
}

// --- Auth ---

// mockUserStore implements driven.UserStore.
type mockUserStore struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]domain.User)}
}

func (m *mockUserStore) Save(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *mockUserStore) Get(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserStore) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, email)
	return nil
}

func (m *mockUserStore) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// mockSessionStore implements driven.SessionStore.
type mockSessionStore struct {
	mu         sync.Mutex
	sessions   map[string]domain.Session
	expiredErr error
	sweeps     atomic.Int32
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionStore) Save(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *mockSessionStore) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *mockSessionStore) DeleteByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.sweeps.Add(1)
	if m.expiredErr != nil {
		return 0, m.expiredErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for token, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *mockSessionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// plainHasher implements driven.PasswordHasher with a reversible prefix.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// sequenceTokens implements driven.TokenGenerator with predictable values.
type sequenceTokens struct {
	n atomic.Int32
}

func (s *sequenceTokens) NewID() string {
	return fmt.Sprintf("id-%d", s.n.Add(1))
}

func (s *sequenceTokens) NewToken() string {
	return fmt.Sprintf("token-%d", s.n.Add(1))
}

// --- Config & fixtures ---

// mockConfigStore implements driven.ConfigStore.
type mockConfigStore struct {
	data    map[string]any
	loadErr error
	loads   int
}

func newMockConfigStore(data map[string]any) *mockConfigStore {
	if data == nil {
		data = make(map[string]any)
	}
	return &mockConfigStore{data: data}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	s, _ := m.data[key].([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error {
	m.loads++
	return m.loadErr
}

func (m *mockConfigStore) Path() string { return "/tmp/config.toml" }

// mapFixtures implements driven.FixtureStore.
type mapFixtures map[string]string

func (m mapFixtures) Get(name string) (json.RawMessage, error) {
	raw, ok := m[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return json.RawMessage(raw), nil
}

func (m mapFixtures) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
