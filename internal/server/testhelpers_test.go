package server

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/limmers2015/Car-Part-Connection/internal/config"
	"github.com/limmers2015/Car-Part-Connection/internal/domain"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
)

// --- fakes -----------------------------------------------------------------

type fakeUserRepo struct {
	users     map[string]*domain.User // by email
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, email, passwordHash, role string) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if _, exists := f.users[email]; exists {
		return uuid.Nil, domain.ErrEmailExists
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	return user.ID, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeVehicleRepo struct {
	byUser    map[uuid.UUID][]domain.Vehicle
	listErr   error
	createErr error
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{byUser: make(map[uuid.UUID][]domain.Vehicle)}
}

func (f *fakeVehicleRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Vehicle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	vehicles := f.byUser[userID]
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, nil
}

func (f *fakeVehicleRepo) Create(ctx context.Context, userID uuid.UUID, nv domain.NewVehicle) (*domain.Vehicle, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	v := domain.Vehicle{
		ID:        uuid.New(),
		Year:      nv.Year,
		Make:      nv.Make,
		Model:     nv.Model,
		Nickname:  nv.Nickname,
		CreatedAt: time.Now(),
	}
	// Newest first, matching the repository's ordering.
	f.byUser[userID] = append([]domain.Vehicle{v}, f.byUser[userID]...)
	return &v, nil
}

type fakeSessionStore struct {
	sessions  map[string]string // token -> user id
	createErr error
	getErr    error
	deleteErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	token := uuid.NewString()
	f.sessions[token] = userID
	return token, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, token string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	userID, ok := f.sessions[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, token)
	return nil
}

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Verify(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

// --- harness ---------------------------------------------------------------

type testEnv struct {
	server   *Server
	users    *fakeUserRepo
	vehicles *fakeVehicleRepo
	sessions *fakeSessionStore
	hasher   *fakeHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    newFakeUserRepo(),
		vehicles: newFakeVehicleRepo(),
		sessions: newFakeSessionStore(),
		hasher:   &fakeHasher{},
	}
	cfg := &config.Config{
		AppEnv:                "test",
		SessionCookieName:     "cpc_session",
		SessionTTLSeconds:     604800,
		SessionCookieSameSite: "Lax",
	}
	env.server = New(cfg, env.users, env.vehicles, env.sessions, env.hasher)
	return env
}

type testResponse struct {
	status  int
	headers []string
	body    string
}

// do dispatches a request through the router and parses the wire output.
func (e *testEnv) do(t *testing.T, req *httpd.Request) testResponse {
	t.Helper()

	var buf bytes.Buffer
	res := httpd.NewResponse(&buf)
	e.server.Router().Dispatch(req, res)

	head, body, found := strings.Cut(buf.String(), "\r\n\r\n")
	require.True(t, found, "response must contain a header terminator")

	lines := strings.Split(head, "\r\n")
	parts := strings.SplitN(lines[0], " ", 3)
	require.Len(t, parts, 3, "malformed status line %q", lines[0])
	status, err := strconv.Atoi(parts[1])
	require.NoError(t, err)

	return testResponse{status: status, headers: lines[1:], body: body}
}

// header returns the first header with the given name, or "".
func (r testResponse) header(name string) string {
	for _, line := range r.headers {
		if k, v, ok := strings.Cut(line, ":"); ok && strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// signUp runs a successful signup and returns the issued session token.
func (e *testEnv) signUp(t *testing.T, email, password string) string {
	t.Helper()

	resp := e.do(t, &httpd.Request{
		Method: "POST",
		Path:   "/api/signup",
		Body:   []byte(`{"email":"` + email + `","password":"` + password + `"}`),
	})
	require.Equal(t, 201, resp.status)

	cookie := resp.header("Set-Cookie")
	require.NotEmpty(t, cookie)
	token, _, _ := strings.Cut(strings.TrimPrefix(cookie, "cpc_session="), ";")
	require.NotEmpty(t, token)
	return token
}
