package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"mentorapp/internal/auth"
	"mentorapp/internal/config"
	"mentorapp/internal/mentorship"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"
)

// fakeRepo keeps just enough state in memory for the handlers under test. Methods that are not
// overridden panic through the nil embedded Store.
type fakeRepo struct {
	repo.Store

	mu         sync.Mutex
	users      map[string]*models.User
	notes      map[string]*models.Note
	sessions   map[string]*models.Session
	messages   map[string][]*models.ChatMessage
	deletions  []*models.DeletionRequest
	promotions map[string]*models.PromotionRequest
	favorites  map[string]*models.Favorites
	// favoriteItems holds the marker documents, keyed by user and then by FavoriteItemID.
	favoriteItems map[string]map[string]*models.FavoriteItem
	scores        []*models.Score
	nextID        int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         map[string]*models.User{},
		notes:         map[string]*models.Note{},
		sessions:      map[string]*models.Session{},
		messages:      map[string][]*models.ChatMessage{},
		promotions:    map[string]*models.PromotionRequest{},
		favorites:     map[string]*models.Favorites{},
		favoriteItems: map[string]map[string]*models.FavoriteItem{},
	}
}

func (f *fakeRepo) id(prefix string) string {
	f.nextID++
	return prefix + strconv.Itoa(f.nextID)
}

func (f *fakeRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, qerrors.UserNotFoundError
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, qerrors.UserNotFoundError
}

func (f *fakeRepo) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return qerrors.DuplicateEmailError
		}
	}
	u.ID = f.id("u")
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.LastLogin = at
		u.Online = true
	}
	return nil
}

func (f *fakeRepo) SetOnline(_ context.Context, id string, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return qerrors.UserNotFoundError
	}
	u.Online = online
	return nil
}

func (f *fakeRepo) GetNote(_ context.Context, id string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return nil, qerrors.NoteNotFoundError
	}
	copied := *n
	return &copied, nil
}

func (f *fakeRepo) CreateNote(_ context.Context, n *models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.id("n")
	copied := *n
	f.notes[n.ID] = &copied
	return nil
}

func (f *fakeRepo) GetSession(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, qerrors.SessionNotFoundError
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) UpdateSessionStatus(_ context.Context, id string, from, to models.SessionStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return qerrors.SessionNotFoundError
	}
	if s.Status != from {
		return qerrors.StaleSessionError
	}
	s.Status = to
	if reason != "" {
		s.Reason = reason
	}
	return nil
}

func (f *fakeRepo) HasInProgressConflict(_ context.Context, s *models.Session) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.sessions {
		if other.ID != s.ID && other.MentorID == s.MentorID && other.Status == models.StatusInProgress && other.End.After(s.Start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) RateSession(_ context.Context, id string, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return qerrors.SessionNotFoundError
	}
	s.Rating = rating
	return nil
}

func (f *fakeRepo) AddChatMessage(_ context.Context, sessionID string, m *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.id("m")
	f.messages[sessionID] = append(f.messages[sessionID], m)
	return nil
}

func (f *fakeRepo) ListChatMessages(_ context.Context, sessionID string) ([]*models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.ChatMessage{}, f.messages[sessionID]...), nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeRepo) SetRole(_ context.Context, id string, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return qerrors.UserNotFoundError
	}
	u.Role = role
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return qerrors.UserNotFoundError
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) HasPendingDeletionRequest(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.deletions {
		if d.UserID == userID && d.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateDeletionRequest(_ context.Context, d *models.DeletionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.id("d")
	copied := *d
	f.deletions = append(f.deletions, &copied)
	return nil
}

func (f *fakeRepo) ListDeletionRequests(_ context.Context) ([]*models.DeletionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.DeletionRequest{}, f.deletions...), nil
}

func (f *fakeRepo) GetPromotionRequest(_ context.Context, id string) (*models.PromotionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.promotions[id]
	if !ok {
		return nil, qerrors.PromotionNotFoundError
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) ResolvePromotionRequest(_ context.Context, p *models.PromotionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.promotions[p.ID]
	if !ok {
		return qerrors.PromotionNotFoundError
	}
	if stored.Status != models.RequestPending {
		return qerrors.PromotionNotPendingError
	}
	copied := *p
	f.promotions[p.ID] = &copied
	return nil
}

func (f *fakeRepo) AddFavorite(_ context.Context, userID string, t models.FavoriteType, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	favs, ok := f.favorites[userID]
	if !ok {
		favs = &models.Favorites{UserID: userID, Terms: []string{}, Notes: []string{}}
		f.favorites[userID] = favs
	}
	ids := &favs.Terms
	if t == models.FavoriteNote {
		ids = &favs.Notes
	}
	if !contains(*ids, itemID) {
		*ids = append(*ids, itemID)
	}
	if f.favoriteItems[userID] == nil {
		f.favoriteItems[userID] = map[string]*models.FavoriteItem{}
	}
	f.favoriteItems[userID][models.FavoriteItemID(t, itemID)] = &models.FavoriteItem{Type: t, ItemID: itemID, CreatedAt: time.Now()}
	return nil
}

func (f *fakeRepo) RemoveFavorite(_ context.Context, userID string, t models.FavoriteType, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if favs, ok := f.favorites[userID]; ok {
		ids := &favs.Terms
		if t == models.FavoriteNote {
			ids = &favs.Notes
		}
		kept := []string{}
		for _, id := range *ids {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		*ids = kept
	}
	delete(f.favoriteItems[userID], models.FavoriteItemID(t, itemID))
	return nil
}

func (f *fakeRepo) GetFavorites(_ context.Context, userID string) (*models.Favorites, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	favs, ok := f.favorites[userID]
	if !ok {
		return &models.Favorites{UserID: userID, Terms: []string{}, Notes: []string{}}, nil
	}
	copied := *favs
	return &copied, nil
}

func (f *fakeRepo) ListFavoriteItems(_ context.Context, userID string) ([]*models.FavoriteItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []*models.FavoriteItem{}
	for _, item := range f.favoriteItems[userID] {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeRepo) ListQuizScores(_ context.Context, userID string) ([]*models.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores := []*models.Score{}
	for _, s := range f.scores {
		if s.UserID == userID {
			scores = append(scores, s)
		}
	}
	return scores, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func setup(t *testing.T) *fakeRepo {
	t.Helper()

	prevConfig, prevRepo, prevService, prevRevoker := config.Config, repo.Repository, mentorship.Default, auth.Revocations
	cfg := config.DefaultConfig()
	cfg.JWTSecret = "router-test-secret"
	config.Config = cfg

	fake := newFakeRepo()
	repo.Repository = fake
	mentorship.Default = mentorship.NewService(fake, 30*time.Minute, time.UTC)
	auth.Revocations = auth.NoopRevoker{}

	t.Cleanup(func() {
		config.Config, repo.Repository, mentorship.Default, auth.Revocations = prevConfig, prevRepo, prevService, prevRevoker
	})
	return fake
}

func tokenFor(t *testing.T, userID string, role models.Role) string {
	t.Helper()
	token, err := auth.NewAccessToken(userID, userID+"@example.com", role)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %q", rec.Body.String())
	}
	msg, _ := body["message"].(string)
	return msg
}

func TestRegisterThenLogin(t *testing.T) {
	fake := setup(t)
	h := AuthRoutes()

	rec := do(t, h, http.MethodPost, "/registeruser", "", map[string]string{
		"nome": "Ana", "email": "Ana@Example.com", "senha": "segredo1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var registered models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if registered.Token == "" || registered.User.Role != models.RoleUser {
		t.Errorf("Expected a token and role USER, got %+v", registered)
	}
	if strings.Contains(rec.Body.String(), "senha") {
		t.Errorf("Expected the password hash to stay out of the response, got %s", rec.Body.String())
	}
	if stored := fake.users[registered.User.ID]; stored.Email != "ana@example.com" {
		t.Errorf("Expected the email to be stored lowercase, got %q", stored.Email)
	}

	rec = do(t, h, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "senha": "segredo1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var loggedIn models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loggedIn); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if loggedIn.Token == "" || !loggedIn.User.Online {
		t.Errorf("Expected a token and an online user, got %+v", loggedIn)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)
	h := AuthRoutes()

	body := map[string]string{"nome": "Ana", "email": "ana@example.com", "senha": "segredo1"}
	if rec := do(t, h, http.MethodPost, "/registeruser", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/registeruser", "", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != qerrors.DuplicateEmailError.Error() {
		t.Errorf("Expected %q, got %q", qerrors.DuplicateEmailError.Error(), msg)
	}
}

func TestRegisterValidation(t *testing.T) {
	setup(t)

	rec := do(t, AuthRoutes(), http.MethodPost, "/registeruser", "", map[string]string{"nome": "Ana", "email": "ana@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setup(t)
	h := AuthRoutes()

	do(t, h, http.MethodPost, "/registeruser", "", map[string]string{"nome": "Ana", "email": "ana@example.com", "senha": "segredo1"})

	rec := do(t, h, http.MethodPost, "/login", "", map[string]string{"email": "ana@example.com", "senha": "errada"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token") {
		t.Errorf("Expected no token in the response, got %s", rec.Body.String())
	}
}

func TestRegisterAdminRequiresAdmin(t *testing.T) {
	setup(t)
	h := AuthRoutes()
	body := map[string]string{"nome": "Bea", "email": "bea@example.com", "senha": "segredo1"}

	if rec := do(t, h, http.MethodPost, "/registeradmin", "", body); rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/registeradmin", tokenFor(t, "u1", models.RoleUser), body); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a user, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/registeradmin", tokenFor(t, "admin", models.RoleAdmin), body); rec.Code != http.StatusCreated {
		t.Errorf("Expected 201 for an admin, got %d", rec.Code)
	}
}

func TestAuthFailuresAreUniform(t *testing.T) {
	setup(t)
	h := NotesRoutes()

	expired, err := auth.NewAccessToken("u1", "u1@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	config.Config.JWTSecret = "rotated"

	cases := map[string]string{
		"missing":    "",
		"garbage":    "not-a-jwt",
		"bad secret": expired,
	}
	var messages []string
	for name, token := range cases {
		rec := do(t, h, http.MethodGet, "/", token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: Expected 401, got %d", name, rec.Code)
		}
		messages = append(messages, decodeMessage(t, rec))
	}
	for _, msg := range messages[1:] {
		if msg != messages[0] {
			t.Errorf("Expected every failure to share one message, got %q and %q", messages[0], msg)
		}
	}
}

func TestNotesOwnerOnly(t *testing.T) {
	fake := setup(t)
	h := NotesRoutes()

	rec := do(t, h, http.MethodPost, "/", tokenFor(t, "owner", models.RoleUser), map[string]string{"titulo": "t", "conteudo": "c"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var note models.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if fake.notes[note.ID].UserID != "owner" {
		t.Errorf("Expected the note to belong to its creator, got %q", fake.notes[note.ID].UserID)
	}

	if rec := do(t, h, http.MethodGet, "/"+note.ID, tokenFor(t, "intruder", models.RoleUser), nil); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for another user, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/"+note.ID, tokenFor(t, "intruder", models.RoleAdmin), nil); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for an admin who does not own the note, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/"+note.ID, tokenFor(t, "owner", models.RoleUser), nil); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for the owner, got %d", rec.Code)
	}
}

func TestRateSessionOutOfRange(t *testing.T) {
	fake := setup(t)
	fake.sessions["s1"] = &models.Session{ID: "s1", UserID: "u1", MentorID: "m1", Status: models.StatusFinished}
	h := MentorshipRoutes()
	token := tokenFor(t, "u1", models.RoleUser)

	for _, score := range []int{0, 6} {
		rec := do(t, h, http.MethodPost, "/s1/avaliar", token, map[string]interface{}{"nota": score})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for nota %d, got %d", score, rec.Code)
		}
	}
	if fake.sessions["s1"].Rating != nil {
		t.Errorf("Expected no rating to be stored")
	}

	rec := do(t, h, http.MethodPost, "/s1/avaliar", token, map[string]interface{}{"nota": 5, "comentario": "ótimo"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if r := fake.sessions["s1"].Rating; r == nil || r.Score != 5 || r.RaterID != "u1" {
		t.Errorf("Expected a rating of 5 by u1, got %+v", r)
	}
}

func TestChatRequiresSessionInProgress(t *testing.T) {
	fake := setup(t)
	now := time.Now()
	fake.sessions["future"] = &models.Session{
		ID: "future", UserID: "u1", MentorID: "m1", Status: models.StatusAccepted,
		Start: now.Add(time.Hour), End: now.Add(90 * time.Minute),
	}
	fake.sessions["live"] = &models.Session{
		ID: "live", UserID: "u1", MentorID: "m1", Status: models.StatusAccepted,
		Start: now.Add(-5 * time.Minute), End: now.Add(25 * time.Minute),
	}
	h := ChatRoutes()
	token := tokenFor(t, "u1", models.RoleUser)
	body := map[string]string{"mensagem": "olá"}

	if rec := do(t, h, http.MethodPost, "/enviar/future", token, body); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 before the session starts, got %d", rec.Code)
	}

	rec := do(t, h, http.MethodPost, "/enviar/live", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201 during the session, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.sessions["live"].Status != models.StatusInProgress {
		t.Errorf("Expected the session to be moved to em_curso, got %s", fake.sessions["live"].Status)
	}

	if rec := do(t, h, http.MethodPost, "/enviar/live", tokenFor(t, "stranger", models.RoleUser), body); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a non participant, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/mensagens/live", tokenFor(t, "m1", models.RoleMentor), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var messages []*models.ChatMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(messages) != 1 || messages[0].Message != "olá" || messages[0].SenderID != "u1" {
		t.Errorf("Expected the one message from u1, got %+v", messages)
	}
}

func TestSessionListRequiresSelfOrAdmin(t *testing.T) {
	setup(t)

	rec := do(t, MentorshipRoutes(), http.MethodGet, "/usuario/u2", tokenFor(t, "u1", models.RoleUser), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}

func TestSecondDeletionRequestConflicts(t *testing.T) {
	setup(t)
	h := ProfileRoutes()
	token := tokenFor(t, "u1", models.RoleUser)

	rec := do(t, h, http.MethodPost, "/pedido-exclusao", token, map[string]string{"motivo": "já não preciso"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodPost, "/pedido-exclusao", token, map[string]string{"motivo": "outra vez"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for a second pending request, got %d", rec.Code)
	}
}

func TestSuperAdminCannotRequestDeletion(t *testing.T) {
	fake := setup(t)
	config.Config.SuperAdminID = "root"

	rec := do(t, ProfileRoutes(), http.MethodPost, "/pedido-exclusao", tokenFor(t, "root", models.RoleAdmin), map[string]string{})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
	if len(fake.deletions) != 0 {
		t.Errorf("Expected no deletion request to be stored, got %d", len(fake.deletions))
	}
}

func TestAdminCannotDeleteOwnProfile(t *testing.T) {
	fake := setup(t)
	fake.users["a1"] = &models.User{ID: "a1", Email: "a1@example.com", Role: models.RoleAdmin}

	rec := do(t, ProfileRoutes(), http.MethodDelete, "/", tokenFor(t, "a1", models.RoleAdmin), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
	if _, ok := fake.users["a1"]; !ok {
		t.Errorf("Expected the admin account to remain")
	}
}

func TestDeletionRequestsSkipRemovedUsers(t *testing.T) {
	fake := setup(t)
	fake.users["u1"] = &models.User{ID: "u1", Email: "u1@example.com", Role: models.RoleUser}
	fake.deletions = []*models.DeletionRequest{
		{ID: "d1", UserID: "u1", Email: "u1@example.com", Status: models.RequestPending},
		{ID: "d2", UserID: "gone", Email: "gone@example.com", Status: models.RequestPending},
	}

	rec := do(t, AdminRoutes(), http.MethodGet, "/pedidos-exclusao", tokenFor(t, "a1", models.RoleAdmin), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var views []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(views) != 1 || views[0]["id"] != "d1" {
		t.Fatalf("Expected only d1, got %v", views)
	}
	if _, ok := views[0]["userId"]; ok {
		t.Errorf("Expected no userId in the listing, got %v", views[0])
	}
}

func TestApprovePromotionRaisesRoleOnce(t *testing.T) {
	fake := setup(t)
	fake.users["u1"] = &models.User{ID: "u1", Email: "u1@example.com", Role: models.RoleUser}
	fake.promotions["p1"] = &models.PromotionRequest{
		ID: "p1", UserID: "u1", Email: "u1@example.com", Role: models.RoleMentor, Status: models.RequestPending,
	}
	h := AdminRoutes()
	token := tokenFor(t, "a1", models.RoleAdmin)

	rec := do(t, h, http.MethodPost, "/promocoes/p1/aprovar", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.users["u1"].Role != models.RoleMentor {
		t.Errorf("Expected role %s, got %s", models.RoleMentor, fake.users["u1"].Role)
	}
	if fake.promotions["p1"].Status != models.RequestApproved {
		t.Errorf("Expected status %s, got %s", models.RequestApproved, fake.promotions["p1"].Status)
	}

	rec = do(t, h, http.MethodPost, "/promocoes/p1/aprovar", token, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for an already resolved request, got %d", rec.Code)
	}
}

func TestApprovePromotionRequiresAdmin(t *testing.T) {
	fake := setup(t)
	fake.users["u1"] = &models.User{ID: "u1", Email: "u1@example.com", Role: models.RoleUser}
	fake.promotions["p1"] = &models.PromotionRequest{
		ID: "p1", UserID: "u1", Email: "u1@example.com", Role: models.RoleAdmin, Status: models.RequestPending,
	}

	rec := do(t, AdminRoutes(), http.MethodPost, "/promocoes/p1/aprovar", tokenFor(t, "u1", models.RoleUser), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
	if fake.users["u1"].Role != models.RoleUser {
		t.Errorf("Expected role to stay %s, got %s", models.RoleUser, fake.users["u1"].Role)
	}
}

func TestFavoritesKeepListAndItemsInStep(t *testing.T) {
	setup(t)
	h := FavoritesRoutes()
	token := tokenFor(t, "u1", models.RoleUser)

	rec := do(t, h, http.MethodPost, "/", token, map[string]string{"tipo": "termo", "itemId": "t1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodPost, "/", token, map[string]string{"tipo": "nota", "itemId": "n1"}); rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}

	favorites := func() *models.Favorites {
		rec := do(t, h, http.MethodGet, "/", token, nil)
		var favs models.Favorites
		if err := json.Unmarshal(rec.Body.Bytes(), &favs); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		return &favs
	}
	items := func() []*models.FavoriteItem {
		rec := do(t, h, http.MethodGet, "/itens", token, nil)
		var items []*models.FavoriteItem
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		return items
	}

	favs := favorites()
	if len(favs.Terms) != 1 || favs.Terms[0] != "t1" || len(favs.Notes) != 1 || favs.Notes[0] != "n1" {
		t.Errorf("Expected terms [t1] and notes [n1], got %v and %v", favs.Terms, favs.Notes)
	}
	if got := items(); len(got) != 2 {
		t.Errorf("Expected 2 favorite items, got %d", len(got))
	}

	if rec := do(t, h, http.MethodDelete, "/termo/t1", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	favs = favorites()
	if len(favs.Terms) != 0 || len(favs.Notes) != 1 {
		t.Errorf("Expected terms [] and notes [n1], got %v and %v", favs.Terms, favs.Notes)
	}
	got := items()
	if len(got) != 1 || got[0].Type != models.FavoriteNote || got[0].ItemID != "n1" {
		t.Errorf("Expected only the n1 note item to remain, got %v", got)
	}
}

func TestQuizScoresRequireSelfOrAdmin(t *testing.T) {
	fake := setup(t)
	fake.scores = []*models.Score{{ID: "q1", UserID: "u2", Score: 3, Total: 5}}
	h := QuizRoutes()

	if rec := do(t, h, http.MethodGet, "/pontuacoes/u2", tokenFor(t, "u1", models.RoleUser), nil); rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for another user, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/pontuacoes/u2", tokenFor(t, "u2", models.RoleUser), nil); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for the owner, got %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/pontuacoes/u2", tokenFor(t, "a1", models.RoleAdmin), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for an admin, got %d", rec.Code)
	}
	var scores []*models.Score
	if err := json.Unmarshal(rec.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 3 {
		t.Errorf("Expected the single stored score, got %v", scores)
	}
}
