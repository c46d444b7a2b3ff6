package repository

import (
	"context"
	"mentorapp/internal/firebase"
	"mentorapp/internal/models"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Repository is the store used by the route handlers. It is set by the server entrypoint and
// replaced by fakes in tests.
var Repository Store

// Store is everything the application reads from and writes to the document store.
type Store interface {
	UserRepository
	ActivityRepository
	DictionaryRepository
	QuizRepository
	NoteRepository
	SessionRepository
	FavoriteRepository
	NotificationRepository
	AdminRepository
	SuggestionRepository
	SettingsRepository
	ReportRepository
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser stores u and fills in its ID. Fails with DuplicateEmailError if the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	// UpdateLogin records a successful login: sets the last-login time and marks the user online.
	UpdateLogin(ctx context.Context, id string, at time.Time) error
	SetOnline(ctx context.Context, id string, online bool) error
	UpdatePassword(ctx context.Context, id string, hash string) error
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error)
	SetRole(ctx context.Context, id string, role models.Role) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

type ActivityRepository interface {
	AddActivity(ctx context.Context, a *models.Activity) error
	ListActivities(ctx context.Context, userID string, limit int) ([]*models.Activity, error)
}

type DictionaryRepository interface {
	ListTerms(ctx context.Context, filter models.TermFilter) ([]*models.Term, error)
	GetTerm(ctx context.Context, id string) (*models.Term, error)
	SearchTermsByPrefix(ctx context.Context, prefix string) ([]*models.Term, error)
	SearchTermsBySubstring(ctx context.Context, query string) ([]*models.Term, error)
	CreateTerm(ctx context.Context, t *models.Term) error
	UpdateTerm(ctx context.Context, t *models.Term) error
	DeleteTerm(ctx context.Context, id string) error
}

type QuizRepository interface {
	ListQuestions(ctx context.Context, category string, limit int) ([]*models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) error
	AddQuizScore(ctx context.Context, s *models.Score) error
	ListQuizScores(ctx context.Context, userID string) ([]*models.Score, error)
	ListAllQuizScores(ctx context.Context) ([]*models.Score, error)
}

type NoteRepository interface {
	ListNotes(ctx context.Context, userID string) ([]*models.Note, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, n *models.Note) error
	UpdateNote(ctx context.Context, id string, req *models.UpdateNoteRequest, at time.Time) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]*models.Session, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]*models.Session, error)
	ListSessionsByMentor(ctx context.Context, mentorID string) ([]*models.Session, error)
	// ListActiveSessions returns every session whose status the time-based rules can still change.
	ListActiveSessions(ctx context.Context) ([]*models.Session, error)
	// UpdateSessionStatus moves a session from one status to another. Fails with StaleSessionError
	// if the stored status is no longer from.
	UpdateSessionStatus(ctx context.Context, id string, from, to models.SessionStatus, reason string) error
	// HasInProgressConflict reports whether another session of the same mentor is in progress and
	// ends after s starts.
	HasInProgressConflict(ctx context.Context, s *models.Session) (bool, error)
	RateSession(ctx context.Context, id string, rating *models.Rating) error

	AddChatMessage(ctx context.Context, sessionID string, m *models.ChatMessage) error
	ListChatMessages(ctx context.Context, sessionID string) ([]*models.ChatMessage, error)
}

type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID string, t models.FavoriteType, itemID string) error
	RemoveFavorite(ctx context.Context, userID string, t models.FavoriteType, itemID string) error
	GetFavorites(ctx context.Context, userID string) (*models.Favorites, error)
	ListFavoriteItems(ctx context.Context, userID string) ([]*models.FavoriteItem, error)
}

type NotificationRepository interface {
	SetPushToken(ctx context.Context, userID string, token string) error
	DeletePushToken(ctx context.Context, userID string) error
	GetPushToken(ctx context.Context, userID string) (*models.PushToken, error)

	// CreateNotifications writes one feed entry per notification in a single batch.
	CreateNotifications(ctx context.Context, notifications []*models.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID string, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int, error)
}

type AdminRepository interface {
	CreatePromotionRequest(ctx context.Context, p *models.PromotionRequest) error
	GetPromotionRequest(ctx context.Context, id string) (*models.PromotionRequest, error)
	HasPendingPromotionRequest(ctx context.Context, email string) (bool, error)
	ListPromotionRequests(ctx context.Context) ([]*models.PromotionRequest, error)
	// ResolvePromotionRequest moves a pending request to approved or rejected. Fails with
	// PromotionNotPendingError if someone else already resolved it.
	ResolvePromotionRequest(ctx context.Context, p *models.PromotionRequest) error

	CreateDeletionRequest(ctx context.Context, d *models.DeletionRequest) error
	HasPendingDeletionRequest(ctx context.Context, userID string) (bool, error)
	ListDeletionRequests(ctx context.Context) ([]*models.DeletionRequest, error)
}

type SuggestionRepository interface {
	CreateSuggestion(ctx context.Context, s *models.Suggestion) error
	GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error)
	ListSuggestions(ctx context.Context, userID string) ([]*models.Suggestion, error)
	UpdateSuggestion(ctx context.Context, id string, req *models.UpdateSuggestionRequest, at time.Time) (*models.Suggestion, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, userID string, s *models.Settings) error
}

type ReportRepository interface {
	SeedReports(ctx context.Context, reports []*models.Report) error
	ListReports(ctx context.Context) ([]*models.Report, error)
}

var _ Store = (*FirebaseRepository)(nil)

// FirebaseRepository is the Firestore implementation of Store.
type FirebaseRepository struct {
	firestoreClient *firestore.Client

	// termsLock guards terms, the in-memory copy of the dictionary collection.
	termsLock *sync.RWMutex
	terms     map[string]*models.Term

	listenersCtx    context.Context
	cancelListeners context.CancelFunc
}

func NewFirebaseRepository() (*FirebaseRepository, error) {
	client, err := firebase.Firestore()
	if err != nil {
		return nil, err
	}
	return newFirebaseRepository(client), nil
}

func newFirebaseRepository(client *firestore.Client) *FirebaseRepository {
	ctx, cancel := context.WithCancel(context.Background())
	fr := &FirebaseRepository{
		firestoreClient: client,
		termsLock:       &sync.RWMutex{},
		terms:           make(map[string]*models.Term),
		listenersCtx:    ctx,
		cancelListeners: cancel,
	}

	// Execute the listeners sequentially, in case later listeners need to utilize data fetched
	// by previous listeners
	initFns := []func(){fr.initializeTermsListener}
	for _, initFn := range initFns {
		initFn()
	}

	glog.Infof("created firestore repository")
	return fr
}

// Close stops the snapshot listeners and closes the Firestore client.
func (fr *FirebaseRepository) Close() error {
	fr.cancelListeners()
	return fr.firestoreClient.Close()
}

// createCollectionInitializer listens to every change of a collection. handleDoc is called for
// added and modified documents, handleRemove for removed ones. done is signalled once the first
// snapshot has been applied, so that callers can wait for the cache to be warm.
func (fr *FirebaseRepository) createCollectionInitializer(collection string, done *chan bool, handleDoc func(doc *firestore.DocumentSnapshot) error, handleRemove func(id string)) error {
	it := fr.firestoreClient.Collection(collection).Snapshots(fr.listenersCtx)
	defer it.Stop()

	first := true
	signal := func() {
		if first {
			first = false
			*done <- true
		}
	}
	defer signal()

	for {
		snap, err := it.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || fr.listenersCtx.Err() != nil {
				return nil
			}
			return errors.Wrapf(err, "snapshot listener for %s failed", collection)
		}

		for _, change := range snap.Changes {
			switch change.Kind {
			case firestore.DocumentAdded, firestore.DocumentModified:
				if err := handleDoc(change.Doc); err != nil {
					glog.Warningf("failed to apply %s/%s from snapshot: %v", collection, change.Doc.Ref.ID, err)
				}
			case firestore.DocumentRemoved:
				handleRemove(change.Doc.Ref.ID)
			}
		}
		signal()
	}
}

// Helpers

// decode copies a document into out, which must be a pointer to a mapstructure-tagged struct.
func decode(doc *firestore.DocumentSnapshot, out interface{}) error {
	if err := mapstructure.Decode(doc.Data(), out); err != nil {
		return errors.Wrapf(err, "failed to decode %s", doc.Ref.Path)
	}
	return nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// translate maps a gRPC NotFound to notFound and wraps anything else.
func translate(err error, notFound error, format string, args ...interface{}) error {
	if isNotFound(err) {
		return notFound
	}
	return errors.Wrapf(err, format, args...)
}
