package service

import (
	"alcyxob/workout-builder/internal/catalog"
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/metrics"
	"alcyxob/workout-builder/internal/repository"
	"alcyxob/workout-builder/internal/session"
	"alcyxob/workout-builder/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound    = errors.New("workout session not found")
	ErrWorkoutNotFound    = errors.New("stored workout not found")
	ErrSaveFailed         = errors.New("could not save workout")
	ErrCatalogUnavailable = errors.New("exercise catalog is unavailable")
	ErrExportUnavailable  = errors.New("workout export is not configured")
	ErrExportFailed       = errors.New("could not export workout")
)

// SessionView is a live session together with its derived progress.
type SessionView struct {
	Session  domain.WorkoutSession `json:"session"`
	Progress session.Progress      `json:"progress"`
}

// ExportResponse points at an exported workout snapshot.
type ExportResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ObjectKey   string    `json:"objectKey"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type SessionService interface {
	// Live sessions
	Start(ctx context.Context) (*SessionView, error)
	Get(ctx context.Context, sessionID string) (*SessionView, error)
	Dispatch(ctx context.Context, sessionID string, cmd session.Command) (*SessionView, error)
	AddFromLibrary(ctx context.Context, sessionID, exerciseName string) (*SessionView, error)
	LoadStored(ctx context.Context, sessionID, workoutID string) (*SessionView, error)
	Complete(ctx context.Context, sessionID string) (*domain.WorkoutRecord, error)
	Discard(ctx context.Context, sessionID string) error

	// Stored workouts
	History(ctx context.Context) ([]domain.WorkoutRecord, error)
	Templates(ctx context.Context) ([]domain.WorkoutRecord, error)
	Stored(ctx context.Context, workoutID string) (*domain.WorkoutRecord, error)
	Export(ctx context.Context, workoutID string) (*ExportResponse, error)

	// Shutdown stops every session timer. Live sessions are dropped.
	Shutdown()
}

// SessionServiceOptions tunes a SessionService. Zero values fall back to defaults.
type SessionServiceOptions struct {
	TickInterval    time.Duration
	ExportURLExpiry time.Duration
	Clock           func() time.Time
}

type liveSession struct {
	store *session.Store
	stop  context.CancelFunc
	done  chan struct{}

	// mu orders client commands against Complete and Discard. Once ended is set no
	// command reaches the store.
	mu    sync.Mutex
	ended bool
}

// sessionService implements the SessionService interface.
type sessionService struct {
	workoutRepo repository.WorkoutRepository
	catalog     catalog.Service
	fileStorage storage.FileStorage // Optional, enables Export
	metrics     *metrics.Manager
	opts        SessionServiceOptions

	rootCtx    context.Context
	cancelRoot context.CancelFunc

	mu   sync.Mutex
	live map[string]*liveSession
}

// NewSessionService creates a new instance of sessionService. fileStorage may be nil.
func NewSessionService(
	workoutRepo repository.WorkoutRepository,
	catalogService catalog.Service,
	fileStorage storage.FileStorage,
	metricsManager *metrics.Manager,
	opts SessionServiceOptions,
) SessionService {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.ExportURLExpiry <= 0 {
		opts.ExportURLExpiry = storage.DefaultPresignedURLExpiry
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	return &sessionService{
		workoutRepo: workoutRepo,
		catalog:     catalogService,
		fileStorage: fileStorage,
		metrics:     metricsManager,
		opts:        opts,
		rootCtx:     rootCtx,
		cancelRoot:  cancel,
		live:        make(map[string]*liveSession),
	}
}

// === Live sessions ===

// Start creates a fresh session, registers it and starts its timer.
func (s *sessionService) Start(ctx context.Context) (*SessionView, error) {
	fresh := session.New(s.opts.Clock())
	store := session.NewStore(fresh)

	timerCtx, stop := context.WithCancel(s.rootCtx)
	ls := &liveSession{store: store, stop: stop, done: make(chan struct{})}
	go func() {
		defer close(ls.done)
		runTimer(timerCtx, store, s.opts.TickInterval, fresh.CreatedAt, s.opts.Clock)
	}()

	s.mu.Lock()
	s.live[fresh.ID] = ls
	s.metrics.GaugeLiveSessions.Set(float64(len(s.live)))
	s.mu.Unlock()

	s.metrics.CounterSessionsStarted.Inc()
	log.Debugf("started workout session %s", fresh.ID)
	return viewOf(store), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(ls.store), nil
}

// Dispatch applies cmd to the live session. AddExerciseFromLibrary commands that carry
// only a name are enriched from the catalog first.
func (s *sessionService) Dispatch(ctx context.Context, sessionID string, cmd session.Command) (*SessionView, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if c, ok := cmd.(session.AddExerciseFromLibrary); ok && c.MuscleGroup == "" && c.Equipment == "" && c.Difficulty == "" {
		cmd, err = s.enrichFromCatalog(ctx, c.Name)
		if err != nil {
			return nil, err
		}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.ended {
		return nil, ErrSessionNotFound
	}
	next := ls.store.Dispatch(cmd)
	s.metrics.CounterCommands.WithLabelValues(cmd.Kind()).Inc()
	return &SessionView{Session: next, Progress: session.ProgressOf(next)}, nil
}

// AddFromLibrary appends an exercise named after a catalog entry.
func (s *sessionService) AddFromLibrary(ctx context.Context, sessionID, exerciseName string) (*SessionView, error) {
	return s.Dispatch(ctx, sessionID, session.AddExerciseFromLibrary{Name: exerciseName})
}

// enrichFromCatalog copies the descriptive fields of the catalog entry into the
// command. A name the catalog does not know is still added, without details.
func (s *sessionService) enrichFromCatalog(ctx context.Context, name string) (session.AddExerciseFromLibrary, error) {
	cmd := session.AddExerciseFromLibrary{Name: name}
	if s.catalog == nil {
		return cmd, nil
	}

	entry, err := s.catalog.Find(ctx, name)
	if err != nil {
		if errors.Is(err, catalog.ErrEntryNotFound) {
			log.Debugf("exercise %q not in catalog, adding without details", name)
			return cmd, nil
		}
		log.Errorf("catalog lookup for %q failed: %v", name, err)
		return cmd, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	cmd.Name = entry.Name
	cmd.MuscleGroup = entry.MuscleGroup()
	cmd.Equipment = entry.Equipment
	cmd.Difficulty = entry.Level
	return cmd, nil
}

// LoadStored replaces the content of the live session with a stored workout or template.
func (s *sessionService) LoadStored(ctx context.Context, sessionID, workoutID string) (*SessionView, error) {
	if _, err := s.lookup(sessionID); err != nil {
		return nil, err
	}
	record, err := s.Stored(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, sessionID, session.LoadWorkout{Session: record.WorkoutSession})
}

// Complete hands the session to the repository, as a template when SaveAsTemplate is
// set and as a log entry otherwise, then ends it. On a save failure the session
// stays live so the caller can retry.
func (s *sessionService) Complete(ctx context.Context, sessionID string) (*domain.WorkoutRecord, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	// Commands arriving while the save is in flight wait here and then find the
	// session ended.
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.ended {
		return nil, ErrSessionNotFound
	}

	snapshot := ls.store.Snapshot()
	record := &domain.WorkoutRecord{
		WorkoutSession: snapshot,
		IsTemplate:     snapshot.SaveAsTemplate,
		SavedAt:        s.opts.Clock().UTC(),
	}
	if err := s.workoutRepo.Save(ctx, record); err != nil {
		log.Errorf("failed to save workout session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	kind := "log"
	if record.IsTemplate {
		kind = "template"
	}
	s.metrics.CounterSessionsCompleted.WithLabelValues(kind).Inc()
	ls.ended = true
	s.end(sessionID)
	log.Infof("workout session %s saved as %s", sessionID, kind)
	return record, nil
}

// Discard ends the session without saving it.
func (s *sessionService) Discard(ctx context.Context, sessionID string) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	wasEnded := ls.ended
	ls.ended = true
	ls.mu.Unlock()

	if wasEnded || !s.end(sessionID) {
		return ErrSessionNotFound
	}
	log.Debugf("discarded workout session %s", sessionID)
	return nil
}

func (s *sessionService) lookup(sessionID string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.live[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

// end unregisters the session and waits for its timer to stop.
func (s *sessionService) end(sessionID string) bool {
	s.mu.Lock()
	ls, ok := s.live[sessionID]
	if ok {
		delete(s.live, sessionID)
		s.metrics.GaugeLiveSessions.Set(float64(len(s.live)))
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	ls.stop()
	<-ls.done
	return true
}

func (s *sessionService) Shutdown() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.end(id)
	}
	s.cancelRoot()
}

func viewOf(store *session.Store) *SessionView {
	snapshot := store.Snapshot()
	return &SessionView{Session: snapshot, Progress: session.ProgressOf(snapshot)}
}

// === Stored workouts ===

func (s *sessionService) History(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return s.workoutRepo.ListAll(ctx)
}

func (s *sessionService) Templates(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return s.workoutRepo.ListTemplates(ctx)
}

func (s *sessionService) Stored(ctx context.Context, workoutID string) (*domain.WorkoutRecord, error) {
	record, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return record, nil
}

// Export writes a JSON snapshot of a stored workout to object storage and returns a
// temporary download URL for it.
func (s *sessionService) Export(ctx context.Context, workoutID string) (*ExportResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	record, err := s.Stored(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	objectKey := path.Join("exports", workoutID, uuid.NewString()+".json")
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.opts.ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &ExportResponse{
		DownloadURL: url,
		ObjectKey:   objectKey,
		ExpiresAt:   s.opts.Clock().UTC().Add(s.opts.ExportURLExpiry),
	}, nil
}
