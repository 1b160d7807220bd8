// Package store holds the application state shared by every screen. The
// durable part is written to local storage after each mutation and read back
// on start; the volatile part is rebuilt from scratch.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"macontroller/internal/catalog"
	"macontroller/internal/events"
	"macontroller/internal/models"
)

// Namespace is the key the durable document is stored under.
const Namespace = "macoscontroller-storage"

const persistTimeout = 5 * time.Second

// Persister stores the durable document. repositories.StateRepository
// satisfies it.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

type Options struct {
	Persister Persister
	Logger    *zap.Logger
	Now       func() time.Time
}

type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
	logger    *zap.Logger
	now       func() time.Time

	ctxMu sync.RWMutex
	ctx   context.Context
}

// New returns a store holding the initial state. It does not read persisted
// data and does not synthesize a default profile; use Open for that.
func New(opts Options) (*Store, error) {
	features, err := catalog.DefaultFeatures()
	if err != nil {
		return nil, fmt.Errorf("loading default features: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		state: State{
			Durable: Durable{
				Profiles: []models.Profile{},
				Projects: []models.Project{},
				Settings: catalog.DefaultSettings(),
				Features: features,
			},
			Volatile: initialVolatile(),
		},
		persister: opts.Persister,
		logger:    logger.Named("store"),
		now:       now,
	}, nil
}

// Open builds a store, rehydrates the durable part from the persister and
// runs the profile repair step once before returning.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	s.rehydrate(ctx)
	if s.repair() {
		s.persist(ctx, s.state.Durable)
	}
	return s, nil
}

// Startup records the Wails context so change events reach the frontend.
func (s *Store) Startup(ctx context.Context) {
	s.ctxMu.Lock()
	s.ctx = ctx
	s.ctxMu.Unlock()
}

func (s *Store) rehydrate(ctx context.Context) {
	if s.persister == nil {
		return
	}
	payload, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load persisted state, starting fresh", zap.Error(err))
		return
	}
	if len(payload) == 0 {
		return
	}
	var doc durableDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		s.logger.Warn("discarding unreadable persisted state", zap.Error(err))
		return
	}
	doc.mergeInto(&s.state.Durable)
	s.logger.Debug("state rehydrated",
		zap.Int("profiles", len(s.state.Profiles)),
		zap.Int("projects", len(s.state.Projects)),
		zap.Int("features", len(s.state.Features)))
}

// repair makes sure a current profile exists. It reports whether the durable
// part changed.
func (s *Store) repair() bool {
	if len(s.state.Profiles) == 0 {
		p := catalog.DefaultProfile(s.now())
		s.state.Profiles = append(s.state.Profiles, p)
		current := p.Clone()
		s.state.CurrentProfile = &current
		s.logger.Info("created default profile", zap.String("profile_id", p.ID))
		return true
	}
	if s.state.CurrentProfile == nil {
		current := s.state.Profiles[0].Clone()
		s.state.CurrentProfile = &current
	}
	return false
}

// Read returns a deep copy of the whole state.
func (s *Store) Read() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// mutate applies fn under the write lock. fn reports whether it changed
// anything; durable marks mutations that touch the persisted subset.
func (s *Store) mutate(action string, durable bool, fn func(st *State) bool) {
	s.mu.Lock()
	changed := fn(&s.state)
	if changed && durable {
		ctx, cancel := context.WithTimeout(s.baseContext(), persistTimeout)
		s.persist(ctx, s.state.Durable)
		cancel()
	}
	s.mu.Unlock()

	if changed {
		s.emit(action)
	}
}

func (s *Store) persist(ctx context.Context, d Durable) {
	if s.persister == nil {
		return
	}
	payload, err := json.Marshal(d)
	if err != nil {
		s.logger.Warn("failed to encode state", zap.Error(err))
		return
	}
	if err := s.persister.Save(ctx, payload); err != nil {
		s.logger.Warn("failed to persist state", zap.Error(err))
	}
}

func (s *Store) baseContext() context.Context {
	s.ctxMu.RLock()
	defer s.ctxMu.RUnlock()
	if s.ctx != nil {
		return context.WithoutCancel(s.ctx)
	}
	return context.Background()
}

func (s *Store) emit(action string) {
	s.ctxMu.RLock()
	ctx := s.ctx
	s.ctxMu.RUnlock()
	events.Emit(ctx, events.StoreChanged, events.NewStoreEvent(action))
}

func (s *Store) SetCurrentTab(tab models.MainTab) {
	s.mutate("setCurrentTab", false, func(st *State) bool {
		st.CurrentTab = tab
		return true
	})
}

func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.mutate("setSidebarCollapsed", false, func(st *State) bool {
		st.SidebarCollapsed = collapsed
		return true
	})
}

func (s *Store) SetProcessing(processing bool) {
	s.mutate("setProcessing", false, func(st *State) bool {
		st.IsProcessing = processing
		return true
	})
}

// TryStartProcessing sets the processing flag unless it is already set and
// reports whether it did.
func (s *Store) TryStartProcessing() bool {
	started := false
	s.mutate("setProcessing", false, func(st *State) bool {
		if st.IsProcessing {
			return false
		}
		st.IsProcessing = true
		started = true
		return true
	})
	return started
}

// SetCurrentProfile replaces the active profile. nil clears it.
func (s *Store) SetCurrentProfile(profile *models.Profile) {
	s.mutate("setCurrentProfile", false, func(st *State) bool {
		if profile == nil {
			st.CurrentProfile = nil
			return true
		}
		p := profile.Clone()
		st.CurrentProfile = &p
		return true
	})
}

// AddProfile appends the profile and makes it the current one.
func (s *Store) AddProfile(profile models.Profile) {
	s.mutate("addProfile", true, func(st *State) bool {
		st.Profiles = append(st.Profiles, profile.Clone())
		current := profile.Clone()
		st.CurrentProfile = &current
		return true
	})
}

func (s *Store) SetCurrentProject(project *models.Project) {
	s.mutate("setCurrentProject", false, func(st *State) bool {
		if project == nil {
			st.CurrentProject = nil
			return true
		}
		p := project.Clone()
		st.CurrentProject = &p
		return true
	})
}

// AddProject appends the project and makes it the current one.
func (s *Store) AddProject(project models.Project) {
	s.mutate("addProject", true, func(st *State) bool {
		st.Projects = append(st.Projects, project.Clone())
		current := project.Clone()
		st.CurrentProject = &current
		return true
	})
}

// UpdateProject merges patch into the project with the given id. Unknown ids
// are ignored.
func (s *Store) UpdateProject(id string, patch models.ProjectPatch) {
	s.mutate("updateProject", true, func(st *State) bool {
		i := indexOfProject(st.Projects, id)
		if i < 0 {
			return false
		}
		patch.Apply(&st.Projects[i])
		if st.CurrentProject != nil && st.CurrentProject.ID == id {
			current := st.Projects[i].Clone()
			st.CurrentProject = &current
		}
		return true
	})
}

func (s *Store) AddMessage(message models.ChatMessage) {
	s.mutate("addMessage", false, func(st *State) bool {
		st.Messages = append(st.Messages, message.Clone())
		return true
	})
}

func (s *Store) ClearMessages() {
	s.mutate("clearMessages", false, func(st *State) bool {
		st.Messages = []models.ChatMessage{}
		return true
	})
}

// ToggleFeature flips the enabled flag of a feature. Unknown ids are ignored.
func (s *Store) ToggleFeature(id string) {
	s.mutate("toggleFeature", true, func(st *State) bool {
		i := indexOfFeature(st.Features, id)
		if i < 0 {
			return false
		}
		st.Features[i].Enabled = !st.Features[i].Enabled
		return true
	})
}

func (s *Store) AddTask(task models.ProgressTask) {
	s.mutate("addTask", false, func(st *State) bool {
		st.CurrentTasks = append(st.CurrentTasks, task.Clone())
		return true
	})
}

func (s *Store) UpdateTask(id string, patch models.TaskPatch) {
	s.mutate("updateTask", false, func(st *State) bool {
		i := indexOfTask(st.CurrentTasks, id)
		if i < 0 {
			return false
		}
		patch.Apply(&st.CurrentTasks[i])
		return true
	})
}

func (s *Store) RemoveTask(id string) {
	s.mutate("removeTask", false, func(st *State) bool {
		i := indexOfTask(st.CurrentTasks, id)
		if i < 0 {
			return false
		}
		st.CurrentTasks = append(st.CurrentTasks[:i:i], st.CurrentTasks[i+1:]...)
		return true
	})
}

// UpdateSettings merges patch into the settings. Values are stored as given.
func (s *Store) UpdateSettings(patch models.SettingsPatch) {
	s.mutate("updateSettings", true, func(st *State) bool {
		patch.Apply(&st.Settings)
		return true
	})
}

func (s *Store) UpdateCostAnalysis(analysis models.CostAnalysis) {
	s.mutate("updateCostAnalysis", false, func(st *State) bool {
		c := analysis.Clone()
		st.CostAnalysis = &c
		return true
	})
}

func (s *Store) Settings() models.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings.Clone()
}

func (s *Store) CurrentProfile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentProfile == nil {
		return nil
	}
	p := s.state.CurrentProfile.Clone()
	return &p
}

func (s *Store) CurrentProject() *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentProject == nil {
		return nil
	}
	p := s.state.CurrentProject.Clone()
	return &p
}

func (s *Store) QuickActions() ([]models.QuickAction, error) {
	return catalog.QuickActions()
}
