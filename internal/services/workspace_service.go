package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"macontroller/internal/catalog"
	"macontroller/internal/models"
)

var (
	ErrNoActiveProfile = errors.New("no active profile")
	ErrNotFound        = errors.New("not found")
)

// WorkspaceService creates and selects profiles and projects.
type WorkspaceService interface {
	CreateProfile(name, email string) (*models.Profile, error)
	SelectProfile(id string) error
	CreateProject(name, description string, projectType models.ProjectType) (*models.Project, error)
	SelectProject(id string) error
}

type workspaceService struct {
	store AppStore
	now   func() time.Time
}

func NewWorkspaceService(st AppStore) WorkspaceService {
	return &workspaceService{store: st, now: time.Now}
}

// CreateProfile adds a profile with default settings and makes it current.
// Blank name or email get numbered placeholders.
func (s *workspaceService) CreateProfile(name, email string) (*models.Profile, error) {
	count := len(s.store.Read().Profiles)
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Profile %d", count+1)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = fmt.Sprintf("user%d@example.com", count+1)
	}

	p := models.Profile{
		ID:        "profile_" + uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now(),
		Settings:  catalog.DefaultSettings(),
	}
	s.store.AddProfile(p)
	return &p, nil
}

func (s *workspaceService) SelectProfile(id string) error {
	for _, p := range s.store.Read().Profiles {
		if p.ID == id {
			s.store.SetCurrentProfile(&p)
			return nil
		}
	}
	return fmt.Errorf("profile %s: %w", id, ErrNotFound)
}

// CreateProject adds a project owned by the current profile and makes it
// current.
func (s *workspaceService) CreateProject(name, description string, projectType models.ProjectType) (*models.Project, error) {
	profile := s.store.CurrentProfile()
	if profile == nil {
		return nil, ErrNoActiveProfile
	}
	if projectType == "" {
		projectType = models.ProjectGeneral
	}
	if !projectType.Valid() {
		return nil, fmt.Errorf("unknown project type %q", projectType)
	}

	count := len(s.store.Read().Projects)
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("New Project %d", count+1)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "A new project created with MacOSController"
	}

	now := s.now()
	p := models.Project{
		ID:          "project_" + uuid.NewString(),
		Name:        name,
		Type:        projectType,
		Status:      models.ProjectPlanning,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      profile.ID,
		Metadata:    map[string]any{},
	}
	s.store.AddProject(p)
	return &p, nil
}

func (s *workspaceService) SelectProject(id string) error {
	for _, p := range s.store.Read().Projects {
		if p.ID == id {
			s.store.SetCurrentProject(&p)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, ErrNotFound)
}
