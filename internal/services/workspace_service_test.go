package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macontroller/internal/models"
	"macontroller/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{})
	require.NoError(t, err)
	return st
}

func TestWorkspaceService_CreateProfileDefaults(t *testing.T) {
	st := openTestStore(t)
	svc := NewWorkspaceService(st)

	p, err := svc.CreateProfile("", "")
	require.NoError(t, err)

	assert.Equal(t, "Profile 2", p.Name)
	assert.Equal(t, "user2@example.com", p.Email)
	assert.Equal(t, "MacController", p.Settings.AssistantName)
	assert.Equal(t, p.ID, st.CurrentProfile().ID)
}

func TestWorkspaceService_CreateProject(t *testing.T) {
	st := openTestStore(t)
	svc := NewWorkspaceService(st)

	p, err := svc.CreateProject(" Album ", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Album", p.Name)
	assert.Equal(t, models.ProjectGeneral, p.Type)
	assert.Equal(t, models.ProjectPlanning, p.Status)
	assert.Equal(t, "A new project created with MacOSController", p.Description)
	assert.Equal(t, st.CurrentProfile().ID, p.UserID)
	assert.Equal(t, p.ID, st.CurrentProject().ID)
}

func TestWorkspaceService_CreateProjectValidation(t *testing.T) {
	st := openTestStore(t)
	svc := NewWorkspaceService(st)

	_, err := svc.CreateProject("x", "", models.ProjectType("podcast"))
	assert.Error(t, err)

	st.SetCurrentProfile(nil)
	_, err = svc.CreateProject("x", "", models.ProjectAudio)
	assert.ErrorIs(t, err, ErrNoActiveProfile)
}

func TestWorkspaceService_Select(t *testing.T) {
	st := openTestStore(t)
	svc := NewWorkspaceService(st)
	first, err := svc.CreateProject("one", "", models.ProjectAudio)
	require.NoError(t, err)
	_, err = svc.CreateProject("two", "", models.ProjectLegal)
	require.NoError(t, err)

	require.NoError(t, svc.SelectProject(first.ID))
	assert.Equal(t, first.ID, st.CurrentProject().ID)

	assert.ErrorIs(t, svc.SelectProject("missing"), ErrNotFound)
	assert.ErrorIs(t, svc.SelectProfile("missing"), ErrNotFound)
	require.NoError(t, svc.SelectProfile("default_profile"))
}
