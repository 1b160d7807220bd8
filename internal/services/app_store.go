package services

import (
	"macontroller/internal/models"
	"macontroller/internal/store"
)

// AppStore is the part of store.Store the services depend on.
type AppStore interface {
	Read() store.State
	Settings() models.UserSettings
	CurrentProfile() *models.Profile
	CurrentProject() *models.Project
	SetCurrentProfile(profile *models.Profile)
	SetCurrentProject(project *models.Project)
	AddProfile(profile models.Profile)
	AddProject(project models.Project)
	AddMessage(message models.ChatMessage)
	ClearMessages()
	TryStartProcessing() bool
	SetProcessing(processing bool)
}

var _ AppStore = (*store.Store)(nil)
