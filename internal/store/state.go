package store

import (
	"slices"

	"macontroller/internal/models"
)

// Durable is the part of the state that survives restarts. It is written
// wholesale as one JSON document.
type Durable struct {
	Profiles []models.Profile    `json:"profiles"`
	Projects []models.Project    `json:"projects"`
	Settings models.UserSettings `json:"settings"`
	Features []models.Feature    `json:"features"`
}

// Volatile is rebuilt from scratch on every start.
type Volatile struct {
	CurrentTab       models.MainTab        `json:"currentTab"`
	SidebarCollapsed bool                  `json:"sidebarCollapsed"`
	CurrentProfile   *models.Profile       `json:"currentProfile"`
	CurrentProject   *models.Project       `json:"currentProject"`
	Messages         []models.ChatMessage  `json:"messages"`
	IsProcessing     bool                  `json:"isProcessing"`
	CurrentTasks     []models.ProgressTask `json:"currentTasks"`
	CostAnalysis     *models.CostAnalysis  `json:"costAnalysis"`
}

type State struct {
	Durable
	Volatile
}

// durableDoc mirrors Durable with optional keys so a stored document only
// overrides the fields it actually carries.
type durableDoc struct {
	Profiles *[]models.Profile    `json:"profiles"`
	Projects *[]models.Project    `json:"projects"`
	Settings *models.UserSettings `json:"settings"`
	Features *[]models.Feature    `json:"features"`
}

func (d durableDoc) mergeInto(dst *Durable) {
	if d.Profiles != nil {
		dst.Profiles = *d.Profiles
	}
	if d.Projects != nil {
		dst.Projects = *d.Projects
	}
	if d.Settings != nil {
		dst.Settings = *d.Settings
	}
	if d.Features != nil {
		dst.Features = *d.Features
	}
}

func initialVolatile() Volatile {
	return Volatile{
		CurrentTab:   models.TabChat,
		Messages:     []models.ChatMessage{},
		CurrentTasks: []models.ProgressTask{},
	}
}

func (d Durable) clone() Durable {
	out := Durable{
		Profiles: make([]models.Profile, len(d.Profiles)),
		Projects: make([]models.Project, len(d.Projects)),
		Settings: d.Settings.Clone(),
		Features: make([]models.Feature, len(d.Features)),
	}
	for i, p := range d.Profiles {
		out.Profiles[i] = p.Clone()
	}
	for i, p := range d.Projects {
		out.Projects[i] = p.Clone()
	}
	for i, f := range d.Features {
		out.Features[i] = f.Clone()
	}
	return out
}

func (v Volatile) clone() Volatile {
	out := v
	if v.CurrentProfile != nil {
		p := v.CurrentProfile.Clone()
		out.CurrentProfile = &p
	}
	if v.CurrentProject != nil {
		p := v.CurrentProject.Clone()
		out.CurrentProject = &p
	}
	if v.CostAnalysis != nil {
		c := v.CostAnalysis.Clone()
		out.CostAnalysis = &c
	}
	out.Messages = make([]models.ChatMessage, len(v.Messages))
	for i, m := range v.Messages {
		out.Messages[i] = m.Clone()
	}
	out.CurrentTasks = make([]models.ProgressTask, len(v.CurrentTasks))
	for i, t := range v.CurrentTasks {
		out.CurrentTasks[i] = t.Clone()
	}
	return out
}

func (s State) clone() State {
	return State{Durable: s.Durable.clone(), Volatile: s.Volatile.clone()}
}

func indexOfProject(projects []models.Project, id string) int {
	return slices.IndexFunc(projects, func(p models.Project) bool { return p.ID == id })
}

func indexOfTask(tasks []models.ProgressTask, id string) int {
	return slices.IndexFunc(tasks, func(t models.ProgressTask) bool { return t.ID == id })
}

func indexOfFeature(features []models.Feature, id string) int {
	return slices.IndexFunc(features, func(f models.Feature) bool { return f.ID == id })
}
