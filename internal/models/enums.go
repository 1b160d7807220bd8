package models

type MainTab string

const (
	TabChat     MainTab = "chat"
	TabProgress MainTab = "progress"
	TabFeatures MainTab = "features"
	TabSettings MainTab = "settings"
	TabAbout    MainTab = "about"
)

func (t MainTab) Valid() bool {
	switch t {
	case TabChat, TabProgress, TabFeatures, TabSettings, TabAbout:
		return true
	}
	return false
}

type ProjectType string

const (
	ProjectAudio         ProjectType = "audio"
	ProjectFilm          ProjectType = "film"
	ProjectWriting       ProjectType = "writing"
	ProjectDesign        ProjectType = "design"
	ProjectBusiness      ProjectType = "business"
	ProjectLegal         ProjectType = "legal"
	ProjectPassiveIncome ProjectType = "passive_income"
	ProjectGeneral       ProjectType = "general"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectAudio, ProjectFilm, ProjectWriting, ProjectDesign,
		ProjectBusiness, ProjectLegal, ProjectPassiveIncome, ProjectGeneral:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectPaused     ProjectStatus = "paused"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectPaused:
		return true
	}
	return false
}

// FeatureCategory groups features on the features dashboard.
type FeatureCategory string

const (
	CategoryAudioProduction    FeatureCategory = "audio_production"
	CategoryFilmVideo          FeatureCategory = "film_video"
	CategoryWritingEditing     FeatureCategory = "writing_editing"
	CategoryDesignGraphics     FeatureCategory = "design_graphics"
	CategoryBusinessManagement FeatureCategory = "business_management"
	CategoryLegalTools         FeatureCategory = "legal_tools"
	CategoryPassiveIncome      FeatureCategory = "passive_income"
	CategoryAIModels           FeatureCategory = "ai_models"
	CategorySystemIntegration  FeatureCategory = "system_integration"
)

// FeatureCategories lists every category in dashboard order.
var FeatureCategories = []FeatureCategory{
	CategoryAudioProduction,
	CategoryFilmVideo,
	CategoryWritingEditing,
	CategoryDesignGraphics,
	CategoryBusinessManagement,
	CategoryLegalTools,
	CategoryPassiveIncome,
	CategoryAIModels,
	CategorySystemIntegration,
}

func (c FeatureCategory) Valid() bool {
	for _, known := range FeatureCategories {
		if c == known {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
	TaskPaused    TaskStatus = "paused"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskRunning, TaskCompleted, TaskFailed, TaskPaused:
		return true
	}
	return false
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}
