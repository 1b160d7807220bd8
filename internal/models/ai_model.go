package models

// AIModel represents a single language model option exposed to the UI.
type AIModel struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"displayName"`
	APIName      string   `json:"apiName"`
	ProviderID   string   `json:"providerId"`
	ProviderName string   `json:"providerName"`
	Type         string   `json:"type"` // text | image | audio | video | multimodal
	CostPerToken float64  `json:"costPerToken,omitempty"`
	MaxTokens    int      `json:"maxTokens,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Local        bool     `json:"local"`
	Enabled      bool     `json:"enabled"`
}

// AIModelGroup groups models by their provider for presentation.
type AIModelGroup struct {
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	Models       []AIModel `json:"models"`
}
