package assets

import _ "embed"

// ModelsData holds the raw JSON catalog of AI providers and models.
//
//go:embed models.json
var ModelsData []byte

// FeaturesData holds the default feature catalog seeded on first launch.
//
//go:embed features.json
var FeaturesData []byte

// QuickActionsData holds the quick actions shown on the chat screen.
//
//go:embed quick_actions.json
var QuickActionsData []byte
