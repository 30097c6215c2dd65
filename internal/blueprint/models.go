package blueprint

import "prompt2world-server/internal/worldgen"

// maxPromptLength bounds prompt size; longer prompts are rejected outright.
const maxPromptLength = 1000

// GenerateRequest is the prompt-to-world request body. WorldType is an
// optional hint that overrides theme classification when present.
type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	WorldType string `json:"world_type,omitempty"`
}

// GenerateResponse wraps a generated blueprint for the client.
type GenerateResponse struct {
	Success          bool                     `json:"success"`
	WorldBlueprint   *worldgen.WorldBlueprint `json:"world_blueprint"`
	Message          string                   `json:"message"`
	ProcessingTimeMs int64                    `json:"processing_time_ms"`
}

// StoredBlueprint is a persisted blueprint row together with its owner.
type StoredBlueprint struct {
	Blueprint *worldgen.WorldBlueprint `json:"blueprint"`
	UserID    string                   `json:"user_id"`
}
