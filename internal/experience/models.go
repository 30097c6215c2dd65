package experience

import "time"

// Experience is a published world entry in the public gallery. It references
// a stored blueprint by id; the blueprint document itself is fetched through
// the worlds endpoint.
type Experience struct {
	ID          string    `json:"id"`
	BlueprintID string    `json:"blueprint_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	WorldType   string    `json:"world_type"`
	PlayCount   int64     `json:"play_count"`
	PublishedAt time.Time `json:"published_at"`
}

// PublishRequest is the payload for publishing a generated world.
type PublishRequest struct {
	BlueprintID string `json:"blueprint_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListResponse is the paginated gallery payload.
type ListResponse struct {
	Experiences []Experience `json:"experiences"`
	Total       int          `json:"total"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
}
