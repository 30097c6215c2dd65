package prefab

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"prompt2world-server/internal/worldgen"
)

// StringList maps a JSONB string array column to a Go slice.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// CatalogItem is a prefab asset registered in the catalog. The generator
// consumes these through the read-only descriptor view; the full item carries
// the administrative fields as well.
type CatalogItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Type        worldgen.PrefabType `json:"type"`
	Description string              `json:"description"`
	Tags        StringList          `json:"tags"`
	Bounds      worldgen.Vector3    `json:"bounds"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Descriptor projects the item into the generator's read-only view.
func (c *CatalogItem) Descriptor() worldgen.PrefabDescriptor {
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)

	return worldgen.PrefabDescriptor{
		ID:     c.ID,
		Name:   c.Name,
		Type:   c.Type,
		Tags:   tags,
		Bounds: c.Bounds,
	}
}

// CreateItemRequest is the admin payload for registering a prefab.
type CreateItemRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Bounds      worldgen.Vector3 `json:"bounds"`
}

// UpdateItemRequest is the admin payload for modifying a prefab. Nil fields
// are left unchanged.
type UpdateItemRequest struct {
	Name        *string           `json:"name,omitempty"`
	Type        *string           `json:"type,omitempty"`
	Description *string           `json:"description,omitempty"`
	Tags        *[]string         `json:"tags,omitempty"`
	Bounds      *worldgen.Vector3 `json:"bounds,omitempty"`
}

// ListResponse is the paginated catalog listing payload.
type ListResponse struct {
	Items  []CatalogItem `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
