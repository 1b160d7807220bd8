package models

import (
	"maps"
	"time"
)

type Project struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        ProjectType    `json:"type"`
	Status      ProjectStatus  `json:"status"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	UserID      string         `json:"userId"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Type        *ProjectType   `json:"type,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Description *string        `json:"description,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Apply shallow-merges the patch into dst. Metadata replaces the whole map.
func (p ProjectPatch) Apply(dst *Project) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.UpdatedAt != nil {
		dst.UpdatedAt = *p.UpdatedAt
	}
	if p.Metadata != nil {
		dst.Metadata = maps.Clone(p.Metadata)
	}
}

func (p Project) Clone() Project {
	p.Metadata = maps.Clone(p.Metadata)
	return p
}
