package models

import "time"

type ProgressTask struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Progress      int        `json:"progress"` // percent, 0-100
	Status        TaskStatus `json:"status"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"` // seconds
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

type TaskPatch struct {
	Name          *string     `json:"name,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Progress      *int        `json:"progress,omitempty"`
	Status        *TaskStatus `json:"status,omitempty"`
	EstimatedTime *int        `json:"estimatedTime,omitempty"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
}

func (p TaskPatch) Apply(dst *ProgressTask) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Progress != nil {
		dst.Progress = *p.Progress
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.EstimatedTime != nil {
		v := *p.EstimatedTime
		dst.EstimatedTime = &v
	}
	if p.StartedAt != nil {
		v := *p.StartedAt
		dst.StartedAt = &v
	}
	if p.CompletedAt != nil {
		v := *p.CompletedAt
		dst.CompletedAt = &v
	}
}

func (t ProgressTask) Clone() ProgressTask {
	if t.EstimatedTime != nil {
		v := *t.EstimatedTime
		t.EstimatedTime = &v
	}
	if t.StartedAt != nil {
		v := *t.StartedAt
		t.StartedAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		t.CompletedAt = &v
	}
	return t
}
