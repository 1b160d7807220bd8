package models

import (
	"maps"
	"slices"
	"time"
)

// ChatMessage is one turn of the operator chat.
type ChatMessage struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Role        MessageRole      `json:"role"`
	Timestamp   time.Time        `json:"timestamp"`
	ProjectID   string           `json:"projectId"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	Attachments []FileAttachment `json:"attachments,omitempty"`
}

// FileAttachment describes a file sent with a message. It never carries the bytes.
type FileAttachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func (m ChatMessage) Clone() ChatMessage {
	m.Metadata = maps.Clone(m.Metadata)
	m.Attachments = slices.Clone(m.Attachments)
	return m
}

// UploadedFile is a file handed over by the frontend with its content inline.
type UploadedFile struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// SendMessageRequest is the payload of a chat send.
type SendMessageRequest struct {
	Content   string         `json:"content"`
	FilePaths []string       `json:"filePaths,omitempty"`
	Files     []UploadedFile `json:"files,omitempty"`
}
