// Package models defines the data shapes exchanged with the backend.
package models

import "time"

// Paste is a single paste record as returned by the backend.
//
// Exactly one of Content or StoragePath carries the payload: inline text
// pastes use Content, uploaded files use StoragePath (a key inside the
// binary object store) plus MimeType.
type Paste struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language"`
	IsPublic    bool      `json:"is_public"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	MimeType    string    `json:"mime_type,omitempty"`
	StoragePath string    `json:"storage_path,omitempty"`
}

// IsBinary reports whether the payload lives in the object store rather
// than inline in Content.
func (p *Paste) IsBinary() bool {
	return p.StoragePath != ""
}

// DisplayTitle returns the title or a placeholder for untitled pastes.
func (p *Paste) DisplayTitle() string {
	if p.Title == "" {
		return "Untitled Paste"
	}
	return p.Title
}

// CreateRequest carries the fields for a new paste.
type CreateRequest struct {
	Content     string
	Language    string
	Title       string
	Description string
	IsPublic    bool
	MimeType    string
	StoragePath string
}
