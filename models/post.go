package models

import (
	"strings"
	"time"
)

// Post represents a single blog entry.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// PostDraft is the editable subset of a Post submitted on create and update.
type PostDraft struct {
	Title   string `json:"title" toml:"title"`
	Content string `json:"content" toml:"content"`
	Author  string `json:"author" toml:"author"`
}

// Clone returns a copy of the post that shares no memory with the receiver.
func (p Post) Clone() Post {
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}

// Draft returns the editable fields of the post.
func (p Post) Draft() PostDraft {
	return PostDraft{Title: p.Title, Content: p.Content, Author: p.Author}
}

// Paragraphs splits the content on line breaks; every line is one paragraph,
// blank lines included. Empty content has no paragraphs.
func (p Post) Paragraphs() []string {
	if p.Content == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(p.Content, "\r\n", "\n"), "\n")
}
