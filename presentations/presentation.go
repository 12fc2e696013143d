/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package presentations persists uploaded presentations: a name, an image
// and a list of titled videos.
package presentations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("presentation not found")

// Title pairs a video with the caption shown for it.
type Title struct {
	Title string `json:"titulo"`
	Video string `json:"video"`
}

type Presentation struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Image     string    `json:"imagen"`
	Titles    []Title   `json:"titulos"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is implemented by every presentation backend.
type Store interface {
	Save(ctx context.Context, p *Presentation) error
	List(ctx context.Context) ([]Presentation, error)
	// FindByName returns the oldest presentation with exactly this name.
	FindByName(ctx context.Context, name string) (*Presentation, error)
}

func prepare(p *Presentation) error {
	if p.Name == "" {
		return errors.New("presentation name is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Titles == nil {
		p.Titles = []Title{}
	}

	return nil
}
