package story

import (
	"context"
	"fmt"
)

// KeyStories is the key-value store key holding the story list.
const KeyStories = "stories"

// MaxStories bounds the stored story list.
const MaxStories = 20

// KV is the subset of the key-value store used by the library.
type KV interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Library keeps stories in the key-value store, current story first.
type Library struct {
	kv KV
}

// NewLibrary returns a library backed by kv.
func NewLibrary(kv KV) *Library {
	return &Library{kv: kv}
}

// List returns stored stories, current first. An empty store yields the default story.
func (l *Library) List(ctx context.Context) ([]Story, error) {
	var stories []Story
	if _, err := l.kv.Get(ctx, KeyStories, &stories); err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	if len(stories) == 0 {
		return []Story{Default()}, nil
	}
	return stories, nil
}

// Current returns the story to practice.
func (l *Library) Current(ctx context.Context) (Story, error) {
	stories, err := l.List(ctx)
	if err != nil {
		return Story{}, err
	}
	return stories[0], nil
}

// Add makes st the current story. A story with the same id is replaced.
func (l *Library) Add(ctx context.Context, st Story) error {
	stories, err := l.List(ctx)
	if err != nil {
		return err
	}
	next := make([]Story, 0, len(stories)+1)
	next = append(next, st)
	for _, existing := range stories {
		if existing.ID == st.ID {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > MaxStories {
		next = next[:MaxStories]
	}
	if err := l.kv.Set(ctx, KeyStories, next); err != nil {
		return fmt.Errorf("failed to save stories: %w", err)
	}
	return nil
}

// Select makes the story with the given id current.
func (l *Library) Select(ctx context.Context, id string) (Story, error) {
	stories, err := l.List(ctx)
	if err != nil {
		return Story{}, err
	}
	for _, st := range stories {
		if st.ID == id {
			return st, l.Add(ctx, st)
		}
	}
	return Story{}, fmt.Errorf("story %q not found", id)
}
