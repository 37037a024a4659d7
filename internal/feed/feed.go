// Package feed loads the explore feed. The API is preferred; the embedded
// sample posts keep the screen alive offline or when BEWELL_MOCK_FEED forces
// them during development.
package feed

import (
	"context"
	"os"

	"github.com/bewellhq/bewell/internal/models"
)

// Source fetches posts from the backend.
type Source interface {
	Feed(ctx context.Context) ([]models.Post, error)
}

var samplePosts = []models.Post{
	{ID: "1", Name: "Harley Zhang", Prompt: "Call a friend", ProfileColor: "#FF6B6B", Time: "4:45 AM"},
	{ID: "2", Name: "Sebastian Stefenel", Prompt: "Go for a run!", ProfileColor: "#4ECDC4", Time: "4:18 AM"},
	{ID: "3", Name: "Jordan Khatri", Prompt: "Do some yoga", ProfileColor: "#45B7D1", Time: "4:12 AM"},
	{ID: "4", Name: "Andrew Mazour", Prompt: "Meditate for 5 minutes", ProfileColor: "#98D8AA", Time: "4:04 AM"},
}

// SamplePosts returns the embedded development feed.
func SamplePosts() []models.Post {
	posts := make([]models.Post, len(samplePosts))
	copy(posts, samplePosts)
	return posts
}

// Load returns the feed to display. Failures never surface: the samples are
// the fallback, so the explore screen always has content.
func Load(ctx context.Context, src Source) []models.Post {
	if os.Getenv("BEWELL_MOCK_FEED") == "true" {
		return SamplePosts()
	}
	posts, err := src.Feed(ctx)
	if err != nil || len(posts) == 0 {
		return SamplePosts()
	}
	return posts
}
