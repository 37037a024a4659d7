package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/bewellhq/bewell/internal/models"
)

type stubSource struct {
	posts []models.Post
	err   error
}

func (s *stubSource) Feed(ctx context.Context) ([]models.Post, error) {
	return s.posts, s.err
}

func TestLoad_PrefersAPIPosts(t *testing.T) {
	src := &stubSource{posts: []models.Post{{ID: "api-1", Name: "Remote"}}}

	posts := Load(context.Background(), src)
	if len(posts) != 1 || posts[0].ID != "api-1" {
		t.Errorf("expected API posts, got %+v", posts)
	}
}

func TestLoad_FallsBackToSamples(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}

	posts := Load(context.Background(), src)
	if len(posts) != len(SamplePosts()) {
		t.Fatalf("expected sample posts, got %d", len(posts))
	}
	if posts[0].Name != "Harley Zhang" {
		t.Errorf("unexpected first sample post %+v", posts[0])
	}
}

func TestLoad_MockFeedEnvForcesSamples(t *testing.T) {
	t.Setenv("BEWELL_MOCK_FEED", "true")
	src := &stubSource{posts: []models.Post{{ID: "api-1"}}}

	posts := Load(context.Background(), src)
	if posts[0].ID != "1" {
		t.Errorf("expected sample posts with mock feed enabled, got %+v", posts)
	}
}

func TestSamplePosts_ReturnsCopy(t *testing.T) {
	posts := SamplePosts()
	posts[0].Name = "mutated"
	if SamplePosts()[0].Name != "Harley Zhang" {
		t.Error("SamplePosts should not share backing storage with callers")
	}
}
