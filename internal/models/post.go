package models

// Post is one entry in the explore feed: a friend's daily photo plus the
// wellness prompt they were given.
type Post struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Prompt       string `json:"prompt"`
	ProfileColor string `json:"profile_color"`
	Time         string `json:"time"`
	ImageURL     string `json:"image_url"`
}
