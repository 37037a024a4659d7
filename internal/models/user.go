package models

// User is the authenticated account as returned by the bewell API. The token
// is a bearer credential attached to subsequent requests.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// UploadedPhoto is server-side photo metadata attached to a user.
type UploadedPhoto struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Caption      string `json:"caption"`
	DateUploaded string `json:"date_uploaded"` // RFC3339
}
