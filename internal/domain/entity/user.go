package entity

// User is an entry of the global users directory (users.json). Profile
// scalar fields are also stored individually under {id}/profile/{field}.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

const (
	ProfileFieldName     = "name"
	ProfileFieldEmail    = "email"
	ProfileFieldPassword = "password"
	ProfileFieldAddress  = "address"
)
