package domain

// User is the profile record returned by the auth endpoint and persisted
// in the "user" cookie.
type User struct {
	DriverID  string `json:"driverId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar,omitempty"`
}

// Session is the locally persisted authenticated-driver context. Absence
// of a valid session is itself a valid, logged-out state.
type Session struct {
	User  User
	Token string
}

func (s Session) DriverID() string {
	return s.User.DriverID
}
