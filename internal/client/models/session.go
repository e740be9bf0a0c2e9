package models

// Session is the authenticated context kept between login and logout.
// Token and User are either both set or both empty.
type Session struct {
	Token string
	User  *UserSummary
}

// Authenticated reports whether the session holds a token and a user.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}
