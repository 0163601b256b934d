package domain

// Impersonation is the session overlay letting an authenticated identity
// temporarily act as another user without re-authenticating.
type Impersonation struct {
	Active             bool   `json:"active"`
	ImpersonatedUserID string `json:"impersonatedUserId"`
	OriginalUserID     string `json:"originalUserId"`
}

// Session is the authentication state of the running application.
// CurrentUser is the effective acting identity: the impersonated user while
// the overlay is active, the real user otherwise.
//
// Session records written before the impersonation feature existed decode
// with a zero-value overlay, which is exactly the inactive default.
type Session struct {
	CurrentUser     string        `json:"currentUser"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Impersonation   Impersonation `json:"impersonation"`
}

// RealUserID returns the identity that actually authenticated, looking
// through an active impersonation overlay.
func (s Session) RealUserID() string {
	if s.Impersonation.Active {
		return s.Impersonation.OriginalUserID
	}
	return s.CurrentUser
}
