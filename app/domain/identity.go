package domain

// Identity represents the authenticated principal as asserted by the
// identity provider. It is owned exclusively by the session store: created
// on successful credential verification, replaced on re-authentication,
// cleared on sign-out.
type Identity struct {
	SubjectID     string `json:"subject_id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// Clone returns a copy so snapshots never alias store-owned state.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// ProviderKind identifies a federated sign-in provider.
type ProviderKind string

const (
	ProviderGoogle   ProviderKind = "google"
	ProviderFacebook ProviderKind = "facebook"
)

// Valid reports whether the provider kind is one we ship.
func (p ProviderKind) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderFacebook:
		return true
	}
	return false
}
