package domain

const maskedSecret = "**********"

// Secret holds a credential that must not leak into logs or serialized sessions
type Secret string

// Reveal returns the raw credential
func (s Secret) Reveal() string {
	return string(s)
}

// String masks the credential
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return maskedSecret
}

// GoString masks the credential for %#v
func (s Secret) GoString() string {
	return s.String()
}
