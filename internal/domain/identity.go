package domain

import (
	"strings"

	"github.com/google/uuid"
)

// GuestIDPrefix marks guest identifiers so they occupy the same key space as
// user ids without collision. User ids are UUIDs and can never start with it.
const GuestIDPrefix = "guest_"

// IdentityKind discriminates the two kinds of caller identity.
type IdentityKind string

const (
	KindUser  IdentityKind = "USER"
	KindGuest IdentityKind = "GUEST"
)

func (k IdentityKind) String() string { return string(k) }

// CallerIdentity is the resolved identity of an inbound request: either an
// authenticated user or a cookie-scoped guest. The prefixed string encoding
// is produced only at the storage and cookie edges via OwnerID.
type CallerIdentity struct {
	Kind IdentityKind
	// UserID is set when Kind == KindUser.
	UserID uuid.UUID
	// GuestID is the full prefixed guest identifier when Kind == KindGuest.
	GuestID string
}

// UserIdentity returns a CallerIdentity for an authenticated user.
func UserIdentity(userID uuid.UUID) CallerIdentity {
	return CallerIdentity{Kind: KindUser, UserID: userID}
}

// GuestIdentity returns a CallerIdentity for a prefixed guest id.
func GuestIdentity(guestID string) CallerIdentity {
	return CallerIdentity{Kind: KindGuest, GuestID: guestID}
}

// IsGuest reports whether the identity is a guest.
func (c CallerIdentity) IsGuest() bool { return c.Kind == KindGuest }

// IsUser reports whether the identity is an authenticated user.
func (c CallerIdentity) IsUser() bool { return c.Kind == KindUser }

// OwnerID returns the shared-key-space string encoding used to key guest and
// user activity in the same tables.
func (c CallerIdentity) OwnerID() string {
	if c.Kind == KindGuest {
		return c.GuestID
	}
	return c.UserID.String()
}

// IsGuestID reports whether a shared-key-space identifier denotes a guest.
func IsGuestID(id string) bool {
	return strings.HasPrefix(id, GuestIDPrefix) && len(id) > len(GuestIDPrefix)
}

// ParseOwnerID decodes a shared-key-space identifier back into a tagged
// CallerIdentity. Anything that is neither a prefixed guest id nor a valid
// user UUID returns ok=false.
func ParseOwnerID(id string) (CallerIdentity, bool) {
	if IsGuestID(id) {
		return GuestIdentity(id), true
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return CallerIdentity{}, false
	}
	return UserIdentity(userID), true
}
