package types

// MembershipStatus represents the user's membership status in an organization
type MembershipStatus struct {
	Login    string
	IsMember bool
	IsOwner  bool
	Role     string
}
