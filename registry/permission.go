package registry

// Permission is the outcome of a point-in-time permission check
type Permission int

const (
	// Allowed every check passed
	Allowed Permission = iota

	// Denied a check answered no
	Denied

	// Indeterminate a check failed with an error, callers treat it as a no
	Indeterminate
)

func (p Permission) String() string {
	switch p {
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	default:
		return "indeterminate"
	}
}

// Usable reports whether the command may be run
func (p Permission) Usable() bool {
	return p == Allowed
}
