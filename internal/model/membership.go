package model

// Outcome tells a caller what a membership operation actually did.
// AlreadyMember and NotMember are informational, not failures.
type Outcome string

const (
	OutcomeCreated       Outcome = "created"
	OutcomeJoined        Outcome = "joined"
	OutcomeAlreadyMember Outcome = "already_member"
	OutcomeLeft          Outcome = "left"
	OutcomeNotMember     Outcome = "not_member"
	OutcomeHostChanged   Outcome = "host_changed"
)

type MembershipResult struct {
	Room    Room
	Outcome Outcome
}

// Informational outcomes leave both stores untouched.
func (o Outcome) Informational() bool {
	return o == OutcomeAlreadyMember || o == OutcomeNotMember
}
