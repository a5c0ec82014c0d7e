package game

// Phase is one discrete stage of the room's linear lifecycle. The machine
// never revisits a phase and has no cycles.
type Phase string

const (
	PhaseWaiting        Phase = "waiting"
	PhaseRoleAssignment Phase = "role-assignment"
	PhaseQuestion       Phase = "question"
	PhaseVoting         Phase = "voting"
	PhaseResults        Phase = "results"
)

func (p Phase) String() string {
	return string(p)
}
