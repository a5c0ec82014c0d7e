package game

import "math/rand"

// RoleAssignment pairs a connection id with the role it drew.
type RoleAssignment struct {
	PlayerID string
	Role     Role
}

// AssignRoles draws one player uniformly from the roster to be infected and
// marks everyone else healthy, mutating the roster entries. The returned
// assignments follow roster insertion order. An empty roster yields no
// assignments and no error; the caller treats that as nothing to broadcast.
//
// The rng is injected so tests can seed it. It does not need to be
// cryptographically secure; this is a party game, not a security boundary.
func AssignRoles(r *Roster, rng *rand.Rand) []RoleAssignment {
	ids := r.IDs()
	if len(ids) == 0 {
		return nil
	}

	infected := rng.Intn(len(ids))
	assignments := make([]RoleAssignment, 0, len(ids))
	for i, id := range ids {
		role := RoleHealthy
		if i == infected {
			role = RoleInfected
		}
		r.players[id].Role = role
		assignments = append(assignments, RoleAssignment{PlayerID: id, Role: role})
	}
	return assignments
}
