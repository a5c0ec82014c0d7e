package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRolesExactlyOneInfected(t *testing.T) {
	for n := 1; n <= 6; n++ {
		// A handful of seeds per roster size; the invariant must hold for
		// every draw, including the n=1 degenerate case.
		for seed := int64(0); seed < 5; seed++ {
			r := fullRoster(t, n)
			rng := rand.New(rand.NewSource(seed))

			assignments := AssignRoles(r, rng)
			require.Len(t, assignments, n)

			infected := 0
			for _, a := range assignments {
				switch a.Role {
				case RoleInfected:
					infected++
				case RoleHealthy:
				default:
					t.Fatalf("unexpected role %q", a.Role)
				}
			}
			assert.Equal(t, 1, infected, "n=%d seed=%d", n, seed)
		}
	}
}

func TestAssignRolesEmptyRoster(t *testing.T) {
	r := NewRoster(testKey, 4)
	assert.Empty(t, AssignRoles(r, rand.New(rand.NewSource(1))))
}

func TestAssignRolesMutatesRoster(t *testing.T) {
	r := fullRoster(t, 3)
	assignments := AssignRoles(r, rand.New(rand.NewSource(7)))

	byID := make(map[string]Role, len(assignments))
	for _, a := range assignments {
		byID[a.PlayerID] = a.Role
	}
	for _, p := range r.Players() {
		assert.Equal(t, byID[p.ID], p.Role)
		assert.NotEqual(t, RoleUnset, p.Role)
	}
}

func TestAssignRolesFollowRosterOrder(t *testing.T) {
	r := fullRoster(t, 4)
	assignments := AssignRoles(r, rand.New(rand.NewSource(3)))

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.PlayerID)
	}
	assert.Equal(t, r.IDs(), ids)
}

func TestPickGameSet(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	assert.Empty(t, PickGameSet(nil, rng))

	sets := []string{"bunker", "house", "reunion"}
	for i := 0; i < 20; i++ {
		assert.Contains(t, sets, PickGameSet(sets, rng))
	}
}
