package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "sewer-rats"

func fullRoster(t *testing.T, capacity int) *Roster {
	t.Helper()
	r := NewRoster(testKey, capacity)
	for i := 0; i < capacity; i++ {
		require.NoError(t, r.Join(string(rune('a'+i)), "player", testKey))
	}
	return r
}

func TestRosterJoin(t *testing.T) {
	cases := []struct {
		name     string
		setup    func() *Roster
		id       string
		nickname string
		key      string
		wantErr  error
	}{
		{
			name:     "valid join",
			setup:    func() *Roster { return NewRoster(testKey, 4) },
			id:       "c1",
			nickname: "alex",
			key:      testKey,
		},
		{
			name:     "wrong key rejected even with free capacity",
			setup:    func() *Roster { return NewRoster(testKey, 4) },
			id:       "c1",
			nickname: "alex",
			key:      "nope",
			wantErr:  ErrBadKey,
		},
		{
			name:     "full room rejected with valid key",
			setup:    func() *Roster { return fullRoster(t, 2) },
			id:       "c9",
			nickname: "late",
			key:      testKey,
			wantErr:  ErrRoomFull,
		},
		{
			name:     "full room reports RoomFull even with bad key",
			setup:    func() *Roster { return fullRoster(t, 2) },
			id:       "c9",
			nickname: "late",
			key:      "nope",
			wantErr:  ErrRoomFull,
		},
		{
			name:     "empty nickname rejected",
			setup:    func() *Roster { return NewRoster(testKey, 4) },
			id:       "c1",
			nickname: "",
			key:      testKey,
			wantErr:  ErrBadNickname,
		},
		{
			name:     "overlong nickname rejected",
			setup:    func() *Roster { return NewRoster(testKey, 4) },
			id:       "c1",
			nickname: "this-nickname-is-way-too-long",
			key:      testKey,
			wantErr:  ErrBadNickname,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.setup()
			err := r.Join(tc.id, tc.nickname, tc.key)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.False(t, r.Has(tc.id))
				return
			}
			require.NoError(t, err)
			assert.True(t, r.Has(tc.id))

			players := r.Players()
			p := players[len(players)-1]
			assert.False(t, p.Ready)
			assert.False(t, p.QuestionReady)
			assert.False(t, p.VotingReady)
			assert.Equal(t, RoleUnset, p.Role)
		})
	}
}

func TestRosterJoinDuplicateIDIsNoOp(t *testing.T) {
	r := NewRoster(testKey, 4)
	require.NoError(t, r.Join("c1", "alex", testKey))
	require.True(t, r.SetReady("c1", true))

	// A second join for a seated id must not duplicate the order entry or
	// reset the player's state, even when the supplied key is wrong.
	require.NoError(t, r.Join("c1", "other", "wrong"))
	assert.Equal(t, 1, r.Size())
	assert.Equal(t, []string{"c1"}, r.IDs())

	p := r.Players()[0]
	assert.Equal(t, "alex", p.Nickname)
	assert.True(t, p.Ready)
}

func TestRosterLeaveIsIdempotent(t *testing.T) {
	r := NewRoster(testKey, 4)
	require.NoError(t, r.Join("c1", "alex", testKey))
	require.NoError(t, r.Join("c2", "blair", testKey))

	r.Leave("c1")
	r.Leave("c1") // duplicate disconnect signal
	r.Leave("ghost")

	assert.Equal(t, 1, r.Size())
	assert.Equal(t, []string{"c2"}, r.IDs())
}

func TestRosterAllReadyEmptyIsFalse(t *testing.T) {
	r := NewRoster(testKey, 4)
	assert.False(t, r.AllReady(func(p *Player) bool { return p.Ready }))
}

func TestRosterAllReadyRecomputesAgainstLiveRoster(t *testing.T) {
	r := fullRoster(t, 3)
	ready := func(p *Player) bool { return p.Ready }

	ids := r.IDs()
	require.True(t, r.SetReady(ids[0], true))
	require.True(t, r.SetReady(ids[1], true))
	assert.False(t, r.AllReady(ready))
	assert.Equal(t, 2, r.ReadyCount(ready))

	// The not-ready player leaves; the remaining roster is the denominator.
	r.Leave(ids[2])
	assert.True(t, r.AllReady(ready))
	assert.Equal(t, 2, r.ReadyCount(ready))
}

func TestRosterSettersUnknownID(t *testing.T) {
	r := NewRoster(testKey, 4)
	assert.False(t, r.SetReady("ghost", true))
	assert.False(t, r.SetQuestionReady("ghost"))
	assert.False(t, r.SetVotingReady("ghost"))
}

func TestRosterResetQuestionReady(t *testing.T) {
	r := fullRoster(t, 3)
	for _, id := range r.IDs() {
		require.True(t, r.SetQuestionReady(id))
	}
	r.ResetQuestionReady()
	for _, p := range r.Players() {
		assert.False(t, p.QuestionReady)
	}
}

func TestRosterSnapshotPreservesInsertionOrder(t *testing.T) {
	r := NewRoster(testKey, 4)
	require.NoError(t, r.Join("c1", "alex", testKey))
	require.NoError(t, r.Join("c2", "blair", testKey))
	require.NoError(t, r.Join("c3", "casey", testKey))

	r.Leave("c2")
	require.NoError(t, r.Join("c4", "drew", testKey))

	assert.Equal(t, []string{"c1", "c3", "c4"}, r.IDs())

	// Snapshots are copies; mutating one must not touch roster state.
	players := r.Players()
	players[0].Ready = true
	assert.False(t, r.Players()[0].Ready)
}

func TestValidNickname(t *testing.T) {
	cases := []struct {
		nickname string
		want     bool
	}{
		{"alex", true},
		{"x", true},
		{"exactly-twenty-chars", true},
		{"", false},
		{"this-nickname-is-too-long", false},
		{"tab\there", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidNickname(tc.nickname), "nickname %q", tc.nickname)
	}
}
