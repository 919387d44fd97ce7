package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/pinmap-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoterRef(t *testing.T) {
	t.Run("authenticated voter", func(t *testing.T) {
		ref := domain.AuthenticatedVoter("thrall")

		assert.False(t, ref.IsZero())
		assert.True(t, ref.Valid())
		assert.True(t, ref.Authenticated())
		assert.Equal(t, "thrall", ref.Key())
	})

	t.Run("anonymous voter", func(t *testing.T) {
		ref := domain.AnonymousVoter("3d1f2a")

		assert.False(t, ref.IsZero())
		assert.True(t, ref.Valid())
		assert.False(t, ref.Authenticated())
		assert.Equal(t, "3d1f2a", ref.Key())
	})

	t.Run("zero ref", func(t *testing.T) {
		var ref domain.VoterRef

		assert.True(t, ref.IsZero())
		assert.False(t, ref.Valid())
	})

	t.Run("both fields set is invalid", func(t *testing.T) {
		ref := domain.VoterRef{DiscordUsername: "thrall", SessionID: "3d1f2a"}

		assert.False(t, ref.IsZero())
		assert.False(t, ref.Valid())
	})
}

func TestVoterRefJSON(t *testing.T) {
	t.Run("only discord_username on the wire", func(t *testing.T) {
		data, err := json.Marshal(domain.AuthenticatedVoter("thrall"))
		require.NoError(t, err)

		assert.JSONEq(t, `{"discord_username":"thrall"}`, string(data))
	})

	t.Run("only session_id on the wire", func(t *testing.T) {
		data, err := json.Marshal(domain.AnonymousVoter("3d1f2a"))
		require.NoError(t, err)

		assert.JSONEq(t, `{"session_id":"3d1f2a"}`, string(data))
	})
}

func TestVoteCountsApply(t *testing.T) {
	t.Run("increments", func(t *testing.T) {
		counts := domain.VoteCounts{PinID: 1}
		counts.Apply(domain.VoteUp, 1)
		counts.Apply(domain.VoteDown, 1)

		assert.Equal(t, 1, counts.Upvotes)
		assert.Equal(t, 1, counts.Downvotes)
	})

	t.Run("decrement clamps at zero", func(t *testing.T) {
		counts := domain.VoteCounts{PinID: 1}
		counts.Apply(domain.VoteUp, -1)
		counts.Apply(domain.VoteDown, -1)

		assert.Equal(t, 0, counts.Upvotes)
		assert.Equal(t, 0, counts.Downvotes)
	})
}

func TestCategorySet(t *testing.T) {
	set := domain.NewCategorySet([]string{"Raid", "Dungeon"})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("Raid"))
	assert.False(t, set.Contains("Lore"))

	empty := domain.NewCategorySet(nil)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains("Raid"))
}

func TestVoteTypeValid(t *testing.T) {
	assert.True(t, domain.VoteUp.Valid())
	assert.True(t, domain.VoteDown.Valid())
	assert.False(t, domain.VoteType("sideways").Valid())
	assert.False(t, domain.VoteType("").Valid())
}
