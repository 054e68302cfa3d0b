package infra_metrics_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	infra_memory "github.com/humanbelnik/roomsync/core/internal/infra/memory"
	infra_metrics "github.com/humanbelnik/roomsync/core/internal/infra/metrics"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := infra_metrics.New(reg)

	c.Outcome(usecase_membership.OpJoin, model.OutcomeJoined)
	c.Outcome(usecase_membership.OpJoin, model.OutcomeJoined)
	c.Conflict(usecase_membership.OpLeave)

	count, err := testutil.GatherAndCount(reg, "rooms_membership_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// A user missing from the user store makes every mirror write fail while
// the room write still lands.
func TestInconsistentWritesAreCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := infra_metrics.New(reg)
	ctx := context.Background()

	uc := usecase_membership.New(infra_memory.NewRooms(), infra_memory.NewUsers(), c, 5, 3)

	res, err := uc.CreateRoom(ctx, uuid.New(), "standup", 2)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCreated, res.Outcome)

	_, err = uc.JoinRoom(ctx, uuid.New(), res.Room.ID)
	require.NoError(t, err)

	inconsistent, err := testutil.GatherAndCount(reg, "rooms_membership_inconsistent_writes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, inconsistent)

	room, err := uc.GetRoom(ctx, res.Room.ID)
	require.NoError(t, err)
	assert.Len(t, room.Participants, 2)
}
