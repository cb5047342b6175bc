package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
	"github.com/nhle/dashboard/internal/testutil"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	adapter *store.Adapter
	raw     *store.SQLiteStore
	clock   *testutil.Clock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	a, raw := testutil.NewTestAdapter(t)
	return fixture{
		ctx:     context.Background(),
		adapter: a,
		raw:     raw,
		clock:   testutil.NewClock(epoch),
	}
}

func (f fixture) storedTasks(t *testing.T) []model.Task {
	t.Helper()
	var tasks []model.Task
	require.True(t, f.adapter.Read(f.ctx, store.KeyTasks, &tasks), "tasks key missing")
	return tasks
}

func (f fixture) storedNotifications(t *testing.T) []model.Notification {
	t.Helper()
	var ns []model.Notification
	require.True(t, f.adapter.Read(f.ctx, store.KeyNotifications, &ns), "notifications key missing")
	return ns
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
