package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yintu/pmc/pkg/application/dto"
)

type recordingObserver struct {
	stages  []string
	reports int
}

func (o *recordingObserver) ObserveStage(stage string, _ time.Duration) { o.stages = append(o.stages, stage) }
func (o *recordingObserver) ObserveReport(*dto.Report)                  { o.reports++ }

type failingHandler struct{}

func (failingHandler) CanHandle(string) bool { return true }
func (failingHandler) Handle(Event) error    { return errors.New("boom") }

func TestInMemoryEventStore_Versions(t *testing.T) {
	store := NewInMemoryEventStore()
	at := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendEvent("run-1", NewEvent(StageCompletedEvent, "run-1", StageCompleted{Stage: "load"}, at)))
	require.NoError(t, store.AppendEvent("run-2", NewEvent(StageCompletedEvent, "run-2", StageCompleted{Stage: "load"}, at)))
	require.NoError(t, store.AppendEvent("run-1", NewEvent(StageCompletedEvent, "run-1", StageCompleted{Stage: "validate"}, at)))

	run1, err := store.ReadEvents("run-1", 1)
	require.NoError(t, err)
	require.Len(t, run1, 2)
	assert.Equal(t, 1, run1[0].Version())
	assert.Equal(t, 2, run1[1].Version())

	tail, err := store.ReadEvents("run-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "validate", tail[0].Data().(StageCompleted).Stage)

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.ReadEvents("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryEventStore_HandlerErrors(t *testing.T) {
	store := NewInMemoryEventStore()
	require.NoError(t, store.Subscribe([]string{StageCompletedEvent}, failingHandler{}))

	err := store.AppendEvent("run", NewEvent(StageCompletedEvent, "run", StageCompleted{}, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	events, _ := store.ReadEvents("run", 1)
	assert.Len(t, events, 1, "event is stored even when a handler fails")

	assert.Error(t, store.Subscribe([]string{StageCompletedEvent}, nil))
}

func TestJournal_ForwardsToObserver(t *testing.T) {
	store := NewInMemoryEventStore()
	obs := &recordingObserver{}
	require.NoError(t, store.Subscribe([]string{StageCompletedEvent, ReportAssembledEvent}, NewObserverHandler(obs)))

	journal := NewJournal(store, "run-9", nil)
	journal.ObserveStage("load", time.Second)
	journal.ObserveStage("reconcile", time.Millisecond)
	journal.ObserveReport(&dto.Report{
		Summary: dto.SummaryStats{TotalOrders: 3, TotalRows: 5},
		Diagnostics: []dto.Diagnostic{
			dto.Warningf("load", "inventory.xlsx", "inventory source unavailable"),
			dto.Warningf("validate", "", "2 shortage order refs match no order"),
			dto.Infof("load", "supplier.xlsx", "1 unparseable modification dates treated as missing"),
		},
	})

	assert.Equal(t, []string{"load", "reconcile"}, obs.stages)
	assert.Equal(t, 1, obs.reports)

	events, err := journal.Events()
	require.NoError(t, err)
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type()
	}
	assert.Equal(t, []string{StageCompletedEvent, StageCompletedEvent, SourceDegradedEvent, ReportAssembledEvent}, types)
	assert.Equal(t, "inventory.xlsx", events[2].Data().(SourceDegraded).Source)
	assert.Equal(t, 3, events[3].Data().(ReportAssembled).Orders)
}

type unreadableStore struct {
	*InMemoryEventStore
}

func (unreadableStore) ReadEvents(string, int) ([]Event, error) { return nil, errors.New("stream lost") }

func TestJournal_EventsReportsReadErrors(t *testing.T) {
	journal := NewJournal(unreadableStore{NewInMemoryEventStore()}, "run-3", nil)
	journal.ObserveStage("load", time.Millisecond)

	events, err := journal.Events()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run-3")
	assert.Contains(t, err.Error(), "stream lost")
	assert.Nil(t, events)
}
