// Package phase implements the season phase state machine:
// the ordered walk through a season's fifteen phases, the tournament
// seeding that kicks off each tournament phase, the match-simulation loop
// that drains a phase's pending matches, and the completion/advancement
// logic that ties a phase's outcome into the next one.
//
// Every mutating Machine method serializes through a per-save lock, per
// the writers-take-exclusive-access concurrency model; GetTimeState is
// the one read-only path that bypasses it.
package phase

import (
	"context"
	"sync"

	"esports-career-sim/cache"
	"esports-career-sim/config"
	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
	"esports-career-sim/pkg/logger"
	"esports-career-sim/repository"
)

// Machine orchestrates one save's phase state machine over a
// repository.Store, optionally fronted by a Cache for GetTimeState
// snapshots and rolled MetaWeights.
type Machine struct {
	store repository.Store
	cache *cache.Cache
	cfg   *config.Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	progress chan<- ProgressEvent
}

// ProgressEvent is the between-phases progress snapshot FastForwardTo
// emits so a caller can render progress without polling GetTimeState.
type ProgressEvent struct {
	SaveID           string
	Season           uint32
	Phase            model.SeasonPhase
	Status           PhaseStatus
	PhasesAdvanced   int
	MatchesSimulated int
}

// NewMachine wires a Machine over store. c may be nil; every cache read
// and write is best-effort.
func NewMachine(store repository.Store, c *cache.Cache, cfg *config.Config) *Machine {
	return &Machine{
		store: store,
		cache: c,
		cfg:   cfg,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the per-save mutex for saveID, creating it on first use.
func (m *Machine) lockFor(saveID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[saveID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[saveID] = l
	}
	return l
}

// withSaveLock runs fn while holding saveID's per-save lock, and
// invalidates the save's cached time-state snapshot afterward since every
// mutating operation can change it.
func (m *Machine) withSaveLock(ctx context.Context, saveID string, fn func() error) error {
	l := m.lockFor(saveID)
	l.Lock()
	defer l.Unlock()
	err := fn()
	if m.cache != nil {
		m.cache.Invalidate(ctx, cache.TimeStateKey(saveID))
	}
	return err
}

func (m *Machine) loadSave(ctx context.Context, saveID string) (*model.Save, error) {
	s, err := m.store.Saves().Get(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(errors.NotFound, "load save", err)
	}
	return s, nil
}

func (m *Machine) logFields(saveID string) logger.Fields {
	return logger.ForSave(saveID)
}

// SetProgress attaches a progress channel. Sends never block: an event a
// slow consumer would stall on is dropped instead.
func (m *Machine) SetProgress(ch chan<- ProgressEvent) {
	m.progress = ch
}

func (m *Machine) emitProgress(ev ProgressEvent) {
	if m.progress == nil {
		return
	}
	select {
	case m.progress <- ev:
	default:
	}
}
