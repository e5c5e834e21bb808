// Package path holds the trajectories an autopilot has been asked to follow.
package path

import (
	"fmt"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/autopilot/logging"
	"go.viam.com/autopilot/trajectory"
)

// UnknownKind labels trajectories that do not report a kind.
const UnknownKind = "unknown"

// kinded is implemented by trajectories that can name their family.
type kinded interface {
	Kind() string
}

// Manager keeps the trajectories in the order they were added. It is safe for concurrent use.
type Manager struct {
	logger  logging.Logger
	metrics *Metrics

	mu           sync.Mutex
	trajectories []trajectory.Parametric
}

// NewManager returns an empty manager. metrics may be nil; a nil logger means the global one.
func NewManager(logger logging.Logger, metrics *Metrics) *Manager {
	if logger == nil {
		logger = logging.Global().Sublogger("path")
	}
	return &Manager{logger: logger, metrics: metrics}
}

// Add appends traj and returns its index.
func (m *Manager) Add(traj trajectory.Parametric) (int, error) {
	if traj == nil {
		return -1, errors.New("cannot add a nil trajectory")
	}
	kind := KindOf(traj)

	m.mu.Lock()
	m.trajectories = append(m.trajectories, traj)
	idx := len(m.trajectories) - 1
	m.metrics.recordAdd(kind, len(m.trajectories))
	m.mu.Unlock()

	m.logger.Debugw("added trajectory", "type", kind, "index", idx)
	return idx, nil
}

// Len returns the number of trajectories held.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trajectories)
}

// At returns the trajectory at index i.
func (m *Manager) At(i int) (trajectory.Parametric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.trajectories) {
		return nil, errors.Errorf("trajectory index %d out of range [0, %d)", i, len(m.trajectories))
	}
	return m.trajectories[i], nil
}

// Trajectories returns a copy of the held trajectories in insertion order.
func (m *Manager) Trajectories() []trajectory.Parametric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]trajectory.Parametric, len(m.trajectories))
	copy(out, m.trajectories)
	return out
}

// Clear drops every trajectory.
func (m *Manager) Clear() {
	m.mu.Lock()
	n := len(m.trajectories)
	m.trajectories = nil
	m.metrics.setTotal(0)
	m.mu.Unlock()

	m.logger.Debugw("cleared trajectories", "count", n)
}

// String prints out a table of each trajectory, with columns of index, type, domain and the
// position at the start of the domain.
func (m *Manager) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Type", "Domain", "Start", "Trajectory"})
	for i, traj := range m.Trajectories() {
		domain := traj.Domain()
		start := traj.Position(domain.Start)
		t.AppendRow([]interface{}{
			i,
			KindOf(traj),
			fmt.Sprintf("[%v, %v]", domain.Start, domain.End),
			fmt.Sprintf("(%.3f, %.3f, %.3f)", start.X, start.Y, start.Z),
			fmt.Sprint(traj),
		})
	}
	return t.Render()
}

// KindOf returns the family name of traj, UnknownKind if it does not report one.
func KindOf(traj trajectory.Parametric) string {
	if k, ok := traj.(kinded); ok {
		return k.Kind()
	}
	return UnknownKind
}
