package scheduler

import (
	"slices"

	"github.com/me/procsim/internal/bst"
	"github.com/me/procsim/internal/queue"
	"github.com/me/procsim/pkg/model"
)

// readySet is the policy-specific ready structure.
type readySet interface {
	Insert(p model.Process)
	Remove(p model.Process) bool
	Len() int
	// Next returns the process the policy would run next without removing it.
	Next() (model.Process, bool)
	Snapshot() []model.Process
}

type fifoReady struct {
	q *queue.Queue[model.Process]
}

func (r fifoReady) Insert(p model.Process)      { r.q.InsertTail(p) }
func (r fifoReady) Remove(p model.Process) bool { return r.q.DeleteByValue(p) }
func (r fifoReady) Len() int                    { return r.q.Size() }
func (r fifoReady) Next() (model.Process, bool) { return r.q.Head() }
func (r fifoReady) Snapshot() []model.Process   { return r.q.Values() }

type treeReady struct {
	t *bst.Tree[model.Process]
}

func (r treeReady) Insert(p model.Process)      { r.t.Insert(p) }
func (r treeReady) Remove(p model.Process) bool { return r.t.RemoveFunc(p, sameTicket(p)) }
func (r treeReady) Len() int                    { return r.t.Size() }
func (r treeReady) Next() (model.Process, bool) { return r.t.Max() }

// sameTicket matches the one ready entry p was stored as. The tree itself only
// orders by priority and name, so duplicates keep their left-leaning layout.
func sameTicket(p model.Process) func(model.Process) bool {
	return func(q model.Process) bool { return q.Ticket() == p.Ticket() }
}

// Snapshot lists the index from highest to lowest priority.
func (r treeReady) Snapshot() []model.Process {
	out := slices.Collect(r.t.InOrder())
	slices.Reverse(out)
	return out
}
