package media

import (
	"errors"
	"fmt"
)

// PodID indexes a Pod inside a PodArena
type PodID int32

// NoPod marks the end of a pod chain
const NoPod PodID = -1

// ErrChainTooDeep is returned by Walk when a chain is longer than the allowed depth.
// An arena containing a cycle always ends up here.
var ErrChainTooDeep = errors.New("pod chain exceeds depth limit")

// Pod is a single comment of a chain. Next points to the nested pod or is NoPod.
type Pod struct {
	Message string
	Next    PodID
}

// PodArena stores the pod chains of a Media. Heads holds the first pod of every
// chain in list order, Pods holds all pods of all chains.
type PodArena struct {
	Pods  []Pod
	Heads []PodID
}

// Len returns the number of chains
func (a *PodArena) Len() int {
	return len(a.Heads)
}

// Get returns the pod stored at id
func (a *PodArena) Get(id PodID) Pod {
	return a.Pods[id]
}

// Contains reports whether id is a valid index into the arena
func (a *PodArena) Contains(id PodID) bool {
	return id >= 0 && int(id) < len(a.Pods)
}

// New appends an unlinked pod and returns its id
func (a *PodArena) New(message string) PodID {
	a.Pods = append(a.Pods, Pod{Message: message, Next: NoPod})
	return PodID(len(a.Pods) - 1)
}

// SetMessage replaces the message of an existing pod
func (a *PodArena) SetMessage(id PodID, message string) {
	a.Pods[id].Message = message
}

// Link makes child the nested pod of parent
func (a *PodArena) Link(parent, child PodID) {
	a.Pods[parent].Next = child
}

// AddHead appends a chain head to the list of chains
func (a *PodArena) AddHead(id PodID) {
	a.Heads = append(a.Heads, id)
}

// AddChain appends a new chain built from the given messages, outermost first,
// and returns the id of its head. Without messages nothing is added and NoPod is returned.
func (a *PodArena) AddChain(messages ...string) PodID {
	if len(messages) == 0 {
		return NoPod
	}
	head := a.New(messages[0])
	prev := head
	for _, m := range messages[1:] {
		id := a.New(m)
		a.Link(prev, id)
		prev = id
	}
	a.AddHead(head)
	return head
}

// Walk visits the chain starting at head, outermost pod first.
// depth starts at 1. Walking stops with ErrChainTooDeep once more than maxDepth
// pods were visited (maxDepth <= 0 means len(a.Pods), which is enough for any acyclic chain).
func (a *PodArena) Walk(head PodID, maxDepth int, fn func(depth int, id PodID, p Pod) error) error {
	if maxDepth <= 0 {
		maxDepth = len(a.Pods)
	}
	depth := 0
	for id := head; id != NoPod; {
		if !a.Contains(id) {
			return fmt.Errorf("%w: pod id %d out of range (%d pods)", ErrInvalidModel, id, len(a.Pods))
		}
		depth++
		if depth > maxDepth {
			return fmt.Errorf("%w: limit %d", ErrChainTooDeep, maxDepth)
		}
		p := a.Pods[id]
		if err := fn(depth, id, p); err != nil {
			return err
		}
		id = p.Next
	}
	return nil
}

// Chain returns the messages of the i-th chain, outermost first
func (a *PodArena) Chain(i int, maxDepth int) ([]string, error) {
	if i < 0 || i >= len(a.Heads) {
		return nil, fmt.Errorf("chain %d out of range (%d chains)", i, len(a.Heads))
	}
	var messages []string
	err := a.Walk(a.Heads[i], maxDepth, func(_ int, _ PodID, p Pod) error {
		messages = append(messages, p.Message)
		return nil
	})
	return messages, err
}

// Depth returns the length of the chain starting at head
func (a *PodArena) Depth(head PodID) (int, error) {
	n := 0
	err := a.Walk(head, 0, func(depth int, _ PodID, _ Pod) error {
		n = depth
		return nil
	})
	return n, err
}
