// Package memscene is an in-memory scene: apartment floors, an instance pool,
// the drag preview and the editor tool state.
package memscene

import (
	"slices"

	"planner/internal/domain"
	"planner/internal/ports"
)

// Pool recycles released instances so repeated placement does not allocate
type Pool struct {
	free    []*domain.ObjectInstance
	live    map[*domain.ObjectInstance]struct{}
	created int
}

var _ ports.InstancePool = (*Pool)(nil)

func NewPool() *Pool {
	return &Pool{live: make(map[*domain.ObjectInstance]struct{})}
}

// Acquire returns a reinitialized instance with a fresh id
func (p *Pool) Acquire(obj *domain.ObjectDefinition, pos domain.Vec3, floor int) *domain.ObjectInstance {
	var inst *domain.ObjectInstance
	if n := len(p.free); n > 0 {
		inst = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		inst = domain.NewObjectInstance()
		p.created++
	}
	inst.Reinitialize(obj, pos, floor)
	p.live[inst] = struct{}{}
	return inst
}

// Release returns inst to the pool. Releasing an instance twice is a no-op.
func (p *Pool) Release(inst *domain.ObjectInstance) {
	if inst == nil {
		return
	}
	if _, ok := p.live[inst]; !ok {
		return
	}
	delete(p.live, inst)
	if !slices.Contains(p.free, inst) {
		p.free = append(p.free, inst)
	}
}

// Live returns the number of acquired instances
func (p *Pool) Live() int { return len(p.live) }

// Free returns the number of instances waiting for reuse
func (p *Pool) Free() int { return len(p.free) }

// Created returns the total number of instances ever allocated
func (p *Pool) Created() int { return p.created }
