package nexus

// PendingUpdate holds a deferred camera parameter: setters write a target
// value which only becomes the authoritative value when Apply is called
// during the per frame update pass. Getters never observe the target
// before the commit, same-value sets are no-ops, and the change callback
// fires exactly once per distinct committed transition.
type PendingUpdate[T comparable] struct {
	current  T
	target   T
	pending  bool
	onChange func(old, new T)
}

// NewPendingUpdate creates a PendingUpdate whose current value is v.
func NewPendingUpdate[T comparable](v T) PendingUpdate[T] {
	return PendingUpdate[T]{current: v, target: v}
}

// OnChange registers a callback fired from Apply on each committed
// transition to a distinct value.
func (p *PendingUpdate[T]) OnChange(fn func(old, new T)) {
	p.onChange = fn
}

// Get returns the current committed value.
func (p *PendingUpdate[T]) Get() T {
	return p.current
}

// Target returns the value that will be committed by the next Apply. If no
// set is pending it equals the current value.
func (p *PendingUpdate[T]) Target() T {
	if p.pending {
		return p.target
	}
	return p.current
}

// Set records v as the target value. Setting the value the parameter
// already has (or is already pending to) does nothing.
func (p *PendingUpdate[T]) Set(v T) {
	if p.pending {
		if v == p.target {
			return
		}
	} else if v == p.current {
		return
	}
	p.target = v
	p.pending = true
}

// Reset overwrites the current value directly, discarding any pending
// target and firing no callback. Used when a derived quantity replaces
// the committed value (e.g. re-orthonormalized axes).
func (p *PendingUpdate[T]) Reset(v T) {
	p.current = v
	p.pending = false
}

// Apply commits the pending target, if any. It reports whether the
// committed value differs from the previous current value, firing the
// change callback on that transition.
func (p *PendingUpdate[T]) Apply() bool {
	if !p.pending {
		return false
	}
	p.pending = false
	if p.target == p.current {
		return false
	}
	old := p.current
	p.current = p.target
	if p.onChange != nil {
		p.onChange(old, p.current)
	}
	return true
}
