package scene

// Disposable is anything holding a resource that must be released
// explicitly: GPU buffers, textures, shaders, render targets.
type Disposable interface {
	Dispose()
}

type DisposeFunc func()

func (f DisposeFunc) Dispose() { f() }

type ledgerEntry struct {
	name string
	res  Disposable
}

// Ledger records every resource created for a mount so teardown can
// release all of them. Release runs in reverse creation order.
type Ledger struct {
	entries []ledgerEntry
}

func (l *Ledger) Track(name string, res Disposable) {
	if res == nil {
		return
	}
	l.entries = append(l.entries, ledgerEntry{name: name, res: res})
}

func (l *Ledger) Len() int { return len(l.entries) }

// Names lists tracked resources in creation order.
func (l *Ledger) Names() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.name
	}
	return names
}

// Release disposes everything tracked and empties the ledger. It returns
// the number of resources released.
func (l *Ledger) Release() int {
	n := len(l.entries)
	for i := n - 1; i >= 0; i-- {
		l.entries[i].res.Dispose()
	}
	l.entries = nil
	return n
}
