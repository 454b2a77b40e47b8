package toast

// Observer is notified of every phase transition. Observers run on the
// registry's timeline and must not block.
type Observer interface {
	PhaseChanged(t *Toast, from, to Phase)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(t *Toast, from, to Phase)

// PhaseChanged implements Observer.
func (f ObserverFunc) PhaseChanged(t *Toast, from, to Phase) {
	f(t, from, to)
}
