package common

// SyncGuard marks stretches where widgets are being set from code, so their
// change handlers can tell a programmatic update from a user edit. It nests
// and is meant for the UI goroutine only.
type SyncGuard struct {
	depth int
}

// Run calls fn with the guard held.
func (g *SyncGuard) Run(fn func()) {
	g.depth++
	defer func() { g.depth-- }()
	fn()
}

// Active reports whether a Run is in progress.
func (g *SyncGuard) Active() bool {
	return g.depth > 0
}
