package typewriter

// FinishedMsg is emitted once when a Model's reveal reaches its end.
// It is emitted after Config.OnFinish has returned.
type FinishedMsg struct {
	ID int
}

// mountMsg starts a Model. Init returns a command producing it.
type mountMsg struct {
	id int
}

// State is a snapshot of the animation.
type State struct {
	Revealed string
	// Index is the number of revealed characters, in [0, Len].
	Index int
	Len   int

	Waiting  bool
	Finished bool
	Active   bool
	Paused   bool

	Cursor  CursorState
	Opacity float64
}
