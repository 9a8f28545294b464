package history

// Operation identifies what the stack did, reported to observers
type Operation string

const (
	OpExecute Operation = "execute"
	OpUndo    Operation = "undo"
	OpRedo    Operation = "redo"
	OpEvict   Operation = "evict"
)

// Observer is notified after every stack mutation
type Observer interface {
	CommandApplied(op Operation, cmd Command, undoLen, redoLen int)
}

// Stack holds executed history and the redo sequence. Executing a new command
// discards the redo sequence.
type Stack struct {
	undo     []Command
	redo     []Command
	maxDepth int
	observer Observer
	executed int
}

// Option configures a Stack
type Option func(*Stack)

// WithMaxDepth bounds the executed history; the oldest entry is dropped first.
// Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(s *Stack) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Stack) { s.observer = o }
}

func NewStack(opts ...Option) *Stack {
	s := &Stack{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the command, appends it to the history and clears the redo sequence
func (s *Stack) Execute(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Execute()
	s.executed++
	s.undo = append(s.undo, cmd)
	s.redo = nil
	s.notify(OpExecute, cmd)

	for s.maxDepth > 0 && len(s.undo) > s.maxDepth {
		evicted := s.undo[0]
		s.undo[0] = nil
		s.undo = s.undo[1:]
		s.notify(OpEvict, evicted)
	}
}

// Undo reverts the latest command. It reports false when the history is empty.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	cmd.Undo()
	s.redo = append(s.redo, cmd)
	s.notify(OpUndo, cmd)
	return true
}

// Redo re-executes the latest undone command. It reports false when nothing can be redone.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	cmd.Execute()
	s.undo = append(s.undo, cmd)
	s.notify(OpRedo, cmd)
	return true
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Len returns the sizes of the executed and redo sequences
func (s *Stack) Len() (undo, redo int) { return len(s.undo), len(s.redo) }

// Executed counts the commands run through Execute, including evicted ones
func (s *Stack) Executed() int { return s.executed }

// Top returns the commands Undo and Redo would act on, nil when a sequence is empty
func (s *Stack) Top() (undo, redo Command) {
	if len(s.undo) > 0 {
		undo = s.undo[len(s.undo)-1]
	}
	if len(s.redo) > 0 {
		redo = s.redo[len(s.redo)-1]
	}
	return undo, redo
}

// Names returns the executed history names, oldest first
func (s *Stack) Names() []string {
	names := make([]string, len(s.undo))
	for i, cmd := range s.undo {
		names[i] = NameOf(cmd)
	}
	return names
}

func (s *Stack) notify(op Operation, cmd Command) {
	if s.observer != nil {
		s.observer.CommandApplied(op, cmd, len(s.undo), len(s.redo))
	}
}
