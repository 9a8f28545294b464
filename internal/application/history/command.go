// Package history records reversible operations for undo and redo.
package history

// Command is a reversible operation. Execute must not be called twice
// without an Undo in between.
type Command interface {
	Execute()
	Undo()
}

// CompositeCommand executes its sub-commands in order and undoes them in reverse.
// The stack treats it as a single entry.
type CompositeCommand struct {
	commands []Command
}

func NewCompositeCommand(commands ...Command) *CompositeCommand {
	c := &CompositeCommand{}
	c.Add(commands...)
	return c
}

// Add appends sub-commands. Nil commands are ignored.
func (c *CompositeCommand) Add(commands ...Command) {
	for _, cmd := range commands {
		if cmd != nil {
			c.commands = append(c.commands, cmd)
		}
	}
}

func (c *CompositeCommand) Execute() {
	for _, cmd := range c.commands {
		cmd.Execute()
	}
}

func (c *CompositeCommand) Undo() {
	for i := len(c.commands) - 1; i >= 0; i-- {
		c.commands[i].Undo()
	}
}

func (c *CompositeCommand) Len() int { return len(c.commands) }

// Named is implemented by commands that can describe themselves
type Named interface {
	Name() string
}

// NameOf returns the command name, or "command" when it has none
func NameOf(cmd Command) string {
	if n, ok := cmd.(Named); ok {
		return n.Name()
	}
	return "command"
}

func (c *CompositeCommand) Name() string {
	name := "composite("
	for i, cmd := range c.commands {
		if i > 0 {
			name += ","
		}
		name += NameOf(cmd)
	}
	return name + ")"
}

// Func adapts a pair of functions to Command
type Func struct {
	Label  string
	Do     func()
	Revert func()
}

func (f Func) Execute() {
	if f.Do != nil {
		f.Do()
	}
}

func (f Func) Undo() {
	if f.Revert != nil {
		f.Revert()
	}
}

func (f Func) Name() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}
