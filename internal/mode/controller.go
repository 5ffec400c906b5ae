package mode

// dispatcher is the slice of the key dispatcher the controller drives.
type dispatcher interface {
	Mode() Mode
	SetMode(Mode)
}

// selector is the slice of the selection model the controller drives.
type selector interface {
	ToggleVisual()
	IsVisual() bool
	Clear()
}

// Controller applies mode transition rules. It never publishes events of
// its own; the dispatcher and the selection model announce their state
// changes on the bus.
type Controller struct {
	disp dispatcher
	sel  selector
}

// NewController wires a controller to its dispatcher and selection model.
func NewController(d dispatcher, s selector) *Controller {
	return &Controller{disp: d, sel: s}
}

// Current returns the dispatcher's mode.
func (c *Controller) Current() Mode { return c.disp.Mode() }

// EnterSearch switches to search mode. Only reachable from normal mode;
// returns false otherwise.
func (c *Controller) EnterSearch() bool {
	if c.disp.Mode() != Normal {
		return false
	}
	c.disp.SetMode(Search)
	return true
}

// EnterCommand switches to command mode. Only reachable from normal
// mode; returns false otherwise.
func (c *Controller) EnterCommand() bool {
	if c.disp.Mode() != Normal {
		return false
	}
	c.disp.SetMode(Command)
	return true
}

// ToggleVisual flips visual selection state. Visual selection rides on
// normal mode so movement bindings keep resolving; the dispatcher mode
// is left alone. Returns true when visual selection is active afterwards.
func (c *Controller) ToggleVisual() bool {
	if c.disp.Mode().TextEntry() {
		return false
	}
	c.sel.ToggleVisual()
	return c.sel.IsVisual()
}

// Exit leaves the current mode back to normal: search and command modes
// are abandoned, an active visual selection is dropped. Returns false
// when already in plain normal mode with nothing to drop, letting the
// caller fall back to its own escape behavior.
func (c *Controller) Exit() bool {
	switch c.disp.Mode() {
	case Search, Command:
		c.disp.SetMode(Normal)
		return true
	}
	if c.sel.IsVisual() {
		c.sel.Clear()
		return true
	}
	return false
}
