package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// listHeight is the number of list rows that fit under a view's header and footer
func (s *ViewState) listHeight(chrome int) int {
	if s.Height <= chrome {
		return 10
	}
	return s.Height - chrome
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToCatalogueMsg struct{}

// StartDragMsg asks the app to pick up an object and enter the plan view
type StartDragMsg struct {
	ObjectID int
}

// DragFinishedMsg is sent when the plan view drops or cancels the dragged object
type DragFinishedMsg struct {
	ObjectID  int
	Cancelled bool
}

// OpenEditorMsg asks the app to open a persisted object body
type OpenEditorMsg struct {
	Path string
}
