package host

// Event is a lifecycle or surface notification delivered from the host
// into the render loop's inbound channel.
type Event interface {
	hostEvent()
}

// EventResize announces a new surface size in physical pixels.
type EventResize struct {
	WidthPx  int
	HeightPx int
}

// EventKeyboardVisibility announces an inferred soft-keyboard change.
type EventKeyboardVisibility struct {
	Visible         bool
	VisibleHeightPx int
}

// EventPause asks the core to snapshot state; compositing stops until the
// matching resume.
type EventPause struct{}

// EventResume restores a paused core.
type EventResume struct{}

// EventQuit requests a clean shutdown.
type EventQuit struct{}

func (EventResize) hostEvent()             {}
func (EventKeyboardVisibility) hostEvent() {}
func (EventPause) hostEvent()              {}
func (EventResume) hostEvent()             {}
func (EventQuit) hostEvent()               {}
