// Package surface talks to the windowing system: it allocates the
// full-screen background window the player draws into and delivers the
// key events that drive volume control.
package surface

// Event is one recognized input event from the windowing system.
type Event int

const (
	// VolumeUp and VolumeDown request a volume step; anything else the
	// windowing system delivers is dropped before it reaches the loop.
	VolumeUp Event = iota
	VolumeDown
)

// Service is the windowing-system boundary. The controller only ever
// reads the surface handle as an opaque string and forwards it into the
// player invocation.
type Service interface {
	// CreateBackgroundSurface allocates a full-screen surface stacked
	// below all other windows and returns its opaque handle.
	CreateBackgroundSurface() (string, error)

	// Events delivers recognized input events. The channel is closed
	// when the service shuts down.
	Events() <-chan Event

	// Close destroys the surface and releases the connection.
	Close() error
}
