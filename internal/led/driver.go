package led

import "errors"

// MaxBrightness is the top of the brightness scale used in frames. Drivers
// rescale it to whatever the hardware exposes.
const MaxBrightness = 4095

// Frame maps hardware channel indices to brightness in [0, MaxBrightness].
// Channels absent from a frame are rendered off.
type Frame map[int]int

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	for ch, v := range f {
		out[ch] = v
	}
	return out
}

// Driver abstracts the light array hardware. Rendering is idempotent and
// last-write-wins.
type Driver interface {
	// Render applies a full frame.
	Render(frame Frame) error

	// TurnOff switches every channel off.
	TurnOff() error

	// OpenSession prepares the hardware for rendering.
	OpenSession() error

	// CloseSession releases the hardware.
	CloseSession() error

	// Channels returns the number of addressable hardware channels.
	Channels() int
}

// ErrSessionClosed is returned when rendering before OpenSession.
var ErrSessionClosed = errors.New("led session not open")
