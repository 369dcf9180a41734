// Package gpio reads the cockpit pushbuttons wired to the simulator rig.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

// Button identifies one panel input.
type Button int

const (
	ToConfigTest Button = iota
	CaptMwCancel
	FoMwCancel
	EmerCancel
	InstincDiscnct1
	InstincDiscnct2
	numButtons
)

var buttonNames = [numButtons]string{
	ToConfigTest:    "to_config_test",
	CaptMwCancel:    "capt_mw_cancel",
	FoMwCancel:      "fo_mw_cancel",
	EmerCancel:      "emer_cancel",
	InstincDiscnct1: "instinc_discnct_1",
	InstincDiscnct2: "instinc_discnct_2",
}

func (b Button) String() string {
	if b < 0 || b >= numButtons {
		return "unknown"
	}
	return buttonNames[b]
}

// Buttons lists every panel input in wiring order.
func Buttons() []Button {
	out := make([]Button, 0, numButtons)
	for b := Button(0); b < numButtons; b++ {
		out = append(out, b)
	}
	return out
}

// ParseButton resolves a name produced by Button.String.
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name {
			return Button(b), true
		}
	}
	return 0, false
}

// Panel is the logical state of every button, true while pressed.
type Panel [numButtons]bool

// discretes maps each button to the FWC inputs it drives. The instinctive
// disconnect pushbutton is shared by both autopilots' engaged discretes.
var discretes = [numButtons][]parameters.Discrete{
	ToConfigTest:    {parameters.ToConfigTest},
	CaptMwCancel:    {parameters.CaptMwCancelOn},
	FoMwCancel:      {parameters.FoMwCancelOn},
	EmerCancel:      {parameters.EcpEmerCancelOn},
	InstincDiscnct1: {parameters.InstincDiscnct1ApEngd},
	InstincDiscnct2: {parameters.InstincDiscnct2ApEngd},
}

// Apply overlays the panel on a parameter table. Buttons are hardwired so
// they always carry normal operation.
func (p Panel) Apply(b *parameters.Builder) *parameters.Builder {
	for btn, pressed := range p {
		for _, d := range discretes[btn] {
			b.SetDiscrete(d, arinc429.Normal(pressed))
		}
	}
	return b
}

// Reader reads panel input states.
type Reader interface {
	// Read returns the logical state of every button.
	// Raw GPIO values are inverted: the buttons pull their line low.
	Read() (Panel, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPins is the rig wiring (BCM numbering).
var DefaultPins = map[Button]int{
	ToConfigTest:    26,
	CaptMwCancel:    16,
	FoMwCancel:      20,
	EmerCancel:      21,
	InstincDiscnct1: 19,
	InstincDiscnct2: 13,
}
