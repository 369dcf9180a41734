package fwc

import (
	"github.com/sweeney/fwc-sim/internal/logic"
	"github.com/sweeney/fwc-sim/internal/sheets"
)

// Warning codes of the call-outs that do not announce a radio height.
var (
	TenRetardWarning    = WarningCode{ATA: 34, SubATA: 0, ID: 360}
	TwentyRetardWarning = WarningCode{ATA: 34, SubATA: 0, ID: 350}
	HundredAboveWarning = WarningCode{ATA: 22, SubATA: 0, ID: 60}
	MinimumWarning      = WarningCode{ATA: 22, SubATA: 0, ID: 70}
)

var callOutWarnings = map[sheets.CallOut]WarningCode{
	sheets.CallOut5Ft:    {ATA: 34, SubATA: 0, ID: 340},
	sheets.CallOut10Ft:   {ATA: 34, SubATA: 0, ID: 330},
	sheets.CallOut20Ft:   {ATA: 34, SubATA: 0, ID: 320},
	sheets.CallOut30Ft:   {ATA: 34, SubATA: 0, ID: 310},
	sheets.CallOut40Ft:   {ATA: 34, SubATA: 0, ID: 300},
	sheets.CallOut50Ft:   {ATA: 34, SubATA: 0, ID: 290},
	sheets.CallOut100Ft:  {ATA: 34, SubATA: 0, ID: 280},
	sheets.CallOut200Ft:  {ATA: 34, SubATA: 0, ID: 270},
	sheets.CallOut300Ft:  {ATA: 34, SubATA: 0, ID: 260},
	sheets.CallOut400Ft:  {ATA: 34, SubATA: 0, ID: 255},
	sheets.CallOut500Ft:  {ATA: 34, SubATA: 0, ID: 380},
	sheets.CallOut1000Ft: {ATA: 34, SubATA: 0, ID: 390},
	sheets.CallOut2000Ft: {ATA: 34, SubATA: 0, ID: 410},
	sheets.CallOut2500Ft: {ATA: 34, SubATA: 0, ID: 420},
	sheets.CallOut2500B:  {ATA: 34, SubATA: 0, ID: 400},
}

// CallOutWarning returns the warning code of a radio altitude call-out.
func CallOutWarning(c sheets.CallOut) WarningCode { return callOutWarnings[c] }

// callOutSounds names the synthetic voice of each call-out warning.
var callOutSounds = map[WarningCode]Sound{
	TenRetardWarning:    SoundRetard,
	TwentyRetardWarning: SoundRetard,
	HundredAboveWarning: SoundHundredAbove,
	MinimumWarning:      SoundMinimum,

	CallOutWarning(sheets.CallOut5Ft):    SoundFive,
	CallOutWarning(sheets.CallOut10Ft):   SoundTen,
	CallOutWarning(sheets.CallOut20Ft):   SoundTwenty,
	CallOutWarning(sheets.CallOut30Ft):   SoundThirty,
	CallOutWarning(sheets.CallOut40Ft):   SoundForty,
	CallOutWarning(sheets.CallOut50Ft):   SoundFifty,
	CallOutWarning(sheets.CallOut100Ft):  SoundOneHundred,
	CallOutWarning(sheets.CallOut200Ft):  SoundTwoHundred,
	CallOutWarning(sheets.CallOut300Ft):  SoundThreeHundred,
	CallOutWarning(sheets.CallOut400Ft):  SoundFourHundred,
	CallOutWarning(sheets.CallOut500Ft):  SoundFiveHundred,
	CallOutWarning(sheets.CallOut1000Ft): SoundOneThousand,
	CallOutWarning(sheets.CallOut2000Ft): SoundTwoThousand,
	CallOutWarning(sheets.CallOut2500Ft): SoundTwoThousandFiveHundred,
	CallOutWarning(sheets.CallOut2500B):  SoundTwentyFiveHundred,
}

// IsCallOut reports a warning played as a synthetic voice call-out.
func (c WarningCode) IsCallOut() bool {
	_, ok := callOutSounds[c]
	return ok
}

// monitor turns the warnings raised by the sheets into the active warnings
// of the cycle. A master warning or master caution cancel silences the
// C-chord until the altitude alert drops. What it played is fed back to the
// sheets on the next cycle.
type monitor struct {
	cChordCancelled *logic.Memory
	active          []WarningCode

	minimumGenerated      bool
	hundredAboveGenerated bool
	callOutGenerated      bool
}

func newMonitor() *monitor {
	return &monitor{cChordCancelled: logic.NewMemory(false)}
}

func (m *monitor) update(cancel sheets.GeneralCancel, raised []WarningCode) {
	anyCancel := cancel.MwCancelPulseUp() || cancel.McCancelPulseUp()

	cChord := false
	for _, w := range raised {
		cChord = cChord || w == CChordWarning
	}
	silenced := m.cChordCancelled.Update(cChord && anyCancel, !cChord)

	m.active = nil
	m.minimumGenerated, m.hundredAboveGenerated, m.callOutGenerated = false, false, false
	for _, w := range raised {
		switch {
		case w == CChordWarning && silenced:
			continue
		case w == MinimumWarning:
			m.minimumGenerated = true
		case w == HundredAboveWarning:
			m.hundredAboveGenerated = true
		case w.ATA == 34:
			m.callOutGenerated = true
		}
		m.active = append(m.active, w)
	}
}

func (m *monitor) warnings() []WarningCode { return m.active }

func (m *monitor) playing(code WarningCode) bool {
	for _, w := range m.active {
		if w == code {
			return true
		}
	}
	return false
}
