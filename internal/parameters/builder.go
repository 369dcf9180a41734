package parameters

import (
	"github.com/pkg/errors"

	"github.com/sweeney/fwc-sim/internal/arinc429"
)

// Builder assembles a Table. Setters return the builder so that common
// aircraft states can be chained:
//
//	table := parameters.NewBuilder().OnGround().EnginesRunning().Build()
type Builder struct {
	table Table
}

func NewBuilder() *Builder { return &Builder{} }

// From starts a builder from an existing table.
func From(t Table) *Builder { return &Builder{table: t} }

// Build returns a copy of the assembled table.
func (b *Builder) Build() Table { return b.table }

func (b *Builder) SetDiscrete(d Discrete, v arinc429.Value[bool]) *Builder {
	b.table.discretes[d] = v
	return b
}

func (b *Builder) SetNumeric(n Numeric, v arinc429.Value[float64]) *Builder {
	b.table.numerics[n] = v
	return b
}

// Set assigns a parameter by name. Discretes treat any non-zero value as true.
func (b *Builder) Set(name string, value float64, ssm arinc429.SignStatus) error {
	kind, id, ok := Lookup(name)
	if !ok {
		return errors.Errorf("unknown parameter %q", name)
	}
	switch kind {
	case KindDiscrete:
		b.SetDiscrete(Discrete(id), arinc429.New(value != 0, ssm))
	case KindNumeric:
		b.SetNumeric(Numeric(id), arinc429.New(value, ssm))
	}
	return nil
}

func (b *Builder) on(d Discrete) *Builder  { return b.SetDiscrete(d, arinc429.Normal(true)) }
func (b *Builder) off(d Discrete) *Builder { return b.SetDiscrete(d, arinc429.Normal(false)) }

// OnGround sets both hardwired gear discretes, both LGCIU compressed signals
// and radio heights of zero.
func (b *Builder) OnGround() *Builder {
	return b.on(EssLhLgCompressed).
		on(NormLhLgCompressed).
		LhLgCompressed(1).
		LhLgCompressed(2).
		RadioHeights(0, 0)
}

func (b *Builder) LhLgCompressed(lgciu int) *Builder {
	return b.on(LhLgCompressed1 + Discrete(offset("lh lg compressed", lgciu, 2)))
}

func (b *Builder) LhLgExtended(lgciu int) *Builder {
	return b.off(LhLgCompressed1 + Discrete(offset("lh lg compressed", lgciu, 2)))
}

// GearDownLocked sets every downlock sensor of both LGCIUs.
func (b *Builder) GearDownLocked() *Builder {
	for _, d := range []Discrete{
		LhGearDownLock1, LhGearDownLock2,
		RhGearDownLock1, RhGearDownLock2,
		NoseGearDownLock1, NoseGearDownLock2,
	} {
		b.on(d)
	}
	return b
}

// MasterLeverOn selects the engine master lever on with ECU channel A in
// control.
func (b *Builder) MasterLeverOn(eng int) *Builder {
	b.on(engine("master lever", eng, Eng1MasterLeverSelectOn, Eng2MasterLeverSelectOn))
	b.on(engine("channel in control", eng, Eng1ChannelAInControl, Eng2ChannelAInControl))
	return b.off(engine("channel in control", eng, Eng1ChannelBInControl, Eng2ChannelBInControl))
}

// AtOrAboveIdle reports core speed at or above idle on both channels.
func (b *Builder) AtOrAboveIdle(eng int) *Builder {
	b.on(engine("core speed", eng, Eng1CoreSpeedAtOrAboveIdleA, Eng2CoreSpeedAtOrAboveIdleA))
	return b.on(engine("core speed", eng, Eng1CoreSpeedAtOrAboveIdleB, Eng2CoreSpeedAtOrAboveIdleB))
}

func (b *Builder) OneEngineRunning() *Builder {
	return b.MasterLeverOn(1).AtOrAboveIdle(1)
}

func (b *Builder) EnginesRunning() *Builder {
	return b.MasterLeverOn(1).AtOrAboveIdle(1).MasterLeverOn(2).AtOrAboveIdle(2)
}

// EngineTla sets both channels of an engine's thrust lever angle.
func (b *Builder) EngineTla(eng int, degrees float64) *Builder {
	b.SetNumeric(engine("tla", eng, Eng1TlaA, Eng2TlaA), arinc429.Normal(degrees))
	return b.SetNumeric(engine("tla", eng, Eng1TlaB, Eng2TlaB), arinc429.Normal(degrees))
}

func (b *Builder) EnginesAtTakeoffPower() *Builder {
	return b.EngineTla(1, 45).EngineTla(2, 45)
}

func (b *Builder) EnginesAtIdle() *Builder {
	return b.EngineTla(1, 0).EngineTla(2, 0)
}

// ComputedSpeeds sets the three ADC speeds in knots.
func (b *Builder) ComputedSpeeds(s1, s2, s3 float64) *Builder {
	b.SetNumeric(ComputedSpeed1, arinc429.Normal(s1))
	b.SetNumeric(ComputedSpeed2, arinc429.Normal(s2))
	return b.SetNumeric(ComputedSpeed3, arinc429.Normal(s3))
}

// RadioHeights sets both radio altimeters in feet.
func (b *Builder) RadioHeights(h1, h2 float64) *Builder {
	b.SetNumeric(RadioHeight1, arinc429.Normal(h1))
	return b.SetNumeric(RadioHeight2, arinc429.Normal(h2))
}

// RadioHeightsAtCruise simulates radio altimeters out of range of a ground
// return, which report no computed data.
func (b *Builder) RadioHeightsAtCruise() *Builder {
	b.SetNumeric(RadioHeight1, arinc429.NoComputed(10000.0))
	return b.SetNumeric(RadioHeight2, arinc429.NoComputed(10000.0))
}

// Altitudes sets the three barometric altitudes in feet.
func (b *Builder) Altitudes(a1, a2, a3 float64) *Builder {
	b.SetNumeric(Altitude1, arinc429.Normal(a1))
	b.SetNumeric(Altitude2, arinc429.Normal(a2))
	return b.SetNumeric(Altitude3, arinc429.Normal(a3))
}

func (b *Builder) AltiSelect(feet float64) *Builder {
	return b.SetNumeric(AltiSelect, arinc429.Normal(feet))
}

func (b *Builder) TakeoffConfigTestPressed() *Builder { return b.on(ToConfigTest) }

func (b *Builder) Eng1FirePbOut() *Builder { return b.on(Eng1FirePbOut) }

// ApEngaged engages an autopilot on both its command and monitor lanes.
func (b *Builder) ApEngaged(ap int) *Builder {
	b.on(engine("ap engd com", ap, Ap1EngdCom, Ap2EngdCom))
	return b.on(engine("ap engd mon", ap, Ap1EngdMon, Ap2EngdMon))
}

func (b *Builder) ApDisengaged(ap int) *Builder {
	b.off(engine("ap engd com", ap, Ap1EngdCom, Ap2EngdCom))
	return b.off(engine("ap engd mon", ap, Ap1EngdMon, Ap2EngdMon))
}

// AutoCallOutPins programs the common radio altitude call-out set: TWENTY
// FIVE HUNDRED, ONE THOUSAND, FIVE HUNDRED down to FIVE, and the HUNDRED
// ABOVE and MINIMUM call-outs.
func (b *Builder) AutoCallOutPins() *Builder {
	b.on(AutoCallOut2500B)
	for _, ft := range []int{1000, 500, 400, 300, 200, 100, 50, 40, 30, 20, 10, 5} {
		b.on(callOutPin(ft))
	}
	return b.on(DecisionHeightCodeA).
		on(DecisionHeightCodeB).
		on(DecisionHeightPlus100FtCodeA).
		on(DecisionHeightPlus100FtCodeB)
}

// DecisionHeights sets the captain and first officer decision heights in
// feet.
func (b *Builder) DecisionHeights(h1, h2 float64) *Builder {
	b.SetNumeric(DecisionHeight1, arinc429.Normal(h1))
	return b.SetNumeric(DecisionHeight2, arinc429.Normal(h2))
}

func (b *Builder) AThrEngaged() *Builder { return b.on(AThrEngaged) }

// LandTrackMode reports LAND mode on an FMGC.
func (b *Builder) LandTrackMode(fmgc int) *Builder {
	return b.on(LandTrkModeOn1 + Discrete(offset("land trk mode on", fmgc, 2)))
}

var presets = map[string]func(*Builder) *Builder{
	"on_ground":                   (*Builder).OnGround,
	"one_engine_running":          (*Builder).OneEngineRunning,
	"engines_running":             (*Builder).EnginesRunning,
	"engines_at_takeoff_power":    (*Builder).EnginesAtTakeoffPower,
	"engines_at_idle":             (*Builder).EnginesAtIdle,
	"radio_heights_at_cruise":     (*Builder).RadioHeightsAtCruise,
	"takeoff_config_test_pressed": (*Builder).TakeoffConfigTestPressed,
	"eng1_fire_pb_out":            (*Builder).Eng1FirePbOut,
	"gear_down_locked":            (*Builder).GearDownLocked,
	"auto_call_out_pins":          (*Builder).AutoCallOutPins,
	"athr_engaged":                (*Builder).AThrEngaged,
}

// Preset applies a named aircraft state.
func (b *Builder) Preset(name string) error {
	p, ok := presets[name]
	if !ok {
		return errors.Errorf("unknown preset %q", name)
	}
	p(b)
	return nil
}
