package sheets

import (
	"time"

	"github.com/sweeney/fwc-sim/internal/logic"
)

// NewGround is the LGCIU based ground signal.
type NewGround interface {
	NewGround() bool
	Lgciu12Inv() bool
}

// NewGroundSheet cross-checks each LGCIU against its hardwired gear discrete.
// A disagreement that persists for a second, or an LGCIU that stops
// reporting, latches that LGCIU as invalid until the two agree again.
type NewGroundSheet struct {
	conf      [4]*logic.Confirmation
	mem       [2]*logic.Memory
	newGround bool
	inv       bool
}

func NewNewGroundSheet() *NewGroundSheet {
	return &NewGroundSheet{
		conf: [4]*logic.Confirmation{
			logic.NewConfirmation(true, time.Second),
			logic.NewConfirmation(true, 500*time.Millisecond),
			logic.NewConfirmation(true, time.Second),
			logic.NewConfirmation(true, 500*time.Millisecond),
		},
		mem: [2]*logic.Memory{logic.NewMemory(true), logic.NewMemory(true)},
	}
}

func (s *NewGroundSheet) Update(delta time.Duration, p gearCompressedSignals) {
	hardwired := [2]bool{p.EssLhLgCompressed().Value(), p.NormLhLgCompressed().Value()}

	var invalid, compressed [2]bool
	for i := 0; i < 2; i++ {
		lgciu := p.LhLgCompressed(i + 1)
		disagree := lgciu.Value() != hardwired[i]

		set := s.conf[2*i].Update(disagree, delta)
		set = lgciu.IsNoComputedData() || lgciu.IsInv() || set
		reset := s.conf[2*i+1].Update(!disagree, delta)

		invalid[i] = s.mem[i].Update(set, reset)
		compressed[i] = lgciu.Value() && hardwired[i]
	}

	s.newGround = compressed[0] && compressed[1]
	s.inv = invalid[0] || invalid[1]
}

func (s *NewGroundSheet) NewGround() bool  { return s.newGround }
func (s *NewGroundSheet) Lgciu12Inv() bool { return s.inv }

// Ground is the aircraft on-ground determination.
type Ground interface {
	Ground() bool
	GroundImmediate() bool
}

// GroundDetectionSheet votes on the hardwired gear discretes and the radio
// altimeters. With both altimeters failed, two votes suffice; otherwise three
// are needed. When both altimeters report NCD the LGCIU ground signal is
// trusted for a while.
type GroundDetectionSheet struct {
	mem             [2]*logic.Memory
	conf            *logic.Confirmation
	mrtrig          *logic.MonostableTrigger
	groundImmediate bool
	ground          bool
}

func NewGroundDetectionSheet() *GroundDetectionSheet {
	return &GroundDetectionSheet{
		mem:    [2]*logic.Memory{logic.NewMemory(true), logic.NewMemory(true)},
		conf:   logic.NewConfirmation(true, time.Second),
		mrtrig: logic.NewRetriggerableMonostable(true, 10*time.Second),
	}
}

func (s *GroundDetectionSheet) Update(delta time.Duration, p groundSignals, lgciu NewGround) {
	ess := p.EssLhLgCompressed().Value()
	norm := p.NormLhLgCompressed().Value()
	reset := !ess || !norm

	var radioOnGround, ncd, inv [2]bool
	for i := 0; i < 2; i++ {
		rh := p.RadioHeight(i + 1)
		ncd[i], inv[i] = rh.IsNoComputedData(), rh.IsInv()
		set := rh.Value() < 5
		latched := s.mem[i].Update(set, reset)
		radioOnGround[i] = (latched || set) && !ncd[i] && !inv[i]
	}

	votes := countTrue(ess, norm, radioOnGround[0], radioOnGround[1])
	dualRadioInv := inv[0] && inv[1]
	byVote := (votes > 2 && !dualRadioInv) || (votes > 1 && dualRadioInv)

	trig := s.mrtrig.Update(ncd[0] && ncd[1] && !lgciu.Lgciu12Inv(), delta)
	byLgciu := trig && lgciu.NewGround()

	s.groundImmediate = byVote || byLgciu
	s.ground = s.conf.Update(s.groundImmediate, delta)
}

func (s *GroundDetectionSheet) Ground() bool          { return s.ground }
func (s *GroundDetectionSheet) GroundImmediate() bool { return s.groundImmediate }

// Speed is the 80 kt speed determination.
type Speed interface {
	AcSpeedAbove80Kt() bool
	AdcTestInhib() bool
}

// SpeedDetectionSheet latches above 80 kt when two ADCs agree above 83 kt and
// releases when two agree below 77 kt. A single invalid ADC lets one valid
// reading count twice. A functional test on any ADC resets the latch.
type SpeedDetectionSheet struct {
	conf         [3]*logic.Confirmation
	mem          *logic.Memory
	testReset    *logic.MonostableTrigger
	testInhib    *logic.MonostableTrigger
	above80      bool
	adcTestInhib bool
}

func NewSpeedDetectionSheet() *SpeedDetectionSheet {
	return &SpeedDetectionSheet{
		conf: [3]*logic.Confirmation{
			logic.NewConfirmation(true, time.Second),
			logic.NewConfirmation(true, time.Second),
			logic.NewConfirmation(true, time.Second),
		},
		mem:       logic.NewMemory(true),
		testReset: logic.NewMonostable(false, 500*time.Millisecond),
		testInhib: logic.NewMonostable(false, 1500*time.Millisecond),
	}
}

func (s *SpeedDetectionSheet) Update(delta time.Duration, p computedSpeedSignals) {
	var above, below [3]bool
	anyInvalid, anyAbove, anyBelow, anyTest := false, false, false, false

	for i := 0; i < 3; i++ {
		spd := p.ComputedSpeed(i + 1)
		invalid := invOrNcd(spd)
		confirmed := s.conf[i].Update(spd.Value() > 50 && !invalid, delta)

		above[i] = confirmed && !invalid && spd.Value() > 83
		below[i] = spd.Value() < 77 && !invalid

		anyInvalid = anyInvalid || invalid
		anyAbove = anyAbove || above[i]
		anyBelow = anyBelow || below[i]
		anyTest = anyTest || spd.IsFunctionalTest()
	}

	set := countTrue(above[0], above[1], above[2], anyAbove && anyInvalid) > 1
	testReset := s.testReset.Update(anyTest, delta)
	reset := countTrue(below[0], below[1], below[2], anyBelow && anyInvalid) > 1 || testReset

	s.above80 = s.mem.Update(set, reset)
	s.adcTestInhib = s.testInhib.Update(anyTest, delta)
}

func (s *SpeedDetectionSheet) AcSpeedAbove80Kt() bool { return s.above80 }
func (s *SpeedDetectionSheet) AdcTestInhib() bool     { return s.adcTestInhib }
