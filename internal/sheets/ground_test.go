package sheets

import (
	"testing"
	"time"

	"github.com/sweeney/fwc-sim/internal/arinc429"
	"github.com/sweeney/fwc-sim/internal/parameters"
)

func TestNewGround_OnGround(t *testing.T) {
	s := NewNewGroundSheet()
	s.Update(time.Second, table((*parameters.Builder).OnGround))

	if !s.NewGround() {
		t.Error("expected new ground")
	}
	if s.Lgciu12Inv() {
		t.Error("expected LGCIUs valid")
	}
}

func TestNewGround_FailedLgciuLatchesInvalid(t *testing.T) {
	s := NewNewGroundSheet()
	s.Update(time.Second, table())

	if s.NewGround() {
		t.Error("expected no new ground")
	}
	if !s.Lgciu12Inv() {
		t.Error("expected LGCIU invalid")
	}
}

func TestNewGround_DisagreementNeedsConfirmation(t *testing.T) {
	disagree := table(func(b *parameters.Builder) *parameters.Builder {
		return b.OnGround().LhLgExtended(2)
	})

	s := NewNewGroundSheet()
	s.Update(500*time.Millisecond, disagree)
	if s.Lgciu12Inv() {
		t.Error("expected disagreement to be unconfirmed after 0.5s")
	}
	s.Update(500*time.Millisecond, disagree)
	if !s.Lgciu12Inv() {
		t.Error("expected disagreement confirmed after 1s")
	}
}

func TestGroundDetection_OnGround(t *testing.T) {
	s := NewGroundDetectionSheet()
	p := table((*parameters.Builder).OnGround)

	s.Update(500*time.Millisecond, p, fakeNewGround{})
	if !s.GroundImmediate() {
		t.Error("expected ground immediate")
	}
	if s.Ground() {
		t.Error("expected ground to need confirmation")
	}

	s.Update(500*time.Millisecond, p, fakeNewGround{})
	if !s.Ground() {
		t.Error("expected ground after 1s")
	}
}

func TestGroundDetection_InFlight(t *testing.T) {
	s := NewGroundDetectionSheet()
	s.Update(time.Second, table(func(b *parameters.Builder) *parameters.Builder {
		return b.RadioHeights(1500, 1500)
	}), fakeNewGround{})

	if s.GroundImmediate() || s.Ground() {
		t.Error("expected airborne")
	}
}

func TestGroundDetection_DualRadioFailureNeedsTwoVotes(t *testing.T) {
	p := table(func(b *parameters.Builder) *parameters.Builder {
		return b.SetDiscrete(parameters.EssLhLgCompressed, arinc429.Normal(true)).
			SetDiscrete(parameters.NormLhLgCompressed, arinc429.Normal(true))
	})

	s := NewGroundDetectionSheet()
	s.Update(time.Second, p, fakeNewGround{})
	if !s.Ground() {
		t.Error("expected gear discretes alone to suffice with both radio altimeters failed")
	}
}

func TestGroundDetection_NcdRadiosTrustLgciu(t *testing.T) {
	p := table((*parameters.Builder).RadioHeightsAtCruise)

	s := NewGroundDetectionSheet()
	s.Update(time.Second, p, fakeNewGround{newGround: true})
	if !s.Ground() {
		t.Error("expected LGCIU ground to be used")
	}

	s = NewGroundDetectionSheet()
	s.Update(time.Second, p, fakeNewGround{newGround: true, inv: true})
	if s.GroundImmediate() {
		t.Error("expected invalid LGCIU to be ignored")
	}
}

func speeds(s1, s2, s3 float64) *parameters.Table {
	return table(func(b *parameters.Builder) *parameters.Builder {
		return b.ComputedSpeeds(s1, s2, s3)
	})
}

func TestSpeedDetection_Above80(t *testing.T) {
	s := NewSpeedDetectionSheet()
	s.Update(500*time.Millisecond, speeds(85, 85, 85))
	if s.AcSpeedAbove80Kt() {
		t.Error("expected speed to need confirmation")
	}
	s.Update(500*time.Millisecond, speeds(85, 85, 85))
	if !s.AcSpeedAbove80Kt() {
		t.Error("expected above 80 kt")
	}
}

func TestSpeedDetection_Hysteresis(t *testing.T) {
	s := NewSpeedDetectionSheet()
	s.Update(time.Second, speeds(85, 85, 85))
	s.Update(time.Second, speeds(80, 80, 80))
	if !s.AcSpeedAbove80Kt() {
		t.Error("expected latch to hold between 77 and 83 kt")
	}
	s.Update(time.Second, speeds(70, 70, 70))
	if s.AcSpeedAbove80Kt() {
		t.Error("expected release below 77 kt")
	}
}

func TestSpeedDetection_SingleAdcWithOthersFailed(t *testing.T) {
	p := table(func(b *parameters.Builder) *parameters.Builder {
		return b.SetNumeric(parameters.ComputedSpeed1, arinc429.Normal(90.0))
	})

	s := NewSpeedDetectionSheet()
	s.Update(time.Second, p)
	if !s.AcSpeedAbove80Kt() {
		t.Error("expected a lone valid ADC to be trusted")
	}
}

func TestSpeedDetection_FunctionalTestInhibits(t *testing.T) {
	p := table(func(b *parameters.Builder) *parameters.Builder {
		return b.ComputedSpeeds(85, 85, 85).
			SetNumeric(parameters.ComputedSpeed3, arinc429.Test(85.0))
	})

	s := NewSpeedDetectionSheet()
	s.Update(time.Second, p)
	if s.AdcTestInhib() {
		t.Error("expected inhibit only after the test ends")
	}
	s.Update(100*time.Millisecond, speeds(85, 85, 85))
	if !s.AdcTestInhib() {
		t.Error("expected inhibit after the test ends")
	}
}
