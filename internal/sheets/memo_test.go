package sheets

import (
	"testing"
	"time"

	"github.com/sweeney/fwc-sim/internal/parameters"
)

var (
	bothEnginesOff     = fakeEngNotRunning{notRunning: [2]bool{true, true}}
	bothEnginesRunning = fakeEngNotRunning{}
)

func TestToMemo_ConfigTest(t *testing.T) {
	s := NewToMemoSheet()
	pressed := table((*parameters.Builder).TakeoffConfigTestPressed)

	s.Update(time.Second, pressed, bothEnginesOff, phase(2), fakePhases{})
	if !s.ToMemoComputed() {
		t.Fatal("expected TO memo after config test in phase 2")
	}

	s.Update(time.Second, table(), bothEnginesOff, phase(2), fakePhases{})
	if !s.ToMemoComputed() {
		t.Error("expected TO memo to stay after the test")
	}

	s.Update(time.Second, table(), bothEnginesOff, phase(3), fakePhases{})
	if s.ToMemoComputed() {
		t.Error("expected takeoff power to clear the TO memo")
	}
}

func TestToMemo_IgnoredOutsidePhase2And9(t *testing.T) {
	s := NewToMemoSheet()
	s.Update(time.Second, table((*parameters.Builder).TakeoffConfigTestPressed), bothEnginesOff, phase(1), fakePhases{})

	if s.ToMemoComputed() {
		t.Error("expected no TO memo in phase 1")
	}
}

func TestToMemo_TwoMinutesAfterEngineStart(t *testing.T) {
	s := NewToMemoSheet()

	s.Update(60*time.Second, table(), bothEnginesRunning, phase(2), fakePhases{})
	if s.ToMemoComputed() {
		t.Error("expected no TO memo after 60s")
	}

	s.Update(60*time.Second, table(), bothEnginesRunning, phase(2), fakePhases{})
	if !s.ToMemoComputed() {
		t.Error("expected TO memo two minutes after engine start")
	}
}

func TestLdgMemo_Descent(t *testing.T) {
	s := NewLdgMemoSheet()
	to := fakeToMemo{}

	s.Update(time.Second, radioHeights(2500, 2500), fakePhases{}, phase(6), fakeLg{}, to)
	if s.LdgMemo() {
		t.Error("expected no LDG memo above 2000 ft")
	}

	s.Update(time.Second, radioHeights(1900, 1900), fakePhases{}, phase(6), fakeLg{}, to)
	if !s.LdgMemo() {
		t.Error("expected LDG memo below 2000 ft")
	}
	if !s.ConfigMemoComputed() {
		t.Error("expected config memo with LDG memo")
	}
}

func TestLdgMemo_NotWithoutClimbAbove2200(t *testing.T) {
	s := NewLdgMemoSheet()
	s.Update(time.Second, radioHeights(1900, 1900), fakePhases{}, phase(6), fakeLg{}, fakeToMemo{})

	if s.LdgMemo() {
		t.Error("expected no LDG memo before flying above 2200 ft")
	}
}

func TestLdgMemo_Phases(t *testing.T) {
	tests := []struct {
		name string
		gnd  fakePhases
		air  fakePhases
	}{
		{"final approach", fakePhases{}, phase(7)},
		{"rollout", phase(8), fakePhases{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLdgMemoSheet()
			s.Update(time.Second, table(), tt.gnd, tt.air, fakeLg{}, fakeToMemo{})
			if !s.LdgMemo() {
				t.Error("expected LDG memo")
			}
		})
	}
}

func TestLdgMemo_DualRadioFailureWithGearDown(t *testing.T) {
	s := NewLdgMemoSheet()

	s.Update(5*time.Second, table(), fakePhases{}, phase(6), fakeLg{down: true}, fakeToMemo{})
	if s.LdgMemo() {
		t.Error("expected 10s confirmation")
	}
	s.Update(5*time.Second, table(), fakePhases{}, phase(6), fakeLg{down: true}, fakeToMemo{})
	if !s.LdgMemo() {
		t.Error("expected LDG memo with failed altimeters and gear down")
	}
}

func TestLdgMemo_ConfigMemoFollowsToMemo(t *testing.T) {
	s := NewLdgMemoSheet()
	s.Update(time.Second, table(), phase(2), fakePhases{}, fakeLg{}, fakeToMemo{on: true})

	if s.LdgMemo() {
		t.Error("expected no LDG memo on the ground")
	}
	if !s.ConfigMemoComputed() {
		t.Error("expected config memo from the TO memo")
	}
}
