// Package arinc429 models the Sign Status Matrix that accompanies every
// parameter travelling on an ARINC429 bus.
//
// A Value carries its payload together with a SignStatus. The FWC logic treats
// anything other than failure warning as valid; no-computed-data and
// functional-test are queried separately where the sheets care about them.
package arinc429

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// SignStatus is the two-bit SSM field of a bus word.
type SignStatus uint32

const (
	FailureWarning  SignStatus = 0b00
	FunctionalTest  SignStatus = 0b01
	NoComputedData  SignStatus = 0b10
	NormalOperation SignStatus = 0b11
)

func (s SignStatus) String() string {
	switch s {
	case FailureWarning:
		return "FW"
	case FunctionalTest:
		return "FT"
	case NoComputedData:
		return "NCD"
	case NormalOperation:
		return "NO"
	default:
		return fmt.Sprintf("SSM(%d)", uint32(s))
	}
}

// ParseSignStatus accepts the short forms produced by String as well as a few
// long spellings used in scenario files.
func ParseSignStatus(s string) (SignStatus, error) {
	switch s {
	case "FW", "fw", "failure_warning":
		return FailureWarning, nil
	case "FT", "ft", "functional_test":
		return FunctionalTest, nil
	case "NCD", "ncd", "no_computed_data":
		return NoComputedData, nil
	case "NO", "no", "normal", "normal_operation":
		return NormalOperation, nil
	}
	return 0, errors.Errorf("unknown sign status %q", s)
}

// Value is an immutable parameter tagged with its sign status.
type Value[T any] struct {
	value  T
	status SignStatus
}

// New returns a value with the given status.
func New[T any](v T, ssm SignStatus) Value[T] {
	return Value[T]{value: v, status: ssm}
}

// Normal returns a value in normal operation.
func Normal[T any](v T) Value[T] { return New(v, NormalOperation) }

// NoComputed returns a value flagged as no computed data.
func NoComputed[T any](v T) Value[T] { return New(v, NoComputedData) }

// Test returns a value flagged as functional test.
func Test[T any](v T) Value[T] { return New(v, FunctionalTest) }

// Failed returns a value flagged as failure warning.
func Failed[T any](v T) Value[T] { return New(v, FailureWarning) }

// Value returns the payload regardless of status.
func (v Value[T]) Value() T { return v.value }

// SSM returns the sign status.
func (v Value[T]) SSM() SignStatus { return v.status }

func (v Value[T]) IsNormal() bool         { return v.status == NormalOperation }
func (v Value[T]) IsNoComputedData() bool { return v.status == NoComputedData }
func (v Value[T]) IsFunctionalTest() bool { return v.status == FunctionalTest }
func (v Value[T]) IsFailureWarning() bool { return v.status == FailureWarning }

// IsVal reports whether the FWC considers the value valid.
func (v Value[T]) IsVal() bool { return v.status != FailureWarning }

// IsInv reports whether the FWC considers the value invalid.
func (v Value[T]) IsInv() bool { return v.status == FailureWarning }

func (v Value[T]) String() string {
	return fmt.Sprintf("%v (%s)", v.value, v.status)
}

// Encode packs a value and status into a single float64 bus word. The value
// travels as float32 in the upper half; the status occupies the lower bits.
func Encode(value float64, ssm SignStatus) float64 {
	bits := uint64(math.Float32bits(float32(value)))<<32 | uint64(ssm)
	return math.Float64frombits(bits)
}

// Decode unpacks a word produced by Encode. It panics when the status bits
// do not hold a known SSM.
func Decode(word float64) (float64, SignStatus) {
	v, ssm, err := DecodeChecked(word)
	if err != nil {
		panic(err.Error())
	}
	return v, ssm
}

// DecodeChecked is Decode for untrusted words.
func DecodeChecked(word float64) (float64, SignStatus, error) {
	bits := math.Float64bits(word)
	v := float64(math.Float32frombits(uint32(bits >> 32)))
	ssm := SignStatus(uint32(bits))
	if ssm > NormalOperation {
		return 0, 0, errors.Errorf("unknown SSM value %d", uint32(bits))
	}
	return v, ssm, nil
}
