package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for dimension-valued properties.
type DimenT struct {
	d       dimen.DU
	percent percent.Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
*/

// Auto creates a dimension with value 'auto'.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// JustDimen creates a dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// IsNone is a predicate for the zero value of DimenT.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAuto is a predicate for dimension 'auto'.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// Just returns the fixed value of d, if d is an absolute dimension.
func (d DimenT) Just() (dimen.DU, bool) {
	if d.flags&kindMask == dimenAbsolute {
		return d.d, true
	}
	return 0, false
}

// Percent returns the relative value of d, if d is a percentage.
func (d DimenT) Percent() (percent.Percent, bool) {
	if d.flags&relativeMask == dimenPercent {
		return d.percent, true
	}
	var zero percent.Percent
	return zero, false
}

// Units understood by ParseDimen, in fractions of a point.
var unitsInPoints = map[string]float64{
	"":   1,
	"pt": 1,
	"px": 0.75,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
	"pc": 12,
}

// ParseDimen converts a property value to a dimension. Values without a unit
// are taken as points.
func ParseDimen(p Property) (DimenT, error) {
	s := strings.TrimSpace(p.String())
	switch {
	case s == "auto":
		return Auto(), nil
	case p.IsInherit():
		return DimenT{flags: dimenInherit}, nil
	case p.IsInitial():
		return DimenT{flags: dimenInitial}, nil
	case strings.HasSuffix(s, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return DimenT{}, fmt.Errorf("illegal percentage %q", s)
		}
		return Percentage(percent.FromInt(int(math.Round(f)))), nil
	}
	i := len(s)
	for i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z') {
		i--
	}
	factor, ok := unitsInPoints[s[i:]]
	if !ok {
		return DimenT{}, fmt.Errorf("unknown unit in dimension %q", s)
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("illegal dimension %q", s)
	}
	return JustDimen(dimen.DU(math.Round(f * factor * float64(dimen.PT)))), nil
}

// Dimen converts p to a dimension, see ParseDimen.
func (p Property) Dimen() (DimenT, error) {
	return ParseDimen(p)
}
