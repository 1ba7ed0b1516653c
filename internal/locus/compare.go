// Package locus parses and compares citation loci such as "3.45" or
// "Book 3 line 45".
//
// Questions that cannot be answered from the input (mismatched unit counts,
// units that do not decompose) are reported with a comma-ok result and an
// advisory diagnostic, never as an error and never as a plain false.
package locus

import (
	"cmp"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"loci/internal/domain"
	"loci/internal/logging"
)

// DefaultWindow is the number of lines before a speech that still count
// as its introduction.
const DefaultWindow = 1

var (
	nonDigit       = regexp.MustCompile(`\D`)
	anyDigit       = regexp.MustCompile(`\d`)
	mixedUnit      = regexp.MustCompile(`\D+\d`)
	unitKey        = regexp.MustCompile(`(\D*)(\d+)(\D*)`)
	suffixedNumber = regexp.MustCompile(`^\d+\D*$`)
)

// Key is the comparison key of a single locus unit.
type Key struct {
	Prefix string
	Value  int
	Suffix string
}

// ParseKey decomposes a unit like "45a" into ("", 45, "a"). The first run
// of digits is used.
func ParseKey(unit string) (Key, bool) {
	m := unitKey.FindStringSubmatch(unit)
	if m == nil {
		return Key{}, false
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return Key{}, false
	}
	return Key{Prefix: m[1], Value: v, Suffix: m[3]}, true
}

// Compare orders keys by prefix, then value, then suffix.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Prefix, o.Prefix); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Value, o.Value); c != 0 {
		return c
	}
	return cmp.Compare(k.Suffix, o.Suffix)
}

// Comparator evaluates ordering and containment between loci. Diagnostics
// go to its logger, or to the global logger when none is set. The zero
// value is ready to use.
type Comparator struct {
	logger *slog.Logger
}

// New returns a Comparator that writes diagnostics to logger.
func New(logger *slog.Logger) *Comparator {
	return &Comparator{logger: logger}
}

func (c *Comparator) warnf(format string, args ...any) {
	l := c.logger
	if l == nil {
		l = logging.GetLogger()
	}
	l.Warn(fmt.Sprintf(format, args...))
}

// CompareUnits reports whether left sorts at or before right. ok is false
// when the units cannot be compared.
func (c *Comparator) CompareUnits(left, right string) (le bool, ok bool) {
	both := left + right

	// nothing but digits
	if !nonDigit.MatchString(both) {
		l, errL := strconv.Atoi(left)
		r, errR := strconv.Atoi(right)
		if errL != nil || errR != nil {
			c.warnf("Can't compare %s and %s", left, right)
			return false, false
		}
		return l <= r, true
	}

	// no digits at all
	if !anyDigit.MatchString(both) {
		return left <= right, true
	}

	kl, okL := ParseKey(left)
	kr, okR := ParseKey(right)
	if !okL || !okR {
		c.warnf("Can't compare %s and %s", left, right)
		return false, false
	}
	return kl.Compare(kr) <= 0, true
}

// InSpeech reports whether line falls within the bounds of s. ok is false
// when the loci have different unit counts.
func (c *Comparator) InSpeech(line string, s domain.Bounded) (in bool, ok bool) {
	target := Units(line)
	left := Units(s.FirstLine())
	right := Units(s.LastLine())

	if len(target) != len(left) || len(left) != len(right) {
		c.warnf("Can't parse loci: %s, %s-%s", line, s.FirstLine(), s.LastLine())
		return false, false
	}

	for i := range target {
		t, l, r := target[i], left[i], right[i]
		if l != r {
			if mixedUnit.MatchString(l) || mixedUnit.MatchString(r) {
				c.warnf("Non-numeric bounds: %s, %s", l, r)
			} else if mixedUnit.MatchString(t) {
				c.warnf("Non-numeric target: %s", t)
			}
		}
		// an unknown comparison counts as not holding
		if after, known := c.CompareUnits(l, t); !known || !after {
			return false, true
		}
		if before, known := c.CompareUnits(t, r); !known || !before {
			return false, true
		}
	}
	return true, true
}

// IsSpeechIntro reports whether line comes strictly before the first line
// of s and no more than window lines ahead of it. Only the last two units
// of each locus are compared: the leading one must match exactly and the
// trailing one is the line number. Two bare line numbers are compared
// directly; a bare number against a multi-unit locus is unknown.
func (c *Comparator) IsSpeechIntro(line string, s domain.Bounded, window int) (intro bool, ok bool) {
	target := Units(line)
	left := Units(s.FirstLine())
	if (len(target) < 2 || len(left) < 2) && len(target) != len(left) {
		c.warnf("Can't parse loci: %s, %s-%s", line, s.FirstLine(), s.LastLine())
		return false, false
	}
	if len(target) >= 2 {
		target = target[len(target)-2:]
		left = left[len(left)-2:]
		if target[0] != left[0] {
			return false, true
		}
	}

	t, l := target[len(target)-1], left[len(left)-1]
	if nonDigit.MatchString(t) || nonDigit.MatchString(l) {
		msg := fmt.Sprintf("Non-numeric line comparison %s, %s:", t, l)
		if !suffixedNumber.MatchString(t) || !suffixedNumber.MatchString(l) {
			c.warnf("%s skipping", msg)
			return false, false
		}
		t = strings.TrimRightFunc(t, isNonDigit)
		l = strings.TrimRightFunc(l, isNonDigit)
		c.warnf("%s comparing %s %s", msg, t, l)
	}

	tn, errT := strconv.Atoi(t)
	ln, errL := strconv.Atoi(l)
	if errT != nil || errL != nil {
		c.warnf("Can't compare %s and %s", t, l)
		return false, false
	}

	d := ln - tn
	return d > 0 && d <= window, true
}

func isNonDigit(r rune) bool { return r < '0' || r > '9' }

var std Comparator

// CompareUnits compares two units using the global logger for diagnostics.
func CompareUnits(left, right string) (bool, bool) { return std.CompareUnits(left, right) }

// InSpeech checks containment using the global logger for diagnostics.
func InSpeech(line string, s domain.Bounded) (bool, bool) { return std.InSpeech(line, s) }

// IsSpeechIntro checks the introduction window using the global logger for diagnostics.
func IsSpeechIntro(line string, s domain.Bounded, window int) (bool, bool) {
	return std.IsSpeechIntro(line, s, window)
}
