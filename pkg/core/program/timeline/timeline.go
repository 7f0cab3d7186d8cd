// Package timeline interprets a program the way the heater runner does: steps
// in numeric key order become back-to-back temperature settings.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/core/program"
)

const (
	defaultSetTemperature  = 25.0
	defaultSetDuration     = 60.0
	defaultLinearStart     = 60.0
	defaultLinearEnd       = 37.0
	defaultLinearDuration  = 3600.0
	defaultRepeats         = 3
	defaultHoldTemperature = 25.0
	nowRunning             = "Now Running"

	// MaxSettings bounds how far repeats may expand a program.
	MaxSettings = 10000
)

// Setting is one contiguous interval of the program. A hold is open-ended.
type Setting struct {
	Start            float64
	Duration         float64
	StartTemperature float64
	EndTemperature   float64
	Hold             bool
}

// Covers reports whether elapsed falls into the setting.
func (s Setting) Covers(elapsed float64) bool {
	if s.Hold {
		return elapsed >= s.Start
	}
	return s.Start <= elapsed && elapsed < s.Start+s.Duration
}

// Temperature is the target offset seconds into the setting.
func (s Setting) Temperature(offset float64) float64 {
	if s.Hold {
		return s.StartTemperature
	}
	done := offset / s.Duration
	return s.StartTemperature + (s.EndTemperature-s.StartTemperature)*done
}

func (s Setting) Message() string {
	switch {
	case s.Hold:
		return fmt.Sprintf("Hold at %s&deg;C", degrees(s.StartTemperature))
	case math.Abs(s.StartTemperature-s.EndTemperature) < 0.001:
		return fmt.Sprintf("%s&deg;C for %s", degrees(s.StartTemperature), clock(s.Duration))
	default:
		return fmt.Sprintf("From %s&deg;C to %s&deg;C over %s",
			degrees(s.StartTemperature), degrees(s.EndTemperature), clock(s.Duration))
	}
}

type Upcoming struct {
	Message   string
	TimeUntil string
}

type Timeline struct {
	Settings      []Setting
	TotalDuration float64
}

// Build lays out steps ordered by their integer keys. Steps after a hold are
// ignored.
func Build(steps map[string]program.Step) (*Timeline, error) {
	type keyed struct {
		n    int
		step program.Step
	}
	ordered := make([]keyed, 0, len(steps))
	for key, step := range steps {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, code.TimelineErr.WithMsgf("step key %q is not an integer", key)
		}
		ordered = append(ordered, keyed{n: n, step: step})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].n < ordered[j].n })

	t := &Timeline{}
	for _, k := range ordered {
		if t.hasHold() {
			break
		}
		if err := t.apply(k.step); err != nil {
			return nil, code.TimelineErr.WithMsgf("step %d: %s", k.n, err.Error())
		}
	}
	return t, nil
}

func (t *Timeline) hasHold() bool {
	return len(t.Settings) > 0 && t.Settings[len(t.Settings)-1].Hold
}

func (t *Timeline) apply(step program.Step) error {
	switch s := step.(type) {
	case program.SetStep:
		temp, err := number(s.Temperature, defaultSetTemperature)
		if err != nil {
			return err
		}
		duration, err := seconds(s.Duration, defaultSetDuration)
		if err != nil {
			return err
		}
		t.push(Setting{Duration: duration, StartTemperature: temp, EndTemperature: temp})
	case program.LinearStep:
		start, err := number(s.StartTemperature, defaultLinearStart)
		if err != nil {
			return err
		}
		end, err := number(s.EndTemperature, defaultLinearEnd)
		if err != nil {
			return err
		}
		duration, err := seconds(s.Duration, defaultLinearDuration)
		if err != nil {
			return err
		}
		t.push(Setting{Duration: duration, StartTemperature: start, EndTemperature: end})
	case program.RepeatStep:
		n, err := number(s.NumRepeats, defaultRepeats)
		if err != nil {
			return err
		}
		if n < 0 || n != math.Trunc(n) {
			return fmt.Errorf("num_repeats must be a non-negative integer, got %v", n)
		}
		if float64(len(t.Settings))*(n+1) > MaxSettings {
			return fmt.Errorf("repeating %d settings %v times exceeds %d settings", len(t.Settings), n, MaxSettings)
		}
		if len(t.Settings) == 0 {
			return nil
		}
		base := append([]Setting(nil), t.Settings...)
		for i := 0; i < int(n); i++ {
			for _, setting := range base {
				t.push(setting)
			}
		}
	case program.HoldStep:
		temp, err := number(s.Temperature, defaultHoldTemperature)
		if err != nil {
			return err
		}
		t.Settings = append(t.Settings, Setting{
			Start:            t.TotalDuration,
			StartTemperature: temp,
			EndTemperature:   temp,
			Hold:             true,
		})
	default:
		return fmt.Errorf("unsupported mode %q", step.Mode())
	}
	return nil
}

func (t *Timeline) push(s Setting) {
	s.Start = t.TotalDuration
	t.Settings = append(t.Settings, s)
	t.TotalDuration += s.Duration
}

// DesiredTemperature is the target at elapsed seconds. ok is false once the
// program has run out of settings.
func (t *Timeline) DesiredTemperature(elapsed float64) (temp float64, ok bool) {
	for _, s := range t.Settings {
		if s.Hold || s.Covers(elapsed) {
			return s.Temperature(elapsed - s.Start), true
		}
	}
	return 0, false
}

func (t *Timeline) SecondsLeft(elapsed float64) int {
	return int(math.Max(t.TotalDuration-elapsed, 0))
}

// Upcoming lists up to n settings beginning with the one running at elapsed.
func (t *Timeline) Upcoming(n int, elapsed float64) ([]Upcoming, error) {
	if n <= 0 {
		return nil, code.TimelineErr.WithMsgf("need a positive count, got %d", n)
	}
	res := make([]Upcoming, 0, n)
	found := false
	for _, s := range t.Settings {
		if len(res) == n {
			break
		}
		if !found && !s.Covers(elapsed) {
			continue
		}
		until := nowRunning
		if found {
			until = clock(s.Start - elapsed)
		}
		found = true
		res = append(res, Upcoming{Message: s.Message(), TimeUntil: until})
	}
	return res, nil
}

func number(v program.Value, def float64) (float64, error) {
	if !v.Present() {
		return def, nil
	}
	return v.Float()
}

func seconds(v program.Value, def float64) (float64, error) {
	d, err := number(v, def)
	if err != nil {
		return 0, err
	}
	d = math.Trunc(d)
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", d)
	}
	return d, nil
}

// degrees prints a temperature with at least one decimal, e.g. 80.0 or 37.5.
func degrees(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// clock formats seconds as HH:MM:SS on a 24 hour dial.
func clock(sec float64) string {
	total := int(sec) % 86400
	if total < 0 {
		total += 86400
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
