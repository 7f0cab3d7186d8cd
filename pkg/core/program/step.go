package program

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/utils"
)

type Mode string

const (
	ModeSet    Mode = "set"
	ModeLinear Mode = "linear"
	ModeHold   Mode = "hold"
	ModeRepeat Mode = "repeat"
)

// Value is a step parameter as stored in the program, kept as raw JSON.
type Value struct {
	raw     json.RawMessage
	present bool
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	v.present = true
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v Value) Present() bool {
	return v.present
}

// String renders the value the way it reads when concatenated into text in a
// browser: numbers in shortest form, strings unquoted, a missing value as
// "undefined".
func (v Value) String() string {
	if !v.present {
		return "undefined"
	}
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 {
		return "undefined"
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case '{':
		return "[object Object]"
	case '[':
		var items []Value
		if err := json.Unmarshal(raw, &items); err != nil {
			return string(raw)
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, item.elem())
		}
		return strings.Join(parts, ",")
	case 't', 'f', 'n':
		return string(raw)
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return string(raw)
	}
	return utils.FormatNumber(f)
}

// elem renders an array element; null becomes empty as in Array.prototype.join.
func (v Value) elem() string {
	if !v.present || bytes.Equal(bytes.TrimSpace(v.raw), []byte("null")) {
		return ""
	}
	return v.String()
}

// Float reads the value as a number. Numeric strings are accepted.
func (v Value) Float() (float64, error) {
	if !v.present {
		return 0, code.StepsDecodeErr.WithMsg("value missing")
	}
	var f float64
	if err := json.Unmarshal(v.raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, code.StepsDecodeErr.WithMsgf("not a number: %s", string(v.raw))
}

// Step is one program instruction, one of SetStep, LinearStep, HoldStep,
// RepeatStep or UnknownStep.
type Step interface {
	Mode() Mode
	isStep()
}

type SetStep struct {
	Temperature Value `json:"temperature"`
	Duration    Value `json:"duration"`
}

type LinearStep struct {
	StartTemperature Value `json:"start_temperature"`
	EndTemperature   Value `json:"end_temperature"`
	Duration         Value `json:"duration"`
}

type HoldStep struct {
	Temperature Value `json:"temperature"`
}

type RepeatStep struct {
	NumRepeats Value `json:"num_repeats"`
}

// UnknownStep is anything whose mode is not recognised, including steps that
// are not objects at all.
type UnknownStep struct {
	RawMode Value
	Raw     json.RawMessage
}

func (SetStep) Mode() Mode    { return ModeSet }
func (LinearStep) Mode() Mode { return ModeLinear }
func (HoldStep) Mode() Mode   { return ModeHold }
func (RepeatStep) Mode() Mode { return ModeRepeat }
func (u UnknownStep) Mode() Mode {
	return Mode(u.RawMode.String())
}

func (SetStep) isStep()     {}
func (LinearStep) isStep()  {}
func (HoldStep) isStep()    {}
func (RepeatStep) isStep()  {}
func (UnknownStep) isStep() {}

// ParseStep decodes one step. It never fails: malformed input is an UnknownStep.
func ParseStep(raw json.RawMessage) Step {
	head := struct {
		Mode json.RawMessage `json:"mode"`
	}{}
	unknown := UnknownStep{Raw: raw}
	if err := json.Unmarshal(raw, &head); err != nil {
		return unknown
	}
	if head.Mode != nil {
		_ = unknown.RawMode.UnmarshalJSON(head.Mode)
	}
	var mode string
	if err := json.Unmarshal(head.Mode, &mode); err != nil {
		return unknown
	}

	var step Step
	var err error
	switch Mode(mode) {
	case ModeSet:
		s := SetStep{}
		err = json.Unmarshal(raw, &s)
		step = s
	case ModeLinear:
		s := LinearStep{}
		err = json.Unmarshal(raw, &s)
		step = s
	case ModeHold:
		s := HoldStep{}
		err = json.Unmarshal(raw, &s)
		step = s
	case ModeRepeat:
		s := RepeatStep{}
		err = json.Unmarshal(raw, &s)
		step = s
	default:
		return unknown
	}
	if err != nil {
		return unknown
	}
	return step
}

// ParseSteps decodes the JSON-encoded step mapping of a program.
func ParseSteps(steps string) (map[string]Step, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(steps), &raw); err != nil {
		return nil, code.StepsDecodeErr.WithErr(err)
	}
	res := make(map[string]Step, len(raw))
	for key, r := range raw {
		// A null step has no mode to read; the whole table is unreadable.
		if bytes.Equal(bytes.TrimSpace(r), []byte("null")) {
			return nil, code.StepsDecodeErr.WithMsgf("step %q is null", key)
		}
		res[key] = ParseStep(r)
	}
	return res, nil
}

// SortedKeys orders step keys as plain strings, so "10" sorts before "2".
func SortedKeys(steps map[string]Step) []string {
	keys := make([]string, 0, len(steps))
	for key := range steps {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DisplayStep describes a step for the details table. Unknown modes give "".
func DisplayStep(step Step) string {
	switch s := step.(type) {
	case SetStep:
		return "Set to " + s.Temperature.String() + "°C for " + s.Duration.String() + " seconds"
	case LinearStep:
		return "Ramp from " + s.StartTemperature.String() + "°C to " + s.EndTemperature.String() +
			"°C over " + s.Duration.String() + " seconds."
	case HoldStep:
		return "Hold at " + s.Temperature.String() + "°C"
	case RepeatStep:
		return "Repeat " + s.NumRepeats.String() + " times"
	default:
		return ""
	}
}

// RenderRows renders one <tr> per step in SortedKeys order. Keys and
// descriptions are inserted as-is.
func RenderRows(steps map[string]Step) string {
	sb := strings.Builder{}
	for _, key := range SortedKeys(steps) {
		sb.WriteString("<tr><td>")
		sb.WriteString(key)
		sb.WriteString("</td><td>")
		sb.WriteString(DisplayStep(steps[key]))
		sb.WriteString("</td></tr>")
	}
	return sb.String()
}
