package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOr(t *testing.T) {
	assert.Equal(t, "b", Or("", "b", "c"))
	assert.Equal(t, "", Or("", ""))
	assert.Equal(t, 3, Or(0, 3))
}

func TestSafelyRun(t *testing.T) {
	assert.NoError(t, SafelyRun(func() {}))

	err := SafelyRun(func() { panic(errors.New("boom")) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	err = SafelyRun(func() { panic("plain") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: plain")
}

func TestSafelyGo(t *testing.T) {
	got := make(chan error, 1)
	SafelyGo(func() { panic("worker") }, func(err error) { got <- err })
	assert.Contains(t, (<-got).Error(), "worker")
}

func TestFormatNumber(t *testing.T) {
	tcs := map[string]struct {
		in   float64
		want string
	}{
		"integer":        {in: 180, want: "180"},
		"integral float": {in: 180.0, want: "180"},
		"fraction":       {in: 37.5, want: "37.5"},
		"negative":       {in: -4.25, want: "-4.25"},
		"zero":           {in: 0, want: "0"},
		"big":            {in: 1e21, want: "1e+21"},
		"tiny":           {in: 1.5e-7, want: "1.5e-7"},
		"below big":      {in: 123456789012, want: "123456789012"},
		"infinity":       {in: math.Inf(1), want: "Infinity"},
		"minus infinity": {in: math.Inf(-1), want: "-Infinity"},
		"not a number":   {in: math.NaN(), want: "NaN"},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatNumber(tc.in))
		})
	}
}
