// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/momeni/pvctl/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration(t *testing.T) {
	for d, s := range map[time.Duration]string{
		0:                         "0s",
		10 * time.Second:          "10s",
		5 * time.Minute:           "5m",
		2 * time.Hour:             "2h",
		90 * time.Minute:          "1h30m",
		time.Hour + 5*time.Second: "1h0m5s",
		1500 * time.Millisecond:   "1.5s",
	} {
		sd := settings.Duration(d)
		assert.Equal(t, s, sd.String())
		assert.Equal(t, s, *sd.Marshal())

		var back settings.Duration
		require.NoError(t, back.UnmarshalText([]byte(s)))
		assert.Equal(t, sd, back, s)
	}
	var unset *settings.Duration
	assert.Nil(t, unset.Marshal())

	d := settings.Duration(time.Minute)
	assert.Error(t, d.UnmarshalText([]byte("soon")))
	assert.Equal(t, settings.Duration(time.Minute), d, "kept on failure")
}

func TestBoundsCheck(t *testing.T) {
	lo, hi := 1, 10
	b := settings.Bounds[int]{Min: &lo, Max: &hi}
	assert.NoError(t, b.Check("workers", ptr(5)))
	assert.NoError(t, b.Check("workers", ptr(1)))
	assert.NoError(t, b.Check("workers", ptr(10)))
	assert.NoError(t, b.Check("workers", nil))

	err := b.Check("workers", ptr(0))
	var re *settings.RangeError[int]
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 0, re.Value)
	assert.Equal(t, "workers: 0 is out of range [1, 10]", err.Error())

	err = settings.Bounds[int]{Max: &hi}.Check("workers", ptr(11))
	assert.EqualError(t, err, "workers: 11 is greater than 10")
	err = settings.Bounds[int]{Min: &lo}.Check("workers", ptr(-1))
	assert.EqualError(t, err, "workers: -1 is less than 1")

	err = settings.Bounds[int]{Min: &hi, Max: &lo}.Check("workers", nil)
	assert.EqualError(t, err, "workers: empty range [10, 1]")
}

func TestDefaultAndOverride(t *testing.T) {
	var s *string
	settings.Default(&s, "default")
	assert.Equal(t, "default", *s)
	settings.Default(&s, "ignored")
	assert.Equal(t, "default", *s)

	prev := s
	settings.Override(&s, "flag")
	assert.Equal(t, "flag", *s)
	assert.Equal(t, "default", *prev, "previous value is not mutated")
}

func ExampleDuration() {
	var c struct {
		Timeout settings.Duration `yaml:"timeout"`
	}
	if err := yaml.Unmarshal([]byte("timeout: 7200s"), &c); err != nil {
		panic(err)
	}
	fmt.Println(c.Timeout)
	// Output:
	// 2h
}

func ptr[T any](t T) *T {
	return &t
}
