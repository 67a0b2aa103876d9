package iotimer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/me/procsim/internal/clock"
)

func TestTimer_Ready(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	tm := New(fc, DefaultRequisite)

	assert.False(t, tm.Started())
	assert.False(t, tm.Ready(), "unstarted timer never fires")
	assert.Zero(t, tm.Elapsed())

	tm.Start()
	assert.True(t, tm.Started())
	fc.Advance(14 * time.Second)
	assert.False(t, tm.Ready())
	assert.Equal(t, 14*time.Second, tm.Elapsed())

	fc.Advance(time.Second)
	assert.True(t, tm.Ready())
}

func TestTimer_ZeroRequisite(t *testing.T) {
	tm := New(clock.NewFake(time.Unix(0, 0)), 0)
	tm.Start()
	assert.True(t, tm.Ready())
}

func TestTimer_DefaultsToSystemClock(t *testing.T) {
	tm := New(nil, time.Hour)
	tm.Start()
	assert.False(t, tm.Ready())
	assert.Equal(t, time.Hour, tm.Requisite())
}
