package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_Advance(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)
	assert.Equal(t, start, f.Now())
	f.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, f.Now().Sub(start))
}

func TestSystem_UsesNowFunc(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	orig := NowFunc
	NowFunc = func() time.Time { return fixed }
	defer func() { NowFunc = orig }()

	assert.Equal(t, fixed, System{}.Now())
}
