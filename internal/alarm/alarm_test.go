package alarm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	names []string
	err   error
}

func (r *recordingNotifier) SendTimerComplete(name string) error {
	r.names = append(r.names, name)
	return r.err
}

func TestRingOncePerCycle(t *testing.T) {
	n := &recordingNotifier{}
	var bell bytes.Buffer
	a := New(n, &bell, nil)

	a.Ring("a", "Tea")
	a.Ring("a", "Tea")

	assert.True(t, a.Ringing("a"))
	assert.Equal(t, []string{"Tea"}, n.names)
	assert.Equal(t, "\a", bell.String())

	a.Stop("a")
	assert.False(t, a.Ringing("a"))

	a.Ring("a", "Tea")
	assert.Equal(t, []string{"Tea", "Tea"}, n.names)
}

func TestStopUnknownIsNoop(t *testing.T) {
	a := New(nil, nil, nil)
	a.Stop("missing")
	assert.Empty(t, a.Active())
}

func TestActiveSorted(t *testing.T) {
	a := New(nil, nil, nil)
	a.Ring("b", "B")
	a.Ring("a", "A")
	assert.Equal(t, []string{"a", "b"}, a.Active())
}

func TestNotifierErrorStillRings(t *testing.T) {
	a := New(&recordingNotifier{err: errors.New("no notify-send")}, nil, nil)
	a.Ring("a", "Tea")
	assert.True(t, a.Ringing("a"))
}
