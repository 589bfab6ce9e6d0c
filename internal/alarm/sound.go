package alarm

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

//go:embed alarm.wav
var alarmWAV []byte

var (
	speakerOnce sync.Once
	speakerErr  error
)

// LoadTone decodes the built-in alarm tone into memory
func LoadTone() (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(alarmWAV))
	if err != nil {
		return nil, fmt.Errorf("failed to decode alarm tone: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

// Speaker loops the alarm tone on the default audio device, one loop per
// ringing timer
type Speaker struct {
	mu     sync.Mutex
	tone   *beep.Buffer
	volume float64
	loops  map[string]*beep.Ctrl
}

// NewSpeaker opens the audio device. volume is in halvings/doublings of
// the tone's level; 0 plays it as recorded.
func NewSpeaker(volume float64) (*Speaker, error) {
	tone, err := LoadTone()
	if err != nil {
		return nil, err
	}

	speakerOnce.Do(func() {
		sr := tone.Format().SampleRate
		speakerErr = speaker.Init(sr, sr.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", speakerErr)
	}

	return newSpeaker(tone, volume), nil
}

func newSpeaker(tone *beep.Buffer, volume float64) *Speaker {
	return &Speaker{
		tone:   tone,
		volume: volume,
		loops:  make(map[string]*beep.Ctrl),
	}
}

// Play starts looping the tone for id
func (s *Speaker) Play(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loops[id]; ok {
		return
	}
	ctrl := s.loop()
	s.loops[id] = ctrl
	speaker.Play(ctrl)
}

// Stop ends the loop for id
func (s *Speaker) Stop(id string) {
	s.mu.Lock()
	ctrl, ok := s.loops[id]
	delete(s.loops, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	// a nil streamer drains out of the mixer on its next pull
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

func (s *Speaker) loop() *beep.Ctrl {
	looped := beep.Loop(-1, s.tone.Streamer(0, s.tone.Len()))
	return &beep.Ctrl{
		Streamer: &effects.Volume{
			Streamer: looped,
			Base:     2,
			Volume:   s.volume,
		},
	}
}
