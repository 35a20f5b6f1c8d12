package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/ugaemi/pawseek/internal/session"
)

const (
	// SampleRate is the output rate every cue is resampled to.
	SampleRate = beep.SampleRate(48000)

	resampleQuality = 4
	speakerBuffer   = 100 * time.Millisecond
)

// CuePlayer plays positional audio cues from per-kind sound files. Each asset
// is decoded once into memory; assets that fail to load are remembered and
// skipped afterwards.
type CuePlayer struct {
	dir   string
	muted bool

	mu      sync.Mutex
	buffers map[string]*beep.Buffer
	failed  map[string]error
	mixer   *beep.Mixer
	started bool
}

// NewCuePlayer creates a player reading <dir>/<asset>.wav.
func NewCuePlayer(dir string, muted bool) *CuePlayer {
	return &CuePlayer{
		dir:     dir,
		muted:   muted,
		buffers: make(map[string]*beep.Buffer),
		failed:  make(map[string]error),
		mixer:   &beep.Mixer{},
	}
}

// Start opens the audio device and begins draining the mixer. A muted player
// never touches the device.
func (p *CuePlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play implements session.SoundPlayer. Missing or broken assets are logged
// once and otherwise ignored.
func (p *CuePlayer) Play(req session.SoundRequest) {
	if p.muted {
		return
	}
	s, ok := p.Streamer(req)
	if !ok {
		return
	}

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds the playback graph for req: pitch shift, pan, then volume.
func (p *CuePlayer) Streamer(req session.SoundRequest) (beep.Streamer, bool) {
	buf, err := p.load(req.Asset)
	if err != nil {
		return nil, false
	}

	pitch := req.Pitch
	if pitch <= 0 {
		pitch = 1
	}
	ratio := pitch * float64(buf.Format().SampleRate) / float64(SampleRate)

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	s = beep.ResampleRatio(resampleQuality, ratio, s)
	s = &effects.Pan{Streamer: s, Pan: req.Pan}
	return newVolume(s, req.Volume), true
}

func (p *CuePlayer) load(asset string) (*beep.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if buf, ok := p.buffers[asset]; ok {
		return buf, nil
	}
	if err, ok := p.failed[asset]; ok {
		return nil, err
	}

	buf, err := decodeFile(filepath.Join(p.dir, asset+".wav"))
	if err != nil {
		slog.Debug("sound asset unavailable", "asset", asset, "error", err)
		p.failed[asset] = err
		return nil, err
	}
	p.buffers[asset] = buf
	return buf, nil
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

// Close silences everything queued and releases the device.
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

// newVolume applies a linear gain in [0, 1] using beep's exponential scale.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
