// Package audio loads sound samples from bundles and plays them through the
// ebiten audio context.
package audio

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/pkg/errors"

	"chosenoffset.com/quickgfx/internal/logging"
)

// DefaultSampleRate is used when a mixer is created with a rate of zero.
const DefaultSampleRate = 44100

// ErrUnsupportedFormat is returned for file extensions without a decoder.
var ErrUnsupportedFormat = errors.New("audio: unsupported sound format")

// Source is where samples come from. *bundle.Bundle satisfies it.
type Source interface {
	ReadFile(entry string) ([]byte, error)
}

// decoders turn a file into 16 bit little endian stereo PCM at sampleRate.
var decoders = map[string]func(sampleRate int, r io.Reader) (io.Reader, error){
	".wav": func(sampleRate int, r io.Reader) (io.Reader, error) {
		return wav.DecodeWithSampleRate(sampleRate, r)
	},
	".mp3": func(sampleRate int, r io.Reader) (io.Reader, error) {
		return mp3.DecodeWithSampleRate(sampleRate, r)
	},
	".ogg": func(sampleRate int, r io.Reader) (io.Reader, error) {
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	},
}

// Decode converts a sound file to PCM. The file name selects the decoder.
func Decode(name string, data []byte, sampleRate int) ([]byte, error) {
	dec, ok := decoders[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedFormat, name)
	}
	stream, err := dec(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode sound %s", name)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode sound %s", name)
	}
	return pcm, nil
}

// Mixer owns the audio context. Only one can exist per process.
type Mixer struct {
	ctx        *audio.Context
	sampleRate int
}

// NewMixer creates the mixer, reusing the process audio context if one
// already exists.
func NewMixer(sampleRate int) *Mixer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Mixer{ctx: ctx, sampleRate: ctx.SampleRate()}
}

// SampleRate returns the output sample rate.
func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// Load decodes a sound entry into a playable sample.
func (m *Mixer) Load(src Source, entry string) (*Sample, error) {
	if _, ok := decoders[strings.ToLower(path.Ext(entry))]; !ok {
		return nil, errors.Wrap(ErrUnsupportedFormat, entry)
	}
	data, err := src.ReadFile(entry)
	if err != nil {
		return nil, err
	}
	pcm, err := Decode(entry, data, m.sampleRate)
	if err != nil {
		return nil, err
	}
	logging.Logger().Debug("sound loaded", "entry", entry, "bytes", len(pcm))
	return &Sample{mixer: m, name: entry, pcm: pcm}, nil
}

// Sample is a decoded sound.
type Sample struct {
	mixer *Mixer
	name  string
	pcm   []byte
}

// Name returns the entry the sample was loaded from.
func (s *Sample) Name() string {
	return s.name
}

// Len returns the size of the decoded sound in bytes.
func (s *Sample) Len() int {
	return len(s.pcm)
}

// Play starts the sample. loops is the number of extra repetitions: 0 plays
// it once, 2 plays it three times and a negative value repeats it until
// the channel is stopped.
func (s *Sample) Play(loops int) (*Channel, error) {
	var src io.Reader
	if loops < 0 {
		src = audio.NewInfiniteLoop(bytes.NewReader(s.pcm), int64(len(s.pcm)))
	} else {
		src = newRepeatReader(s.pcm, loops+1)
	}
	p, err := s.mixer.ctx.NewPlayer(src)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to play %s", s.name)
	}
	p.Play()
	return &Channel{player: p}, nil
}

// Channel is one playing instance of a sample.
type Channel struct {
	player *audio.Player
}

// Playing reports whether the channel is still producing sound.
func (c *Channel) Playing() bool {
	return c.player != nil && c.player.IsPlaying()
}

// SetVolume sets the volume, 1 being the original level.
func (c *Channel) SetVolume(v float64) {
	if c.player != nil {
		c.player.SetVolume(v)
	}
}

// Stop halts the channel and releases its player.
func (c *Channel) Stop() {
	if c.player == nil {
		return
	}
	c.player.Pause()
	if err := c.player.Close(); err != nil {
		logging.Logger().Warn("closing audio player", "error", err)
	}
	c.player = nil
}

// repeatReader reads the same data a fixed number of times.
type repeatReader struct {
	data  []byte
	times int
	pos   int
}

func newRepeatReader(data []byte, times int) *repeatReader {
	if len(data) == 0 {
		times = 0
	}
	return &repeatReader{data: data, times: times}
}

func (r *repeatReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && r.times > 0 {
		c := copy(p[n:], r.data[r.pos:])
		n += c
		r.pos += c
		if r.pos == len(r.data) {
			r.pos = 0
			r.times--
		}
	}
	if n == 0 && r.times == 0 {
		return 0, io.EOF
	}
	return n, nil
}
