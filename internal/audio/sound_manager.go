// internal/audio/sound_manager.go
package audio

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"go-mind-control/pkg/geom"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Volume halves every falloffCells cells away from the listener.
	falloffCells = 8.0
	// Cues further away than this are not played at all.
	maxAudibleCells = 40.0

	fallbackTone     = 660.0
	fallbackDuration = 120 * time.Millisecond
)

// SoundManager plays named cues from a directory of wav files, attenuated
// by distance from the listener. Unknown cues fall back to a short tone.
type SoundManager struct {
	mu          sync.Mutex
	cues        map[string]*beep.Buffer
	mixer       *beep.Mixer
	listener    geom.WPos
	initialized bool
}

// NewSoundManager creates a manager with no cues loaded.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		cues:  make(map[string]*beep.Buffer),
		mixer: &beep.Mixer{},
	}
}

// LoadDir decodes every .wav file in dir; the file name without extension
// is the cue name. A missing directory is not an error.
func (sm *SoundManager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Printf("audio: sound directory %s not found, using synthesized cues", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read sound directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := sm.loadFile(name, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	log.Printf("audio: loaded %d cues from %s", sm.CueCount(), dir)
	return nil
}

func (sm *SoundManager) loadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cue %s: %w", path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode cue %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate != sampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, sampleRate, streamer))
	} else {
		buf.Append(streamer)
	}

	sm.mu.Lock()
	sm.cues[name] = buf
	sm.mu.Unlock()
	return nil
}

// CueCount returns the number of loaded cues.
func (sm *SoundManager) CueCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.cues)
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetListener moves the point distances are measured from.
func (sm *SoundManager) SetListener(pos geom.WPos) {
	sm.mu.Lock()
	sm.listener = pos
	sm.mu.Unlock()
}

// Play starts cue name at pos. It is a no-op until Initialize succeeded.
func (sm *SoundManager) Play(name string, pos geom.WPos) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := sm.streamer(name, pos)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// streamer builds the attenuated stream for one playback, or nil if the
// cue is out of earshot. Callers hold sm.mu.
func (sm *SoundManager) streamer(name string, pos geom.WPos) beep.Streamer {
	cells := float64(pos.Sub(sm.listener).HorizontalLength()) / geom.UnitsPerCell
	if cells > maxAudibleCells {
		return nil
	}

	var src beep.Streamer
	if buf, ok := sm.cues[name]; ok {
		src = buf.Streamer(0, buf.Len())
	} else {
		tone, err := generators.SineTone(sampleRate, fallbackTone)
		if err != nil {
			log.Printf("audio: no cue %q and no fallback tone: %v", name, err)
			return nil
		}
		src = beep.Take(sampleRate.N(fallbackDuration), tone)
	}
	return &effects.Volume{Streamer: src, Base: 2, Volume: attenuation(cells)}
}

// attenuation returns the volume exponent, base 2, for a distance in cells.
func attenuation(cells float64) float64 {
	return -math.Max(cells, 0) / falloffCells
}
