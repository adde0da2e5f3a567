package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"go-mind-control/pkg/geom"
)

func writeTone(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tone, err := generators.SineTone(rate, 440)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(rate.N(50*time.Millisecond), tone), format); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "iyurlaua.wav"), sampleRate)
	writeTone(t, filepath.Join(dir, "iyurlaub.WAV"), 22050)
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	sm := NewSoundManager()
	if err := sm.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if got := sm.CueCount(); got != 2 {
		t.Fatalf("CueCount() = %d, want 2", got)
	}

	// The 22.05 kHz file is resampled to the mixer rate.
	want := sampleRate.N(50 * time.Millisecond)
	if got := sm.cues["iyurlaub"].Len(); got < want-64 || got > want+64 {
		t.Errorf("resampled length = %d, want about %d", got, want)
	}
}

func TestLoadDirMissing(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.LoadDir(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDir() on a missing dir = %v, want nil", err)
	}
}

func TestLoadDirBadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewSoundManager().LoadDir(dir); err == nil {
		t.Error("LoadDir() accepted a broken wav file")
	}
}

func TestStreamerAttenuates(t *testing.T) {
	sm := NewSoundManager()

	near, ok := sm.streamer("zap", geom.WPos{}).(*effects.Volume)
	if !ok {
		t.Fatal("expected a volume effect")
	}
	if near.Volume != 0 {
		t.Errorf("volume at the listener = %v, want 0", near.Volume)
	}

	far := sm.streamer("zap", geom.NewWPos(16*geom.UnitsPerCell, 0, 0)).(*effects.Volume)
	if far.Volume != -2 {
		t.Errorf("volume at 16 cells = %v, want -2", far.Volume)
	}

	if s := sm.streamer("zap", geom.NewWPos(100*geom.UnitsPerCell, 0, 0)); s != nil {
		t.Error("cue out of earshot still streamed")
	}
}

func TestFallbackToneEnds(t *testing.T) {
	sm := NewSoundManager()
	s := sm.streamer("unknown", geom.WPos{})

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := sampleRate.N(fallbackDuration); total != want {
		t.Errorf("fallback streamed %d samples, want %d", total, want)
	}
}

func TestPlayBeforeInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager()
	sm.Play("zap", geom.WPos{})
	sm.Cleanup()
}
