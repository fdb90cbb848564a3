// ABOUTME: Unit tests for the FLAC adapter
// ABOUTME: Tests produced streams by parsing them back with mewkiz/flac
package encode

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/untracker/untracker-go/pkg/audio"
)

func TestFLACEncoder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.flac")
	enc, err := New(FormatFLAC, path, Options{BitDepth: 16})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	buf := testBuffer(2)
	if err := enc.Encode(buf); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	stream, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	defer stream.Close()

	if int(stream.Info.SampleRate) != buf.SampleRate {
		t.Errorf("sample rate = %d, want %d", stream.Info.SampleRate, buf.SampleRate)
	}
	if int(stream.Info.NChannels) != buf.Channels {
		t.Errorf("channels = %d, want %d", stream.Info.NChannels, buf.Channels)
	}
	if int(stream.Info.BitsPerSample) != 16 {
		t.Errorf("bit depth = %d, want 16", stream.Info.BitsPerSample)
	}
	if int(stream.Info.NSamples) != buf.Frames() {
		t.Errorf("frame count = %d, want %d", stream.Info.NSamples, buf.Frames())
	}

	var decoded [][]int32
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("parsing frame: %v", err)
		}
		for ch, sub := range fr.Subframes {
			for len(decoded) <= ch {
				decoded = append(decoded, nil)
			}
			decoded[ch] = append(decoded[ch], sub.Samples[:fr.BlockSize]...)
		}
	}

	if len(decoded) != buf.Channels {
		t.Fatalf("decoded %d channels, want %d", len(decoded), buf.Channels)
	}
	for ch := 0; ch < buf.Channels; ch++ {
		if len(decoded[ch]) != buf.Frames() {
			t.Fatalf("channel %d: decoded %d frames, want %d", ch, len(decoded[ch]), buf.Frames())
		}
		for i := 0; i < buf.Frames(); i++ {
			want := int32(audio.SampleToInt16(buf.Samples[i*buf.Channels+ch]))
			if decoded[ch][i] != want {
				t.Errorf("channel %d frame %d: got %d, want %d", ch, i, decoded[ch][i], want)
			}
		}
	}
}

func TestFLACEncoder_MultipleBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.flac")
	enc, err := New(FormatFLAC, path, Options{BitDepth: 16})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// Longer than one 4096-frame block, with a partial final block.
	frames := flacBlockSize + 100
	samples := make([]int32, frames)
	for i := range samples {
		samples[i] = audio.SampleFromInt16(int16(i % 1000))
	}
	buf := &audio.Buffer{Samples: samples, SampleRate: 44100, Channels: 1}

	if err := enc.Encode(buf); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	stream, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	defer stream.Close()

	total := 0
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("parsing frame: %v", err)
		}
		total += int(fr.BlockSize)
	}
	if total != frames {
		t.Errorf("decoded %d frames, want %d", total, frames)
	}
}

func TestFLACEncoder_RejectsBadChannelCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	enc, err := New(FormatFLAC, path, Options{BitDepth: 16})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	buf := &audio.Buffer{Samples: make([]int32, 12), SampleRate: 44100, Channels: 4}
	if err := enc.Encode(buf); err == nil {
		t.Fatalf("Encode() expected error for 4-channel buffer")
	}
}
