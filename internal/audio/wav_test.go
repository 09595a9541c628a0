package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// buildWAVHeader assembles a canonical 44-byte header for a PCM stream.
func buildWAVHeader(format uint16, channels uint16, sampleRate uint32, bitsPerSample uint16, dataBytes uint32) []byte {
	buf := make([]byte, 0, wavHeaderSize)
	le := binary.LittleEndian

	buf = append(buf, "RIFF"...)
	buf = le.AppendUint32(buf, 36+dataBytes)
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = le.AppendUint32(buf, 16)
	buf = le.AppendUint16(buf, format)
	buf = le.AppendUint16(buf, channels)
	buf = le.AppendUint32(buf, sampleRate)
	buf = le.AppendUint32(buf, sampleRate*uint32(channels)*uint32(bitsPerSample)/8)
	buf = le.AppendUint16(buf, channels*bitsPerSample/8)
	buf = le.AppendUint16(buf, bitsPerSample)

	buf = append(buf, "data"...)
	buf = le.AppendUint32(buf, dataBytes)
	return buf
}

func TestProbeWAV(t *testing.T) {
	// One second of 16 kHz mono 16-bit PCM.
	header := buildWAVHeader(1, 1, 16000, 16, 32000)

	info, err := ProbeWAV(bytes.NewReader(header))
	if err != nil {
		t.Fatalf("ProbeWAV: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 || info.BitsPerSample != 16 {
		t.Errorf("format = %d Hz / %d ch / %d bit", info.SampleRate, info.Channels, info.BitsPerSample)
	}
	if info.DataBytes != 32000 {
		t.Errorf("DataBytes = %d, want 32000", info.DataBytes)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

func TestProbeWAVRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"truncated", []byte("RIFF")},
		{"not riff", bytes.Repeat([]byte{0}, wavHeaderSize)},
		{"compressed format", buildWAVHeader(85, 1, 16000, 16, 32000)},
		{"zeroed sample rate", buildWAVHeader(1, 1, 0, 16, 32000)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ProbeWAV(bytes.NewReader(tc.data)); !errors.Is(err, ErrNotWAV) {
				t.Errorf("ProbeWAV: got %v, want ErrNotWAV", err)
			}
		})
	}
}
