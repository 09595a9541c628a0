// Package audio validates recorded utterance uploads before they are
// shipped to the transcription API.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// wavHeaderSize is the size of a canonical PCM WAV header: RIFF chunk
// descriptor, "fmt " sub-chunk, and "data" sub-chunk header.
const wavHeaderSize = 44

// ErrNotWAV indicates the uploaded data is not a PCM WAV file.
var ErrNotWAV = errors.New("not a PCM WAV file")

// WAVInfo describes a probed WAV file.
type WAVInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataBytes     int
	Duration      time.Duration
}

// ProbeWAV reads the canonical 44-byte WAV header and returns the
// stream parameters. Uploads that are not uncompressed PCM are
// rejected; the transcription API does not accept anything else we
// would want to send it raw.
func ProbeWAV(r io.Reader) (*WAVInfo, error) {
	header := make([]byte, wavHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrNotWAV)
	}

	// RIFF chunk descriptor
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE marker", ErrNotWAV)
	}

	// "fmt " sub-chunk
	if string(header[12:16]) != "fmt " {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrNotWAV)
	}
	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	if audioFormat != 1 { // 1 = PCM
		return nil, fmt.Errorf("%w: audio format %d is not PCM", ErrNotWAV, audioFormat)
	}

	channels := int(binary.LittleEndian.Uint16(header[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(header[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(header[34:36]))
	dataBytes := int(binary.LittleEndian.Uint32(header[40:44]))

	if channels == 0 || sampleRate == 0 || bitsPerSample == 0 {
		return nil, fmt.Errorf("%w: zeroed format fields", ErrNotWAV)
	}

	info := &WAVInfo{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitsPerSample,
		DataBytes:     dataBytes,
	}

	byteRate := sampleRate * channels * bitsPerSample / 8
	if byteRate > 0 && dataBytes > 0 {
		info.Duration = time.Duration(float64(dataBytes) / float64(byteRate) * float64(time.Second))
	}

	return info, nil
}
