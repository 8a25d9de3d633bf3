package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/spf13/cobra"

	"github.com/go-audio/wav"

	"github.com/sonicbind/portaudio/internal/log"
	"github.com/sonicbind/portaudio/portaudio"
)

// pcmClip is a fully decoded clip: interleaved little-endian Int16 samples.
type pcmClip struct {
	sampleRate float64
	channels   int
	data       []byte
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <file>",
		Short: "Play a WAV, MP3 or OGG file on the output device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			return withEngine(func() error { return playClip(clip) })
		},
	}
}

func decodeFile(path string) (*pcmClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .wav, .mp3 or .ogg)", filepath.Ext(path))
	}
}

func decodeWAV(f *os.File) (*pcmClip, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding WAV: %w", err)
	}

	// Rescale the source bit depth to Int16.
	shift := int(dec.BitDepth) - 16
	data := make([]byte, len(buf.Data)*2)
	for i, s := range buf.Data {
		if shift > 0 {
			s >>= shift
		} else if shift < 0 {
			s <<= -shift
		}
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(s)))
	}

	return &pcmClip{
		sampleRate: float64(buf.Format.SampleRate),
		channels:   buf.Format.NumChannels,
		data:       data,
	}, nil
}

func decodeMP3(f *os.File) (*pcmClip, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}

	return &pcmClip{
		sampleRate: float64(dec.SampleRate()),
		channels:   2,
		data:       data,
	}, nil
}

func decodeOGG(f *os.File) (*pcmClip, error) {
	samples, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int16(math.Round(float64(s) * 32767))
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	}

	return &pcmClip{
		sampleRate: float64(format.SampleRate),
		channels:   format.Channels,
		data:       data,
	}, nil
}

func playClip(clip *pcmClip) error {
	framesPerBuffer := cfg.Audio.FramesPerBuffer
	if framesPerBuffer == portaudio.FramesPerBufferUnspecified {
		framesPerBuffer = 1024
	}
	chunkBytes, err := portaudio.BufferSize(framesPerBuffer, clip.channels, portaudio.SampleFmtInt16)
	if err != nil {
		return err
	}

	scfg := portaudio.NewStreamConfig(clip.sampleRate, clip.channels, portaudio.SampleFmtInt16)
	scfg.Output = true
	scfg.OutputDeviceIndex = cfg.Audio.OutputDevice
	scfg.FramesPerBuffer = framesPerBuffer

	stream, err := portaudio.OpenStream(scfg)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.StartStream(); err != nil {
		return err
	}

	totalFrames, err := portaudio.FrameCount(len(clip.data), clip.channels, portaudio.SampleFmtInt16)
	if err != nil {
		return err
	}
	log.Infof("playing %d frames at %.0f Hz, %d channel(s)", totalFrames, clip.sampleRate, clip.channels)

	chunk := make([]byte, chunkBytes)
	for off := 0; off < len(clip.data); off += chunkBytes {
		n := copy(chunk, clip.data[off:])
		// The last period is padded with silence to keep a whole buffer.
		for i := n; i < chunkBytes; i++ {
			chunk[i] = 0
		}
		if err := stream.Write(chunk, framesPerBuffer, false); err != nil {
			return err
		}
	}

	return stream.StopStream()
}
