package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/sonicbind/portaudio/internal/log"
	"github.com/sonicbind/portaudio/portaudio"
)

func newRecordCmd() *cobra.Command {
	var (
		output  string
		seconds int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record from the input device to a WAV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "recording-" + time.Now().Format("20060102-150405") + ".wav"
			}
			if seconds <= 0 {
				return fmt.Errorf("duration must be positive, got %d", seconds)
			}
			return withEngine(func() error { return record(output, seconds) })
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV file (default recording-<timestamp>.wav)")
	cmd.Flags().IntVarP(&seconds, "duration", "d", 5, "Recording duration in seconds")
	return cmd
}

func record(output string, seconds int) error {
	channels := cfg.Audio.Channels
	sampleRate := cfg.Audio.SampleRate
	framesPerBuffer := cfg.Audio.FramesPerBuffer
	if framesPerBuffer == portaudio.FramesPerBufferUnspecified {
		framesPerBuffer = 1024
	}

	scfg := portaudio.NewStreamConfig(sampleRate, channels, portaudio.SampleFmtInt16)
	scfg.Input = true
	scfg.InputDeviceIndex = cfg.Audio.InputDevice
	scfg.FramesPerBuffer = framesPerBuffer

	stream, err := portaudio.OpenStream(scfg)
	if err != nil {
		return err
	}
	defer stream.Close()

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := wav.NewEncoder(file, int(sampleRate), 16, channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: channels, SampleRate: int(sampleRate)},
		Data:   make([]int, framesPerBuffer*channels),
	}

	if err := stream.StartStream(); err != nil {
		return err
	}

	totalFrames := int(sampleRate) * seconds
	log.Infof("recording %d seconds to %s", seconds, output)

	for captured := 0; captured < totalFrames; captured += framesPerBuffer {
		data, err := stream.Read(framesPerBuffer, false)
		if err != nil {
			return err
		}
		for i := range buf.Data {
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(data[2*i:])))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
	}

	if err := stream.StopStream(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV file: %w", err)
	}
	log.Infof("wrote %s", output)
	return nil
}
