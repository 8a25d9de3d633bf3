package portaudio

import "fmt"

// Frame buffer codec: pure conversions between frame counts and interleaved
// byte lengths. Both the blocking read path (to size the receive buffer) and
// the callback bridge (to size input/output spans) go through these.

// GetSampleSize returns the size in bytes of a single sample in the given
// format.
func GetSampleSize(format PaSampleFormat) (int, error) {
	if w := sampleWidth(format); w > 0 {
		return w, nil
	}
	return 0, ErrUnknownSampleFormat
}

func sampleWidth(format PaSampleFormat) int {
	switch format {
	case SampleFmtFloat32, SampleFmtInt32:
		return 4
	case SampleFmtInt24:
		return 3
	case SampleFmtInt16:
		return 2
	case SampleFmtInt8, SampleFmtUInt8:
		return 1
	default:
		return 0
	}
}

// BufferSize returns the byte length of an interleaved buffer holding frames
// frames of channels channels in the given format.
func BufferSize(frames, channels int, format PaSampleFormat) (int, error) {
	if frames < 0 {
		return 0, ErrInvalidFrameCount
	}
	if channels < 1 {
		return 0, ErrInvalidChannelCount
	}
	width, err := GetSampleSize(format)
	if err != nil {
		return 0, err
	}
	return frames * channels * width, nil
}

// FrameCount is the inverse of BufferSize: the number of frames held in
// byteLen bytes of interleaved samples. byteLen must be an exact multiple of
// the frame stride.
func FrameCount(byteLen, channels int, format PaSampleFormat) (int, error) {
	if byteLen < 0 {
		return 0, fmt.Errorf("invalid buffer length %d", byteLen)
	}
	if channels < 1 {
		return 0, ErrInvalidChannelCount
	}
	width, err := GetSampleSize(format)
	if err != nil {
		return 0, err
	}
	stride := channels * width
	if byteLen%stride != 0 {
		return 0, fmt.Errorf("buffer length %d is not a multiple of the %d-byte frame size", byteLen, stride)
	}
	return byteLen / stride, nil
}
