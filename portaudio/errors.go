package portaudio

import (
	"errors"
	"fmt"
)

// Validation errors, detected before any native-engine call. Argument
// validation never touches engine or stream state.
var (
	// ErrNoStreamDirection is returned by OpenStream when neither input nor
	// output was requested.
	ErrNoStreamDirection = errors.New("must specify at least one of input or output")
	// ErrInvalidChannelCount is returned for a channel count below one.
	ErrInvalidChannelCount = errors.New("invalid number of channels")
	// ErrInvalidFrameCount is returned for a negative frame count.
	ErrInvalidFrameCount = errors.New("invalid number of frames")
	// ErrUnknownSampleFormat is returned for a sample format this package
	// cannot size.
	ErrUnknownSampleFormat = errors.New("unknown sample format")
	// ErrInvalidCallbackResult is recorded against a stream whose callback
	// returned a continuation code outside Continue/Complete/Abort.
	ErrInvalidCallbackResult = errors.New("invalid stream callback result from callback")
)

// Error is a native-engine failure. It carries the engine error code and the
// engine's message for it.
type Error struct {
	Code ErrorCode
	Text string
}

func (e *Error) Error() string {
	if e.Text != "" {
		return e.Text
	}
	return GetErrorText(e.Code)
}

// UnanticipatedHostError represents a host-specific error that occurred
// within the underlying audio API (ALSA, CoreAudio, WASAPI, etc.).
type UnanticipatedHostError struct {
	Code          ErrorCode
	Text          string
	HostApiType   HostApiTypeID
	HostErrorCode int
	HostErrorText string
}

func (e *UnanticipatedHostError) Error() string {
	if e.HostErrorText != "" {
		return fmt.Sprintf("%s [Host API error %d: %s]", e.Text, e.HostErrorCode, e.HostErrorText)
	}
	return fmt.Sprintf("%s [Host API error %d]", e.Text, e.HostErrorCode)
}

// newError creates an appropriate error from an engine error code.
// For unanticipated host errors, it extracts detailed host-specific information.
func newError(code ErrorCode) error {
	if code == NoError {
		return nil
	}

	if code == UnanticipatedHostErrorCode {
		if apiType, hostCode, hostText, ok := host.LastHostError(); ok {
			return &UnanticipatedHostError{
				Code:          code,
				Text:          GetErrorText(code),
				HostApiType:   apiType,
				HostErrorCode: hostCode,
				HostErrorText: hostText,
			}
		}
	}

	return &Error{Code: code, Text: GetErrorText(code)}
}

// errStreamClosed is the failure every operation on a closed stream reports.
func errStreamClosed() error {
	return &Error{Code: BadStreamPtr, Text: "Stream closed"}
}

// errorText supplies engine error messages for backends that cannot ask the
// native library (the stub, and fakes in tests). The strings match PortAudio's
// Pa_GetErrorText output.
func errorText(code ErrorCode) string {
	switch code {
	case NoError:
		return "Success"
	case NotInitialized:
		return "PortAudio not initialized"
	case UnanticipatedHostErrorCode:
		return "Unanticipated host error"
	case InvalidChannelCount:
		return "Invalid number of channels"
	case InvalidSampleRate:
		return "Invalid sample rate"
	case InvalidDevice:
		return "Invalid device"
	case InvalidFlag:
		return "Invalid flag"
	case SampleFormatNotSupported:
		return "Sample format not supported"
	case BadIODeviceCombination:
		return "Illegal combination of I/O devices"
	case InsufficientMemory:
		return "Insufficient memory"
	case BufferTooBig:
		return "Buffer too big"
	case BufferTooSmall:
		return "Buffer too small"
	case NullCallback:
		return "No callback routine specified"
	case BadStreamPtr:
		return "Invalid stream pointer"
	case TimedOut:
		return "Wait timed out"
	case InternalError:
		return "Internal PortAudio error"
	case DeviceUnavailable:
		return "Device unavailable"
	case IncompatibleHostApiSpecificStreamInfo:
		return "Incompatible host API specific stream info"
	case StreamIsStopped:
		return "Stream is stopped"
	case StreamIsNotStopped:
		return "Stream is not stopped"
	case InputOverflowed:
		return "Input overflowed"
	case OutputUnderflowed:
		return "Output underflowed"
	case HostApiNotFound:
		return "Host API not found"
	case InvalidHostApi:
		return "Invalid host API"
	case CanNotReadFromACallbackStream:
		return "Can't read from a callback stream"
	case CanNotWriteToACallbackStream:
		return "Can't write to a callback stream"
	case CanNotReadFromAnOutputOnlyStream:
		return "Can't read from an output only stream"
	case CanNotWriteToAnInputOnlyStream:
		return "Can't write to an input only stream"
	case IncompatibleStreamHostApi:
		return "Incompatible stream host API"
	case BadBufferPtr:
		return "Bad buffer pointer"
	default:
		return fmt.Sprintf("Invalid error code (value greater than zero) (%d)", int(code))
	}
}
