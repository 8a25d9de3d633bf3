package portaudio

import (
	"fmt"
	"os"
)

// StreamCallbackTimeInfo carries the engine's timing information for one
// callback invocation.
type StreamCallbackTimeInfo struct {
	InputBufferAdcTime  PaTime // Time when the first sample of the input buffer was captured
	CurrentTime         PaTime // Time when the callback was invoked
	OutputBufferDacTime PaTime // Time when the first sample of the output buffer will be played
}

// CallbackResult is what a StreamCallback hands back to the engine.
//
// Data holds the interleaved output samples for streams with an output
// direction; it is ignored otherwise. If Data is shorter than the engine's
// buffer period (frameCount frames), the remainder is zero-filled and the
// stream completes after this buffer regardless of Code — under-filling
// always ends the stream with silence, it never signals an error. Data longer
// than the period is truncated.
type CallbackResult struct {
	Data []byte
	Code StreamCallbackResult
}

// StreamCallback is invoked by the engine's real-time thread once per buffer
// period.
//
// input holds the interleaved input samples for streams with an input
// direction, nil otherwise. It is a view into engine-owned memory: treat it
// as read-only and do not retain it past the call (copy if the data must
// outlive the invocation). frameCount is the number of frames in this period;
// byte lengths follow from frameCount x channels x sample width.
//
// Invocations are strictly sequential: the engine never calls the next period
// before the previous invocation returned.
type StreamCallback func(
	input []byte,
	frameCount int,
	timeInfo *StreamCallbackTimeInfo,
	statusFlags StreamCallbackFlags,
) CallbackResult

// callbackAdapter bridges the engine-facing callback to the user's
// StreamCallback: it marshals the invocation in, validates the result, copies
// the returned samples into the engine's output buffer, and converts
// misbehavior (panic, invalid continuation code) into an Abort plus a pending
// error on the owning stream. The real-time thread itself never propagates a
// failure synchronously; the owner observes it through Stream.Err.
type callbackAdapter struct {
	stream   *Stream
	callback StreamCallback
}

func (a *callbackAdapter) invoke(input, output []byte, frameCount int,
	timeInfo *StreamCallbackTimeInfo, statusFlags StreamCallbackFlags) (code StreamCallbackResult) {

	// A panicking callback must not unwind into the engine; record it for the
	// owner and abort the stream.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic in audio stream callback: %v\n", r)
			a.stream.setPendingErr(fmt.Errorf("panic in stream callback: %v", r))
			code = Abort
		}
	}()

	result := a.callback(input, frameCount, timeInfo, statusFlags)

	code = result.Code
	if code != Continue && code != Complete && code != Abort {
		a.stream.setPendingErr(ErrInvalidCallbackResult)
		return Abort
	}

	// Copy samples back for playback only if this is an output stream. A
	// short result is padded with silence and forces Complete, whatever the
	// callback asked for.
	if output != nil {
		n := copy(output, result.Data)
		if n < len(output) {
			clear(output[n:])
			code = Complete
		}
	}

	return code
}
