package portaudio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func openCallbackOutput(t *testing.T, cb StreamCallback) *Stream {
	t.Helper()
	cfg := NewStreamConfig(44100, 2, SampleFmtInt16)
	cfg.Output = true
	cfg.FramesPerBuffer = 64
	cfg.Callback = cb
	s, err := OpenStream(cfg)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	return s
}

// TestCallbackModeSelected tests that a non-nil callback switches the stream mode
func TestCallbackModeSelected(t *testing.T) {
	fe := withFakeEngine(t)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Code: Continue}
	})
	defer s.Close()

	if s.Mode() != CallbackDriven {
		t.Errorf("mode = %v, want CallbackDriven", s.Mode())
	}
	if fe.lastOpen.Callback == nil {
		t.Error("engine saw no callback")
	}
}

// TestCallbackExactFill tests a full output period with Continue
func TestCallbackExactFill(t *testing.T) {
	fe := withFakeEngine(t)

	// 64 frames of stereo Int16 = 256 bytes.
	want := make([]byte, 256)
	for i := range want {
		want[i] = 0xAB
	}

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		if frameCount != 64 {
			t.Errorf("frameCount = %d, want 64", frameCount)
		}
		return CallbackResult{Data: want, Code: Continue}
	})
	defer s.Close()

	code, output := fe.firePeriod(t, s, 64, 0)
	if code != Continue {
		t.Errorf("continuation code = %v, want Continue", code)
	}
	if !bytes.Equal(output, want) {
		t.Error("output does not match callback data")
	}
	if err := s.Err(); err != nil {
		t.Errorf("pending error = %v, want nil", err)
	}
}

// TestCallbackShortFill tests zero-padding and the forced Complete
func TestCallbackShortFill(t *testing.T) {
	fe := withFakeEngine(t)

	// Half a period of non-zero samples; the callback asks to Continue anyway.
	partial := bytes.Repeat([]byte{0x7F}, 128)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Data: partial, Code: Continue}
	})
	defer s.Close()

	code, output := fe.firePeriod(t, s, 64, 0)
	if code != Complete {
		t.Errorf("continuation code = %v, want forced Complete", code)
	}
	if !bytes.Equal(output[:128], partial) {
		t.Error("leading samples were not copied")
	}
	for i, b := range output[128:] {
		if b != 0 {
			t.Fatalf("output[%d] = %#x, want zero padding", 128+i, b)
		}
	}
}

// TestCallbackOversizedFill tests truncation of an over-long result
func TestCallbackOversizedFill(t *testing.T) {
	fe := withFakeEngine(t)

	oversized := bytes.Repeat([]byte{0x11}, 512)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Data: oversized, Code: Continue}
	})
	defer s.Close()

	code, output := fe.firePeriod(t, s, 64, 0)
	if code != Continue {
		t.Errorf("continuation code = %v, want Continue", code)
	}
	if len(output) != 256 {
		t.Fatalf("output = %d bytes, want 256", len(output))
	}
	if !bytes.Equal(output, oversized[:256]) {
		t.Error("output does not match truncated callback data")
	}
}

// TestCallbackCompleteAndAbort tests that well-formed codes pass through
func TestCallbackCompleteAndAbort(t *testing.T) {
	fe := withFakeEngine(t)

	full := make([]byte, 256)
	next := Complete

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Data: full, Code: next}
	})
	defer s.Close()

	if code, _ := fe.firePeriod(t, s, 64, 0); code != Complete {
		t.Errorf("continuation code = %v, want Complete", code)
	}
	next = Abort
	if code, _ := fe.firePeriod(t, s, 64, 0); code != Abort {
		t.Errorf("continuation code = %v, want Abort", code)
	}
	if err := s.Err(); err != nil {
		t.Errorf("pending error = %v, want nil", err)
	}
}

// TestCallbackInvalidCode tests the malformed-result policy
func TestCallbackInvalidCode(t *testing.T) {
	fe := withFakeEngine(t)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Code: StreamCallbackResult(42)}
	})
	defer s.Close()

	code, _ := fe.firePeriod(t, s, 64, 0)
	if code != Abort {
		t.Errorf("continuation code = %v, want Abort", code)
	}
	if err := s.Err(); !errors.Is(err, ErrInvalidCallbackResult) {
		t.Errorf("pending error = %v, want ErrInvalidCallbackResult", err)
	}
	// Err is read-and-clear.
	if err := s.Err(); err != nil {
		t.Errorf("pending error after read = %v, want nil", err)
	}
}

// TestCallbackPanic tests panic containment on the engine thread
func TestCallbackPanic(t *testing.T) {
	fe := withFakeEngine(t)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		panic("sample generator blew up")
	})
	defer s.Close()

	code, _ := fe.firePeriod(t, s, 64, 0)
	if code != Abort {
		t.Errorf("continuation code = %v, want Abort", code)
	}
	err := s.Err()
	if err == nil || !strings.Contains(err.Error(), "sample generator blew up") {
		t.Errorf("pending error = %v, want panic payload", err)
	}
}

// TestCallbackFirstErrorWins tests pending-error retention across periods
func TestCallbackFirstErrorWins(t *testing.T) {
	fe := withFakeEngine(t)

	s := openCallbackOutput(t, func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		return CallbackResult{Code: StreamCallbackResult(99)}
	})
	defer s.Close()

	fe.firePeriod(t, s, 64, 0)
	fe.firePeriod(t, s, 64, 0)

	if err := s.Err(); !errors.Is(err, ErrInvalidCallbackResult) {
		t.Errorf("pending error = %v, want ErrInvalidCallbackResult", err)
	}
}

// TestCallbackInputDelivery tests the capture-side marshaling
func TestCallbackInputDelivery(t *testing.T) {
	fe := withFakeEngine(t)

	var got []byte
	var gotTI StreamCallbackTimeInfo
	var gotFlags StreamCallbackFlags

	cfg := NewStreamConfig(48000, 1, SampleFmtInt16)
	cfg.Input = true
	cfg.InputDeviceIndex = 1
	cfg.FramesPerBuffer = 32
	cfg.Callback = func(input []byte, frameCount int, ti *StreamCallbackTimeInfo, flags StreamCallbackFlags) CallbackResult {
		got = append([]byte(nil), input...)
		gotTI = *ti
		gotFlags = flags
		return CallbackResult{Code: Continue}
	}
	s, err := OpenStream(cfg)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	defer s.Close()

	code, _ := fe.firePeriod(t, s, 32, InputOverflow)
	if code != Continue {
		t.Errorf("continuation code = %v, want Continue", code)
	}

	// 32 frames mono Int16 = 64 bytes of the fake's ramp pattern.
	if len(got) != 64 {
		t.Fatalf("input = %d bytes, want 64", len(got))
	}
	for i, b := range got {
		if b != byte(i+1) {
			t.Fatalf("input[%d] = %#x, want %#x", i, b, byte(i+1))
		}
	}
	if gotTI.CurrentTime != 1.0 || gotTI.InputBufferAdcTime != 0.5 || gotTI.OutputBufferDacTime != 1.5 {
		t.Errorf("timeInfo = %+v", gotTI)
	}
	if gotFlags != InputOverflow {
		t.Errorf("statusFlags = %v, want InputOverflow", gotFlags)
	}
}
