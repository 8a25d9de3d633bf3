package portaudio

// The constant values in this file mirror the PortAudio ABI. They are written
// out numerically rather than taken from <portaudio.h> because the package
// must compile without the native library present (see host_stub.go); the cgo
// backend is only built with the "portaudio" tag.

// PaSampleFormat identifies the in-memory representation of a single sample.
type PaSampleFormat int

const (
	SampleFmtFloat32 PaSampleFormat = 0x00000001
	SampleFmtInt32   PaSampleFormat = 0x00000002
	SampleFmtInt24   PaSampleFormat = 0x00000004
	SampleFmtInt16   PaSampleFormat = 0x00000008
	SampleFmtInt8    PaSampleFormat = 0x00000010
	SampleFmtUInt8   PaSampleFormat = 0x00000020
	SampleFmtCustom  PaSampleFormat = 0x00010000
)

// PaTime represents time in seconds as used by PortAudio (maps to C double).
type PaTime float64

// ErrorCode is a PortAudio error/status code. Zero means success; stream and
// device queries may also return non-negative counts in the same value space.
type ErrorCode int

const (
	NoError           ErrorCode = 0
	FormatIsSupported ErrorCode = 0
)

const (
	NotInitialized ErrorCode = iota - 10000
	// UnanticipatedHostErrorCode is the code form; newError turns it into an
	// *UnanticipatedHostError with host-specific detail attached.
	UnanticipatedHostErrorCode
	InvalidChannelCount
	InvalidSampleRate
	InvalidDevice
	InvalidFlag
	SampleFormatNotSupported
	BadIODeviceCombination
	InsufficientMemory
	BufferTooBig
	BufferTooSmall
	NullCallback
	BadStreamPtr
	TimedOut
	InternalError
	DeviceUnavailable
	IncompatibleHostApiSpecificStreamInfo
	StreamIsStopped
	StreamIsNotStopped
	InputOverflowed
	OutputUnderflowed
	HostApiNotFound
	InvalidHostApi
	CanNotReadFromACallbackStream
	CanNotWriteToACallbackStream
	CanNotReadFromAnOutputOnlyStream
	CanNotWriteToAnInputOnlyStream
	IncompatibleStreamHostApi
	BadBufferPtr
)

// HostApiTypeID identifies an OS-specific audio subsystem.
type HostApiTypeID int

const (
	InDevelopment   HostApiTypeID = 0
	DirectSound     HostApiTypeID = 1
	MME             HostApiTypeID = 2
	ASIO            HostApiTypeID = 3
	SoundManager    HostApiTypeID = 4
	CoreAudio       HostApiTypeID = 5
	OSS             HostApiTypeID = 7
	ALSA            HostApiTypeID = 8
	AL              HostApiTypeID = 9
	BeOS            HostApiTypeID = 10
	WDMKS           HostApiTypeID = 11
	JACK            HostApiTypeID = 12
	WASAPI          HostApiTypeID = 13
	AudioScienceHPI HostApiTypeID = 14
)

// NoDevice is the device index used where no device is available or selected.
// Passing it as a StreamConfig device index selects the engine default.
const NoDevice = -1

// FramesPerBufferUnspecified lets the engine choose an optimal buffer size,
// possibly varying between callback invocations.
const FramesPerBufferUnspecified = 0

// PaStreamFlags specify special options when opening a stream.
type PaStreamFlags int

const (
	// NoFlag is the default, no special flags set
	NoFlag PaStreamFlags = 0x00000000
	// ClipOff disables automatic output clipping. Streams opened by this
	// package always set it, matching the assumption that callers do not
	// produce out-of-range samples.
	ClipOff PaStreamFlags = 0x00000001
	// DitherOff disables dithering when converting from float to integer samples
	DitherOff PaStreamFlags = 0x00000002
	// NeverDropInput prevents PortAudio from dropping input data when the callback is slow
	NeverDropInput PaStreamFlags = 0x00000004
	// PrimeOutputBuffersUsingStreamCallback pre-fills output buffers before starting
	PrimeOutputBuffersUsingStreamCallback PaStreamFlags = 0x00000008
	// PlatformSpecificFlags allows platform-specific flag usage
	PlatformSpecificFlags PaStreamFlags = 0x00010000
)

// StreamCallbackResult indicates what the callback wants the stream to do.
type StreamCallbackResult int

const (
	// Continue tells the engine to keep invoking the callback
	Continue StreamCallbackResult = 0
	// Complete tells the engine to finish playing remaining buffers then stop
	Complete StreamCallbackResult = 1
	// Abort tells the engine to stop immediately, discarding buffered data
	Abort StreamCallbackResult = 2
)

// StreamCallbackFlags is a bitmask describing stream conditions at the time a
// callback is invoked.
type StreamCallbackFlags uint

const (
	// InputUnderflow indicates input data was lost before the callback was called
	InputUnderflow StreamCallbackFlags = 0x00000001
	// InputOverflow indicates input data was discarded after the callback returned
	InputOverflow StreamCallbackFlags = 0x00000002
	// OutputUnderflow indicates the output buffer had insufficient data
	OutputUnderflow StreamCallbackFlags = 0x00000004
	// OutputOverflow indicates output data was discarded
	OutputOverflow StreamCallbackFlags = 0x00000008
	// PrimingOutput indicates initial output is being generated
	PrimingOutput StreamCallbackFlags = 0x00000010
)
