// Package proto builds and decodes the opcode-tagged command and event
// frames that ride inside HME's chunked messages, on top of the
// primitive codec in internal/wire.
package proto

// Command opcodes (§4.4). Every command frame begins with
// vint(opcode), vint(target_id) followed by opcode-specific fields.
const (
	OpAdd              = 1
	OpSetBounds        = 2
	OpSetScale         = 3
	OpSetTranslation   = 4
	OpSetTransparency  = 5
	OpSetVisible       = 6
	OpSetPainting      = 7
	OpSetResource      = 8
	OpRemoveView       = 9

	OpAddColor  = 20
	OpAddTTF    = 21
	OpAddFont   = 22
	OpAddText   = 23
	OpAddImage  = 24
	OpAddSound  = 25
	OpAddStream = 26
	OpAddAnim   = 27

	OpSetActive   = 40
	OpSetPosition = 41
	OpSetSpeed    = 42
	OpSendEvent   = 44
	OpClose       = 45
	OpRemoveRsrc  = 46

	OpAcknowledgeIdle = 60
	OpTransition      = 61
	OpSetResolution   = 62
)

// Event opcodes (§4.5), the first vint decoded from an inbound message.
const (
	EvDeviceInfo     = 1
	EvAppInfo        = 2
	EvResourceInfo   = 3
	EvKey            = 4
	EvIdle           = 5
	EvFontInfo       = 6
	EvInitInfo       = 7
	EvResolutionInfo = 8
)

// Key actions (§4.5 KEY event).
const (
	KeyActionPress   = 1
	KeyActionRepeat  = 2
	KeyActionRelease = 3
)

// Transition direction enum (§6).
const (
	DirectionForward  = 1
	DirectionBack     = 2
	DirectionTeleport = 3
)

// MaxMementoLen is the hard local limit on a transition's memento blob.
const MaxMementoLen = 10240
