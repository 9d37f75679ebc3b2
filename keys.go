package hme

// KeyAction identifies whether a KEY event is a press, repeat, or
// release, per spec.md §4.5's action enum.
type KeyAction int32

const (
	KeyActionPress   KeyAction = 1
	KeyActionRepeat  KeyAction = 2
	KeyActionRelease KeyAction = 3
)

// Remote key numbers, recovered from the original implementation's
// KEY_* table (original_source/hme.py) since spec.md's distillation
// only names the action enum, not the keynum space the receiver sends.
const (
	KeyUnknown   = 0
	KeyTivo      = 1 // never sent by the receiver
	KeyUp        = 2
	KeyDown      = 3
	KeyLeft      = 4
	KeyRight     = 5
	KeySelect    = 6
	KeyPlay      = 7
	KeyPause     = 8
	KeySlow      = 9
	KeyReverse   = 10
	KeyForward   = 11
	KeyReplay    = 12
	KeyAdvance   = 13
	KeyThumbsUp  = 14
	KeyThumbsDown = 15
	KeyVolumeUp   = 16
	KeyVolumeDown = 17
	KeyChannelUp   = 18
	KeyChannelDown = 19
	KeyMute      = 20
	KeyRecord    = 21
	KeyWindow    = 22
	KeyPip       = KeyWindow
	KeyAspect    = KeyWindow
	KeyLiveTV    = 23 // never sent
	KeyExit      = 24 // never sent
	KeyInfo      = 25
	KeyDisplay   = KeyInfo
	KeyList      = 26 // never sent
	KeyGuide     = 27 // never sent
	KeyClear     = 28
	KeyEnter     = 29

	KeyNum0 = 40
	KeyNum1 = 41
	KeyNum2 = 42
	KeyNum3 = 43
	KeyNum4 = 44
	KeyNum5 = 45
	KeyNum6 = 46
	KeyNum7 = 47
	KeyNum8 = 48
	KeyNum9 = 49

	KeyStop     = 51
	KeyMenu     = 52
	KeyTopMenu  = 53
	KeyAngle    = 54
	KeyDVD      = 55 // never sent
	KeyOptA     = 56
	KeyOptB     = 57
	KeyOptC     = 58
	KeyOptD     = 59
	KeyTVPower  = 60
	KeyTVInput  = 61
	KeyVOD      = 62
	KeyPower    = 63
)

// KeyEvent is the decoded payload of a KEY event dispatched to
// KeyHandler implementations.
type KeyEvent struct {
	Action  KeyAction
	KeyNum  int32
	RawCode int32
}
