package pkg

import "errors"

// Chord notation and layout errors.
var (
	// ErrInvalidChord indicates a malformed chord notation or switch value.
	ErrInvalidChord = errors.New("invalid chord")

	// ErrUnknownKey indicates a key name that has no keycode.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownLayer indicates a reference to a layer the layout does not define.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrDuplicateLayer indicates a layer defined more than once.
	ErrDuplicateLayer = errors.New("duplicate layer")

	// ErrDelegationCycle indicates FromOtherPlusMask entries that form a cycle.
	ErrDelegationCycle = errors.New("layer delegation cycle")

	// ErrInvalidUnchorded indicates an unchorded key outside its layer's
	// unchorded mask or bound to more than one switch.
	ErrInvalidUnchorded = errors.New("invalid unchorded key")

	// ErrInvalidAction indicates an unrecognized layer action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnsupportedFormat indicates a layout document format that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported layout format")

	// ErrSchema indicates a layout document that does not match the schema.
	ErrSchema = errors.New("layout schema violation")
)

// Report errors.
var (
	// ErrAlreadyPressed indicates a key is already marked as pressed.
	ErrAlreadyPressed = errors.New("key already pressed")

	// ErrAlreadyReleased indicates a key is already marked as released.
	ErrAlreadyReleased = errors.New("key already released")

	// ErrTooManyKeys indicates all key slots of a report are in use.
	ErrTooManyKeys = errors.New("too many keys pressed")

	// ErrNotConfigured indicates a report writer was not configured.
	ErrNotConfigured = errors.New("not configured")
)

// General errors.
var (
	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAlreadyRunning indicates the scan loop is already running.
	ErrAlreadyRunning = errors.New("already running")
)
