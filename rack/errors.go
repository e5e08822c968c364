package rack

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph and layout mutations. Callers match with
// errors.Is; interactive callers mostly ignore them (a rejected drop just
// leaves the rack unchanged).
var (
	ErrUnknownModule     = errors.New("unknown module")
	ErrUnknownWire       = errors.New("unknown wire")
	ErrTypeMismatch      = errors.New("port type mismatch")
	ErrPlacementConflict = errors.New("placement conflict")
	ErrSchemaInvalid     = errors.New("invalid patch document")
)

// LoadWarning records a patch entry that was dropped during load.
// Dropped entries are never fatal; the rest of the patch still loads.
type LoadWarning struct {
	Section string // "modules" or "wires"
	Index   int    // position in the persisted array
	Reason  string
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("%s[%d]: %s", w.Section, w.Index, w.Reason)
}
