// Package fold decides whether a candidate fold of the sheet can be played: the fold
// line must be straight, the sheet must not fold through itself and nothing may be
// in the way while the squares swing around.
package fold

import "github.com/pkg/errors"

type FailureType uint8

const (
	NONE      FailureType = iota // the fold is valid
	KINKED                       // the fold line is not straight
	PAPERCLIP                    // the sheet would fold through itself
	COLLISION                    // something is in the way of the moving squares
	NOCHECK                      // another action holds the lock
)

var failureNames = [...]string{"NONE", "KINKED", "PAPERCLIP", "COLLISION", "NOCHECK"}

func (f FailureType) String() string {
	if int(f) < len(failureNames) {
		return failureNames[f]
	}
	return "UNKNOWN"
}

func (f FailureType) MarshalText() ([]byte, error) {
	if int(f) >= len(failureNames) {
		return nil, errors.Errorf("unknown fold failure type %d", f)
	}
	return []byte(f.String()), nil
}

func (f *FailureType) UnmarshalText(text []byte) error {
	for i, name := range failureNames {
		if name == string(text) {
			*f = FailureType(i)
			return nil
		}
	}
	return errors.Errorf("unknown fold failure type %q", text)
}
