// Package action turns the trailing command-line token into an action
// and applies it to a resolved device list.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	On Kind = iota
	Off
	Flip
	Just
	Print
	Status
	SetValue
)

// Action is the parsed form of the trailing token: a closed set of
// verbs, plus SetValue carrying the literal number to write.
type Action struct {
	Kind  Kind
	Value float64
}

// Parse matches the token against the recognized prefixes, in priority
// order: "f..." flips, "of..." turns off, exactly "on" turns on (an
// exact match so it cannot shadow other o-words), "j..." is just,
// "p..." prints, "s..." is status. Anything else must parse as a
// number to write.
func Parse(token string) (Action, error) {
	switch {
	case strings.HasPrefix(token, "f"):
		return Action{Kind: Flip}, nil
	case strings.HasPrefix(token, "of"):
		return Action{Kind: Off}, nil
	case token == "on":
		return Action{Kind: On}, nil
	case strings.HasPrefix(token, "j"):
		return Action{Kind: Just}, nil
	case strings.HasPrefix(token, "p"):
		return Action{Kind: Print}, nil
	case strings.HasPrefix(token, "s"):
		return Action{Kind: Status}, nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Action{}, fmt.Errorf("unknown action %q", token)
	}
	return Action{Kind: SetValue, Value: v}, nil
}

// Read reports whether the action only reads device state. Read
// actions may select excluded devices (sensors) via wildcard or group.
func (a Action) Read() bool {
	return a.Kind == Print || a.Kind == Status
}
