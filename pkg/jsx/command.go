// Package jsx builds the ExtendScript payloads sent to the host's embedded
// interpreter. Commands are structured values; escaping happens only here.
package jsx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidID is returned for event or key ids that cannot be resolved.
var ErrInvalidID = errors.New("invalid action id")

// DialogMode controls whether the host may show dialogs while executing.
type DialogMode string

const (
	DialogNo    DialogMode = "NO"
	DialogError DialogMode = "ERROR"
)

// Kind is the descriptor type of a parameter.
type Kind int

const (
	KindPath Kind = iota
	KindString
	KindInteger
	KindBoolean
)

// Param is one entry in an action descriptor.
type Param struct {
	Key   string
	Kind  Kind
	Value string
	Int   int64
	Bool  bool
}

// PathParam puts a file reference under key.
func PathParam(key, path string) Param {
	return Param{Key: key, Kind: KindPath, Value: path}
}

// BoolParam puts a boolean under key.
func BoolParam(key string, value bool) Param {
	return Param{Key: key, Kind: KindBoolean, Bool: value}
}

// Command is a host action invocation: executeAction(Event, desc, DialogMode).
type Command struct {
	Event      string
	Params     []Param
	DialogMode DialogMode
}

// Script renders the command as an ExtendScript payload.
func (c Command) Script() (string, error) {
	event, err := typeID(c.Event)
	if err != nil {
		return "", fmt.Errorf("event: %w", err)
	}

	mode := c.DialogMode
	if mode == "" {
		mode = DialogNo
	}

	var b strings.Builder
	fmt.Fprintf(&b, "var %s = %s;\n", varName(c.Event), event)
	b.WriteString("var desc = new ActionDescriptor();\n")
	for _, p := range c.Params {
		key, err := typeID(p.Key)
		if err != nil {
			return "", fmt.Errorf("param %q: %w", p.Key, err)
		}
		switch p.Kind {
		case KindPath:
			fmt.Fprintf(&b, "desc.putPath(%s, new File(%s));\n", key, Quote(p.Value))
		case KindString:
			fmt.Fprintf(&b, "desc.putString(%s, %s);\n", key, Quote(p.Value))
		case KindInteger:
			fmt.Fprintf(&b, "desc.putInteger(%s, %d);\n", key, p.Int)
		case KindBoolean:
			fmt.Fprintf(&b, "desc.putBoolean(%s, %s);\n", key, strconv.FormatBool(p.Bool))
		default:
			return "", fmt.Errorf("param %q: unknown kind %d", p.Key, p.Kind)
		}
	}
	fmt.Fprintf(&b, "executeAction(%s, desc, DialogModes.%s);\n", varName(c.Event), mode)
	return b.String(), nil
}

// typeID resolves an id: four characters use charIDToTypeID, longer ones
// stringIDToTypeID.
func typeID(id string) (string, error) {
	n := utf8.RuneCountInString(id)
	switch {
	case n == 4:
		return "charIDToTypeID(" + Quote(id) + ")", nil
	case n > 4:
		return "stringIDToTypeID(" + Quote(id) + ")", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
}

// varName derives a JavaScript identifier for the event, e.g. "Plc " -> idPlc.
func varName(id string) string {
	var b strings.Builder
	b.WriteString("id")
	for _, r := range id {
		if r < utf8.RuneSelf && (r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
