package binding

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Ext is the file extension for binding definition files.
const Ext = ".binding"

// Entry binds one action to the physical buttons that trigger it.
type Entry struct {
	Action  string
	Buttons []string
}

// Config is an ordered binding definition. Order matters: the action
// bound first fires first when a button fans out to several actions.
type Config []Entry

// ParseConfig decodes a binding file: a JSON object mapping action
// names to a button name or a list of button names, in document order.
func ParseConfig(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", doc.Type)
	}

	var cfg Config
	var parseErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		entry := Entry{Action: key.String()}
		switch {
		case value.IsArray():
			for _, b := range value.Array() {
				if b.Type != gjson.String {
					parseErr = fmt.Errorf("action %q: buttons must be strings", entry.Action)
					return false
				}
				entry.Buttons = append(entry.Buttons, b.String())
			}
		case value.Type == gjson.String:
			entry.Buttons = []string{value.String()}
		default:
			parseErr = fmt.Errorf("action %q: expected string or list of strings", entry.Action)
			return false
		}
		cfg = append(cfg, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return cfg, nil
}

// EncodeConfig serializes a config back to the binding file format.
// Single-button entries are written as plain strings.
func EncodeConfig(cfg Config) ([]byte, error) {
	out := "{}"
	var err error
	for _, e := range cfg {
		path := escapePath(e.Action)
		if len(e.Buttons) == 1 {
			out, err = sjson.Set(out, path, e.Buttons[0])
		} else {
			out, err = sjson.Set(out, path, e.Buttons)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding action %q: %w", e.Action, err)
		}
	}
	return []byte(out), nil
}

// escapePath neutralizes sjson path syntax so action names are treated
// as literal object keys.
func escapePath(name string) string {
	r := strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`)
	return r.Replace(name)
}
