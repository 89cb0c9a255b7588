package capture

// ControlKind tags a control with the capability class that decides how the
// snapshot treats it.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlNumber   ControlKind = "number"
	ControlHidden   ControlKind = "hidden"
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
	ControlSelect   ControlKind = "select"

	// Action controls never carry response data.
	ControlFile   ControlKind = "file"
	ControlReset  ControlKind = "reset"
	ControlSubmit ControlKind = "submit"
	ControlButton ControlKind = "button"
)

// Control describes one input on the surface at a point in time. Surfaces
// report every control they hold, in document order; the capture policy does
// the filtering.
type Control struct {
	Name     string
	Kind     ControlKind
	Value    string
	Checked  bool
	Disabled bool
	// Selected lists the chosen options of a multi-select, in selection
	// order. Value is ignored for select controls.
	Selected []string
}

// Entry is one captured name/value pair. Encounter order is significant:
// array-mode records preserve it, object-mode records resolve repeated names
// by letting later entries win.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Snapshot captures the surface state at the instant of submission. It walks
// the controls in order and skips those that cannot contribute a response:
// unnamed controls, action kinds (file, reset, submit, button), and disabled
// controls. Checkboxes and radios contribute only while checked; a
// multi-select contributes one entry per selected option. Everything else
// contributes its value verbatim, empty values included.
func Snapshot(controls []Control) []Entry {
	var entries []Entry
	for _, c := range controls {
		if c.Name == "" || c.Disabled {
			continue
		}
		switch c.Kind {
		case ControlFile, ControlReset, ControlSubmit, ControlButton:
			continue
		case ControlRadio, ControlCheckbox:
			if !c.Checked {
				continue
			}
			entries = append(entries, Entry{Name: c.Name, Value: c.Value})
		case ControlSelect:
			for _, opt := range c.Selected {
				entries = append(entries, Entry{Name: c.Name, Value: opt})
			}
		default:
			entries = append(entries, Entry{Name: c.Name, Value: c.Value})
		}
	}
	return entries
}
