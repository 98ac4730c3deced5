package mode

// Mode is the cross-field combination strategy of a find command.
type Mode string

// Search mode constants.
const (
	// Any matches a contact if at least one supplied field matches.
	Any Mode = "any"
	// All matches a contact only if every supplied field matches.
	All Mode = "all"
)

// Flag is the preamble token selecting All.
const Flag = "-s"

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Any || m == All
}

// Identity returns the identity element of the mode's fold:
// false for the OR-fold of Any, true for the AND-fold of All.
func (m Mode) Identity() bool {
	return m == All
}

func (m Mode) String() string { return string(m) }

// FromPreamble selects the mode from the text preceding the first marker.
// ok is false for any preamble other than empty or Flag.
func FromPreamble(preamble string) (Mode, bool) {
	switch preamble {
	case "":
		return Any, true
	case Flag:
		return All, true
	default:
		return "", false
	}
}
