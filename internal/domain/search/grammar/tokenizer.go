package grammar

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker is the prefix identifying which field a value belongs to, e.g. "n/".
type Marker string

// ArgumentMap holds the preamble and the marker-scoped values of a tokenized argument string.
type ArgumentMap struct {
	preamble string
	values   map[Marker][]string
}

// Preamble returns the trimmed text preceding the first recognized marker.
func (a ArgumentMap) Preamble() string { return a.preamble }

// Values returns every value given for m, in input order. ok is false if m never occurred.
func (a ArgumentMap) Values(m Marker) (values []string, ok bool) {
	v, ok := a.values[m]
	return v, ok
}

// Has reports whether m occurred at least once.
func (a ArgumentMap) Has(m Marker) bool {
	_, ok := a.values[m]
	return ok
}

type markerPosition struct {
	start  int
	marker Marker
}

// Tokenize splits args into a preamble and marker-scoped values.
// A marker is recognized at the start of args or right after whitespace;
// its value runs up to the next recognized marker. Values are trimmed.
func Tokenize(args string, markers ...Marker) ArgumentMap {
	positions := findPositions(args, markers)

	am := ArgumentMap{values: make(map[Marker][]string)}
	if len(positions) == 0 {
		am.preamble = strings.TrimSpace(args)
		return am
	}

	am.preamble = strings.TrimSpace(args[:positions[0].start])
	for i, pos := range positions {
		end := len(args)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		value := strings.TrimSpace(args[pos.start+len(pos.marker) : end])
		am.values[pos.marker] = append(am.values[pos.marker], value)
	}
	return am
}

func findPositions(args string, markers []Marker) []markerPosition {
	var positions []markerPosition
	for _, m := range markers {
		if m == "" {
			continue
		}
		from := 0
		for from < len(args) {
			i := strings.Index(args[from:], string(m))
			if i < 0 {
				break
			}
			at := from + i
			if startsToken(args, at) {
				positions = append(positions, markerPosition{start: at, marker: m})
			}
			from = at + 1
		}
	}

	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].start < positions[j].start
	})
	return positions
}

func startsToken(s string, at int) bool {
	if at == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:at])
	return unicode.IsSpace(r)
}
