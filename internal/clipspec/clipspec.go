// Package clipspec classifies per-item cut specifications.
//
// A manifest cell holds either a single range (`['00:00:05','00:00:30']`) or an
// ordered list of ranges (`[['00:00:00','00:00:10'],['00:01:00','00:00:05']]`).
// Resolve decides the shape once, at manifest load, so the extraction path
// never inspects raw cell values. Timecodes are opaque and passed verbatim to
// ffmpeg.
package clipspec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags the shape of a ClipSpec.
type Kind int

const (
	// KindSimple is a single range cut straight into the final artifact.
	KindSimple Kind = iota
	// KindMulti is an ordered list of ranges cut into segments and concatenated.
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindMulti:
		return "multi"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Range is one time window. Start and End are handed to ffmpeg unchanged.
type Range struct {
	Start string
	End   string
}

// ClipSpec is the resolved cut specification for one item.
//
// Problem is non-empty when the cell could not be classified. Such a spec has
// no ranges and is reported as an extraction failure by the job.
type ClipSpec struct {
	Kind    Kind
	Ranges  []Range
	Problem string
}

// Valid reports whether the spec can be executed.
func (s ClipSpec) Valid() bool {
	return s.Problem == "" && len(s.Ranges) > 0
}

// Simple builds a single-range spec.
func Simple(start, end string) ClipSpec {
	return ClipSpec{Kind: KindSimple, Ranges: []Range{{Start: start, End: end}}}
}

// Multi builds an ordered multi-range spec.
func Multi(ranges ...Range) ClipSpec {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	return ClipSpec{Kind: KindMulti, Ranges: out}
}

// Resolve decodes a manifest cell and classifies it. It never fails; a
// malformed cell yields a spec whose Problem describes the defect.
func Resolve(cell string) ClipSpec {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return invalid("empty cut specification")
	}
	normalized, err := toJSON(trimmed)
	if err != nil {
		return invalid(fmt.Sprintf("decode cut specification %q: %v", trimmed, err))
	}
	var value any
	if err := json.Unmarshal([]byte(normalized), &value); err != nil {
		return invalid(fmt.Sprintf("decode cut specification %q: %v", trimmed, err))
	}
	return Classify(value)
}

// Classify inspects an already decoded value. A list whose first element is a
// string is Simple; a list whose first element is a list is Multi.
func Classify(value any) ClipSpec {
	list, ok := value.([]any)
	if !ok {
		return invalid(fmt.Sprintf("cut specification must be a list, got %T", value))
	}
	if len(list) == 0 {
		return invalid("cut specification is an empty list")
	}
	switch list[0].(type) {
	case string:
		r, problem := pair(list)
		if problem != "" {
			return invalid(problem)
		}
		return ClipSpec{Kind: KindSimple, Ranges: []Range{r}}
	case []any:
		ranges := make([]Range, 0, len(list))
		for idx, entry := range list {
			inner, ok := entry.([]any)
			if !ok {
				return invalid(fmt.Sprintf("range %d must be a list, got %T", idx, entry))
			}
			r, problem := pair(inner)
			if problem != "" {
				return invalid(fmt.Sprintf("range %d: %s", idx, problem))
			}
			ranges = append(ranges, r)
		}
		return ClipSpec{Kind: KindMulti, Ranges: ranges}
	default:
		return invalid(fmt.Sprintf("unsupported cut specification element %T", list[0]))
	}
}

func pair(list []any) (Range, string) {
	if len(list) != 2 {
		return Range{}, fmt.Sprintf("range needs exactly 2 timecodes, got %d", len(list))
	}
	start, ok := list[0].(string)
	if !ok {
		return Range{}, fmt.Sprintf("start timecode must be a string, got %T", list[0])
	}
	end, ok := list[1].(string)
	if !ok {
		return Range{}, fmt.Sprintf("end timecode must be a string, got %T", list[1])
	}
	return Range{Start: start, End: end}, ""
}

func invalid(problem string) ClipSpec {
	return ClipSpec{Problem: problem}
}
