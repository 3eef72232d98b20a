package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// writeEDN renders a safe EDN subset: maps, vectors, strings, numbers,
// booleans, nil. Values round-trip through JSON first so struct output
// reuses the existing json tags for field naming.
func writeEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var sb strings.Builder
	enc := ednEncoder{out: &sb, pretty: pretty}
	enc.value(x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednEncoder struct {
	out    *strings.Builder
	pretty bool
}

func (e *ednEncoder) pad(level int) {
	if e.pretty {
		e.out.WriteByte('\n')
		e.out.WriteString(strings.Repeat("  ", level))
	}
}

func (e *ednEncoder) value(v any, level int) {
	switch t := v.(type) {
	case nil:
		e.out.WriteString("nil")
	case bool:
		e.out.WriteString(strconv.FormatBool(t))
	case string:
		e.out.WriteString(strconv.Quote(t))
	case float64:
		// JSON numbers arrive as float64; print integral values as ints.
		if float64(int64(t)) == t {
			e.out.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			e.out.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case []any:
		e.vector(t, level)
	case map[string]any:
		e.ednMap(t, level)
	default:
		// Unreachable after the JSON round-trip, but stay total.
		e.out.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func (e *ednEncoder) vector(xs []any, level int) {
	e.out.WriteByte('[')
	for i, x := range xs {
		if i > 0 && !e.pretty {
			e.out.WriteByte(' ')
		}
		e.pad(level + 1)
		e.value(x, level+1)
	}
	if len(xs) > 0 {
		e.pad(level)
	}
	e.out.WriteByte(']')
}

func (e *ednEncoder) ednMap(m map[string]any, level int) {
	e.out.WriteByte('{')
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 && !e.pretty {
			e.out.WriteByte(' ')
		}
		e.pad(level + 1)
		e.out.WriteByte(':')
		e.out.WriteString(keyword(k))
		e.out.WriteByte(' ')
		e.value(m[k], level+1)
	}
	if len(keys) > 0 {
		e.pad(level)
	}
	e.out.WriteByte('}')
}

// keyword makes a JSON field name safe as an EDN keyword.
func keyword(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "-")
}
