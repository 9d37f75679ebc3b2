package wire

import "sort"

const (
	tagEnd    = 0
	tagString = 1
	tagDict   = 2
)

// Value is one element of a Dict entry's value list: either a string or a
// nested *Dict, per §3's "list of string-or-dict values".
type Value struct {
	Str  string
	Dict *Dict
	// IsDict distinguishes a zero-value string from an absent dict; a
	// Value is a dict iff IsDict is true.
	IsDict bool
}

// StringValue wraps a string as a dict Value.
func StringValue(s string) Value { return Value{Str: s} }

// DictValue wraps a nested *Dict as a dict Value.
func DictValue(d *Dict) Value { return Value{Dict: d, IsDict: true} }

type entry struct {
	key    string
	values []Value
}

// Dict is an insertion-ordered mapping from string keys to lists of
// string-or-dict values (§3). Encoding always emits keys in ascending
// lexicographic order (the wire invariant the receiver enforces);
// decoding accepts any order and preserves the order values were read in.
type Dict struct {
	entries []entry
	index   map[string]int
}

// NewDict returns an empty Dict ready for Set calls.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// Set replaces (or creates) the value list for key.
func (d *Dict) Set(key string, values ...Value) {
	if i, ok := d.index[key]; ok {
		d.entries[i].values = values
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, values: values})
}

// SetString is a convenience for the common single-string-value case.
func (d *Dict) SetString(key, value string) {
	d.Set(key, StringValue(value))
}

// Get returns the value list stored under key, if any.
func (d *Dict) Get(key string) ([]Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].values, true
}

// GetString returns the first string value stored under key, if key
// exists and its first value is a string (not a nested dict).
func (d *Dict) GetString(key string) (string, bool) {
	vs, ok := d.Get(key)
	if !ok || len(vs) == 0 || vs[0].IsDict {
		return "", false
	}
	return vs[0].Str, true
}

// Keys returns the keys in the order they were first set.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// PackDict appends the wire encoding of d, with top-level keys of every
// nested dict sorted ascending, per §3's encoding invariant.
func PackDict(buf []byte, d *Dict) []byte {
	if d == nil {
		d = NewDict()
	}
	sorted := append([]entry(nil), d.entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })

	for _, e := range sorted {
		buf = PackString(buf, e.key)
		for _, v := range e.values {
			if v.IsDict {
				buf = append(buf, tagDict)
				buf = PackDict(buf, v.Dict)
			} else {
				buf = append(buf, tagString)
				buf = PackString(buf, v.Str)
			}
		}
		buf = append(buf, tagEnd)
	}
	// outer dict terminator: an empty-string key
	buf = PackString(buf, "")
	return buf
}

// UnpackDict reads a dict, accepting entries in any key order.
func UnpackDict(b []byte) (*Dict, int, error) {
	d := NewDict()
	total := 0
	for {
		key, used, err := UnpackString(b[total:])
		if err != nil {
			return nil, 0, err
		}
		total += used
		if key == "" {
			break
		}
		var values []Value
		for {
			if total >= len(b) {
				return nil, 0, truncated("dict entry tag")
			}
			tag := b[total]
			total++
			switch tag {
			case tagEnd:
				goto doneEntry
			case tagString:
				s, n, err := UnpackString(b[total:])
				if err != nil {
					return nil, 0, err
				}
				total += n
				values = append(values, StringValue(s))
			case tagDict:
				nd, n, err := UnpackDict(b[total:])
				if err != nil {
					return nil, 0, err
				}
				total += n
				values = append(values, DictValue(nd))
			default:
				return nil, 0, newErr(KindTruncated, "bad dict value tag")
			}
		}
	doneEntry:
		d.Set(key, values...)
	}
	return d, total, nil
}
