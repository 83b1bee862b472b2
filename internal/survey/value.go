package survey

import "strconv"

// Kind tags what a Value holds.
type Kind uint8

const (
	Missing Kind = iota
	Text
	Number
)

// Value is a single table cell: missing, a raw answer token, or a recoded score.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// TextValue wraps a raw token. Empty tokens are missing.
func TextValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: Text, Str: s}
}

// NumberValue wraps a numeric score.
func NumberValue(f float64) Value { return Value{Kind: Number, Num: f} }

// IsMissing reports whether the cell carries no data.
func (v Value) IsMissing() bool { return v.Kind == Missing }

// Float returns the numeric score, if any.
func (v Value) Float() (float64, bool) {
	if v.Kind != Number {
		return 0, false
	}
	return v.Num, true
}

// String renders the cell the way it appeared in the source file.
func (v Value) String() string {
	switch v.Kind {
	case Text:
		return v.Str
	case Number:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return ""
	}
}
