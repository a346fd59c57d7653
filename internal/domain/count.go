// Path: internal/domain/count.go
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// --- Tagged union for the "likes" and "comments" fields ---

// CountKind tells which representation a Count was stored with.
type CountKind uint8

const (
	CountAbsent CountKind = iota
	CountInt
	CountString
)

// Count is a counter field that may be stored as a number, as a
// numeric-looking string, or not at all. The stored representation is kept
// so responses relay it unchanged; Int gives the derived sort key.
type Count struct {
	kind CountKind
	n    int64
	s    string
}

// IntCount returns a Count stored as a number.
func IntCount(n int64) Count {
	return Count{kind: CountInt, n: n}
}

// StringCount returns a Count stored as a string.
func StringCount(s string) Count {
	return Count{kind: CountString, s: s}
}

// Kind returns the stored representation.
func (c Count) Kind() CountKind { return c.kind }

// IsZero reports whether the field is absent. Used by the omitzero JSON option.
func (c Count) IsZero() bool { return c.kind == CountAbsent }

// Int coerces the count to an integer. Absent values and strings that do not
// parse as a base-10 integer coerce to 0.
func (c Count) Int() int64 {
	switch c.kind {
	case CountInt:
		return c.n
	case CountString:
		n, err := strconv.ParseInt(c.s, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (c Count) String() string {
	switch c.kind {
	case CountInt:
		return strconv.FormatInt(c.n, 10)
	case CountString:
		return c.s
	default:
		return ""
	}
}

// MarshalJSON writes the count the way it was stored.
func (c Count) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case CountInt:
		return strconv.AppendInt(nil, c.n, 10), nil
	case CountString:
		return json.Marshal(c.s)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface for Count.
// It can handle JSON numbers, JSON strings, booleans and null.
func (c *Count) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*c = Count{}
		return nil
	case "true":
		*c = IntCount(1)
		return nil
	case "false":
		*c = IntCount(0)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = StringCount(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("count is not a number, string or null: %s", data)
	}
	if n, err := num.Int64(); err == nil {
		*c = IntCount(n)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return err
	}
	*c = IntCount(int64(f))
	return nil
}

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface for Count.
// Numeric, boolean and date values become CountInt with the same value the
// aggregation's $convert to long produces: fractions truncate toward zero,
// booleans are 0 or 1, dates are epoch milliseconds, and NaN, infinities or
// out-of-range numbers are 0. Strings become CountString and anything else
// is treated as absent.
func (c *Count) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*c = IntCount(int64(raw.Int32()))
	case bsontype.Int64:
		*c = IntCount(raw.Int64())
	case bsontype.Double:
		*c = IntCount(truncateFloat(raw.Double()))
	case bsontype.Decimal128:
		*c = IntCount(truncateDecimal(raw.Decimal128().String()))
	case bsontype.Boolean:
		if raw.Boolean() {
			*c = IntCount(1)
		} else {
			*c = IntCount(0)
		}
	case bsontype.DateTime:
		*c = IntCount(raw.DateTime())
	case bsontype.String:
		*c = StringCount(raw.StringValue())
	default:
		*c = Count{}
	}
	return nil
}

func truncateFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func truncateDecimal(s string) int64 {
	f, _, err := big.ParseFloat(s, 10, 128, big.ToZero)
	if err != nil || f.IsInf() {
		return 0
	}
	n, acc := f.Int64()
	if acc != big.Exact && (n == math.MaxInt64 || n == math.MinInt64) {
		return 0
	}
	return n
}

// --- Opaque document identifier ---

// DocumentID is the string form of a document's _id, whatever BSON type it
// was stored as.
type DocumentID string

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface for DocumentID.
func (id *DocumentID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = DocumentID(raw.ObjectID().Hex())
	case bsontype.String:
		*id = DocumentID(raw.StringValue())
	case bsontype.Int32:
		*id = DocumentID(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.Int64:
		*id = DocumentID(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		*id = DocumentID(raw.String())
	}
	return nil
}

// UnmarshalJSON accepts string and numeric identifiers.
func (id *DocumentID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = DocumentID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("document id is not a string or number: %s", data)
	}
	*id = DocumentID(num.String())
	return nil
}

// --- Tolerant text fields ---

// looseString decodes any scalar BSON value to its string form. Documents,
// arrays and other non-scalar values decode as "".
type looseString string

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface for looseString.
func (s *looseString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*s = looseString(scalarString(bson.RawValue{Type: t, Value: data}))
	return nil
}

func scalarString(raw bson.RawValue) string {
	switch raw.Type {
	case bsontype.String:
		return raw.StringValue()
	case bsontype.Int32:
		return strconv.FormatInt(int64(raw.Int32()), 10)
	case bsontype.Int64:
		return strconv.FormatInt(raw.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(raw.Double(), 'f', -1, 64)
	case bsontype.Decimal128:
		return raw.Decimal128().String()
	case bsontype.Boolean:
		return strconv.FormatBool(raw.Boolean())
	default:
		return ""
	}
}

// scalarStrings decodes an array of scalars, or a single scalar, into strings.
// Elements that are not scalars are dropped.
func scalarStrings(raw bson.RawValue) []string {
	if raw.Type != bsontype.Array {
		if s := scalarString(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	values, err := raw.Array().Values()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := scalarString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
