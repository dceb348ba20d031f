// Package values decides, per literal, whether to inline it into the SQL
// text or register it as a parameter.
package values

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/jsonsql/internal/render"
)

// ISOLayout is the layout used for dates inlined as literals.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Options controls placeholder allocation.
type Options struct {
	Separated bool   // register strings and dates as parameters
	Named     bool   // prefix placeholder names with "p"
	Indexed   bool   // append a sequence number to placeholder names
	Prefix    string // text written before every placeholder
}

// Validate rejects option combinations that cannot produce distinct names.
func (o Options) Validate() error {
	if o.Named && !o.Indexed {
		return render.NewConfigError("indexedValues", "false is not allowed together with option `namedValues`: true")
	}
	return nil
}

// Store accumulates the parameters of one compilation.
// A Store is not safe for concurrent use; create one per compile call.
type Store struct {
	opts   Options
	nextID int
	names  []string
	values []any
}

// NewStore creates an empty store. Placeholder ids start at 1.
func NewStore(opts Options) *Store {
	return &Store{opts: opts, nextID: 1}
}

// Extract renders v as a SQL operand. Numbers, booleans and nil are
// inlined. Strings, dates, UUIDs and regular expressions become parameters
// when values are separated and quoted literals otherwise.
func (s *Store) Extract(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return formatFloat(t)
	case string:
		return s.push(t, t), nil
	case time.Time:
		return s.push(t, t.UTC().Format(ISOLayout)), nil
	case uuid.UUID:
		return s.push(t, t.String()), nil
	case *regexp.Regexp:
		return s.push(t.String(), t.String()), nil
	case int, int8, int16, int32, uint, uint8, uint16, uint32, float32:
		return fmt.Sprint(t), nil
	}
	return "", render.UnsupportedValueTypeError{Type: reflect.TypeOf(v).String()}
}

func (s *Store) push(native any, text string) string {
	if !s.opts.Separated {
		return "'" + text + "'"
	}
	name := s.placeholder()
	s.names = append(s.names, name)
	s.values = append(s.values, native)
	return s.opts.Prefix + name
}

func (s *Store) placeholder() string {
	name := ""
	if s.opts.Named {
		name = "p"
	}
	if s.opts.Indexed {
		name += strconv.Itoa(s.nextID)
		s.nextID++
	}
	return name
}

// Wrap applies the configured prefix to a placeholder name.
func (s *Store) Wrap(name string) string {
	return s.opts.Prefix + name
}

// Options returns the options the store was created with.
func (s *Store) Options() Options {
	return s.opts
}

// Names returns the placeholder names in allocation order.
func (s *Store) Names() []string {
	return s.names
}

// Values returns the parameter values in allocation order.
func (s *Store) Values() []any {
	return s.values
}

// Len returns the number of registered parameters.
func (s *Store) Len() int {
	return len(s.values)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", render.UnsupportedValueTypeError{Type: "non-finite float64"}
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}
