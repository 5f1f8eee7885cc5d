package props

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for property access.
var (
	// ErrMissingProperty indicates a getter for a key the set does not hold.
	ErrMissingProperty = stderrors.New("props: missing property")

	// ErrBadProperty indicates a value that does not parse as the requested
	// type.
	ErrBadProperty = stderrors.New("props: malformed property value")
)

// Set is a mutable string-keyed property map. The zero value is not usable;
// construct with New, FromMap, or FromYAML.
type Set struct {
	m map[string]string
}

// New returns an empty property set.
func New() Set { return Set{m: make(map[string]string)} }

// FromMap copies m into a fresh set, rendering every value with %v.
func FromMap(m map[string]any) Set {
	s := New()
	for k, v := range m {
		s.m[k] = fmt.Sprintf("%v", v)
	}
	return s
}

// FromYAML parses a flat YAML mapping of scalars into a set.
func FromYAML(data []byte) (Set, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Set{}, errors.Wrap(err, "props: parsing YAML")
	}
	return FromMap(raw), nil
}

// Put stores value under key, overwriting any previous entry.
func (s Set) Put(key, value string) { s.m[key] = value }

// Has reports whether key is present.
func (s Set) Has(key string) bool {
	_, ok := s.m[key]
	return ok
}

// Len returns the number of entries.
func (s Set) Len() int { return len(s.m) }

// Keys returns the keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the raw value stored under key.
func (s Set) GetString(key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", errors.Wrap(ErrMissingProperty, key)
	}
	return v, nil
}

// GetFloat parses the value under key as a float64.
func (s Set) GetFloat(key string) (float64, error) {
	raw, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadProperty, "%s=%q as float", key, raw)
	}
	return v, nil
}

// GetUint parses the value under key as an unsigned integer.
func (s Set) GetUint(key string) (uint, error) {
	raw, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadProperty, "%s=%q as uint", key, raw)
	}
	return uint(v), nil
}

// GetBool parses the value under key as a boolean ("true"/"false"/"1"/"0").
func (s Set) GetBool(key string) (bool, error) {
	raw, err := s.GetString(key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(ErrBadProperty, "%s=%q as bool", key, raw)
	}
	return v, nil
}

// String renders the set as "[k1=v1,k2=v2]" with keys sorted.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(s.m[k])
	}
	sb.WriteByte(']')
	return sb.String()
}
