package tilekit

import (
	"fmt"
	"strconv"
)

const (
	// Property types
	// see doc.mapeditor.org/en/stable/reference/tmx-map-format/#properties
	PropString = "string"
	PropInt    = "int"
	PropBool   = "bool"
)

const (
	// Property keys understood on tiles
	KeyBlock   = "block"
	KeyVisible = "visible"
	KeyName    = "name"

	// DefaultTileName is given to tiles without a "name" property
	DefaultTileName = "NoName"

	// PlayerStart is the reserved tile name marking the spawn cell
	PlayerStart = "player_start"
)

// stringKeys are always kept as strings, whatever they look like
var stringKeys = map[string]bool{
	KeyName: true,
}

// Properties is a more straight forward []*Property (used by the raw XML)
// that handles types a bit more gracefully.
type Properties struct {
	ints    map[string]int
	strings map[string]string
	bools   map[string]bool
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{
		ints:    map[string]int{},
		strings: map[string]string{},
		bools:   map[string]bool{},
	}
}

// tileDefaults returns the properties every tile starts with.
func tileDefaults() *Properties {
	p := NewProperties()
	p.SetBool(KeyBlock, false)
	p.SetBool(KeyVisible, true)
	p.SetString(KeyName, DefaultTileName)
	return p
}

// Merge properties `o` into this properties, key by key.
// A nil `o` is a no-op.
func (p *Properties) Merge(o *Properties) *Properties {
	if o == nil {
		return p
	}
	for k, v := range o.ints {
		p.SetInt(k, v)
	}
	for k, v := range o.strings {
		p.SetString(k, v)
	}
	for k, v := range o.bools {
		p.SetBool(k, v)
	}
	return p
}

// Len returns the number of keys set
func (p *Properties) Len() int {
	return len(p.ints) + len(p.strings) + len(p.bools)
}

// toMap mutates our properties wrapper into a plain map for the JSON encoder
func (p *Properties) toMap() map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range p.ints {
		out[k] = v
	}
	for k, v := range p.bools {
		out[k] = v
	}
	for k, v := range p.strings {
		out[k] = v
	}
	return out
}

// newPropertiesFromList turns the XML []Property into our nicer properties
// wrapper struct.
func newPropertiesFromList(in []*Property) *Properties {
	ps := NewProperties()

	for _, i := range in {
		switch i.Type {
		case PropInt:
			v, _ := strconv.ParseInt(i.Value, 10, 64)
			ps.SetInt(i.Name, int(v))
		case PropBool:
			ps.SetBool(i.Name, i.Value == "true")
		case PropString, "":
			ps.SetString(i.Name, i.Value)
		default:
			// we don't use float, image etc
			ps.setGuess(i.Name, i.Value)
		}
	}

	return ps
}

// newPropertiesFromMap turns decoded JSON values into properties.
// Old Tiled exports write everything as strings ("true", "3") so we
// guess the type of string values.
func newPropertiesFromMap(in map[string]interface{}) (*Properties, error) {
	ps := NewProperties()

	for k, v := range in {
		switch t := v.(type) {
		case bool:
			ps.SetBool(k, t)
		case float64:
			ps.SetInt(k, int(t))
		case int:
			ps.SetInt(k, t)
		case string:
			ps.setGuess(k, t)
		default:
			return nil, fmt.Errorf("unsupported property %s type %T", k, v)
		}
	}

	return ps, nil
}

// setGuess sets a bool for "true"/"false", an int if the value parses as one
// or a string otherwise. Keys in stringKeys are always strings.
func (p *Properties) setGuess(key, value string) {
	if stringKeys[key] {
		p.SetString(key, value)
		return
	}

	if value == "true" {
		p.SetBool(key, true)
		return
	} else if value == "false" {
		p.SetBool(key, false)
		return
	}

	i, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		p.SetInt(key, int(i))
	} else {
		p.SetString(key, value)
	}
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.strings[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.strings[key] = value
	delete(p.ints, key)
	delete(p.bools, key)
}

func (p *Properties) Int(key string) (int, bool) {
	v, ok := p.ints[key]
	return v, ok
}

func (p *Properties) SetInt(key string, value int) {
	p.ints[key] = value
	delete(p.strings, key)
	delete(p.bools, key)
}

func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.bools[key]
	return v, ok
}

func (p *Properties) SetBool(key string, value bool) {
	p.bools[key] = value
	delete(p.strings, key)
	delete(p.ints, key)
}
