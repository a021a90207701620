// Package setflag implements a flag.Value that accepts a comma-separated
// subset of a fixed list of options.
package setflag

import (
	"fmt"
	"strings"
)

// New returns a SetFlag accepting the given options. If no value is ever
// set, every option counts as selected.
func New(options ...string) *SetFlag {
	return &SetFlag{
		options: options,
		values:  make(map[string]struct{}, len(options)),
	}
}

type SetFlag struct {
	options []string
	values  map[string]struct{}
}

// List returns the selected values in option order.
func (sf *SetFlag) List() []string {
	if len(sf.values) == 0 {
		return append([]string(nil), sf.options...)
	}
	var values []string
	for _, opt := range sf.options {
		if _, ok := sf.values[opt]; ok {
			values = append(values, opt)
		}
	}
	return values
}

func (sf *SetFlag) String() string {
	return strings.Join(sf.List(), ",")
}

func (sf *SetFlag) Set(value string) error {
	for _, value := range strings.Split(value, ",") {
		value = strings.TrimSpace(value)
		if !sf.isOption(value) {
			return fmt.Errorf("unsupported value '%s'; options are %s", value, strings.Join(sf.options, ", "))
		}
		sf.values[value] = struct{}{}
	}
	return nil
}

func (sf *SetFlag) isOption(value string) bool {
	for _, opt := range sf.options {
		if opt == value {
			return true
		}
	}
	return false
}
