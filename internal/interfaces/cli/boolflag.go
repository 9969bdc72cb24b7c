package cli

import (
	"strconv"

	"github.com/lite-lake/infra-bamctl/internal/config"
)

// triStateBool is a pflag value with three states: flag absent (Present
// false), bare flag (true via NoOptDefVal), or an explicit boolean value.
// The reverse-record toggle needs all three: absent means "platform
// default" on add and "leave unchanged" on update.
type triStateBool struct {
	Present bool
	Value   bool
}

func (b *triStateBool) String() string {
	if !b.Present {
		return ""
	}
	return strconv.FormatBool(b.Value)
}

func (b *triStateBool) Set(s string) error {
	v, err := config.ParseBool(s)
	if err != nil {
		return err
	}
	b.Present = true
	b.Value = v
	return nil
}

func (b *triStateBool) Type() string {
	return "bool"
}

// Ptr returns nil when the flag was not given.
func (b *triStateBool) Ptr() *bool {
	if !b.Present {
		return nil
	}
	v := b.Value
	return &v
}

// OrDefault returns the flag value, or def when the flag was not given.
func (b *triStateBool) OrDefault(def bool) bool {
	if !b.Present {
		return def
	}
	return b.Value
}
