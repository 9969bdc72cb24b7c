package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func newReverseFlagSet(b *triStateBool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(b, "with-reverse", "")
	fs.Lookup("with-reverse").NoOptDefVal = "true"
	return fs
}

func TestTriStateBool(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		present bool
		value   bool
	}{
		{name: "absent", args: nil, present: false},
		{name: "bare flag", args: []string{"--with-reverse"}, present: true, value: true},
		{name: "explicit true", args: []string{"--with-reverse=true"}, present: true, value: true},
		{name: "explicit false", args: []string{"--with-reverse=false"}, present: true, value: false},
		{name: "human spelling", args: []string{"--with-reverse=no"}, present: true, value: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b triStateBool
			fs := newReverseFlagSet(&b)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse %v: %v", tt.args, err)
			}

			if b.Present != tt.present || b.Value != tt.value {
				t.Errorf("state = %+v, want present=%v value=%v", b, tt.present, tt.value)
			}

			if tt.present {
				if p := b.Ptr(); p == nil || *p != tt.value {
					t.Errorf("Ptr() = %v, want &%v", p, tt.value)
				}
				if got := b.OrDefault(!tt.value); got != tt.value {
					t.Errorf("OrDefault(%v) = %v, want the parsed value", !tt.value, got)
				}
			} else {
				if p := b.Ptr(); p != nil {
					t.Errorf("Ptr() = %v, want nil for an absent flag", p)
				}
				if !b.OrDefault(true) || b.OrDefault(false) {
					t.Error("OrDefault must return the default for an absent flag")
				}
			}
		})
	}
}

func TestTriStateBoolRejectsGarbage(t *testing.T) {
	var b triStateBool
	fs := newReverseFlagSet(&b)
	if err := fs.Parse([]string{"--with-reverse=maybe"}); err == nil {
		t.Error("non-boolean value must fail to parse")
	}
}
