package transfer

import (
	"errors"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{in: "channel-wise", want: ChannelWise},
		{in: "cwct", want: ChannelWise},
		{in: "linear-histogram-match", want: LinearHistogramMatch},
		{in: "LHM", want: LinearHistogramMatch},
		{in: "principal-component-match", want: PrincipalComponentMatch},
		{in: " pccm ", want: PrincipalComponentMatch},
		{in: "reinhard", want: Reinhard},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if err != nil {
			t.Errorf("ParseMethod(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}

	if _, err := ParseMethod("histogram"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestMethod_Names(t *testing.T) {
	for _, m := range Methods {
		for _, name := range []string{m.String(), m.ShortName()} {
			got, err := ParseMethod(name)
			if err != nil || got != m {
				t.Errorf("expected %q to parse as %s, got %s (%v)", name, m, got, err)
			}
		}
	}

	if n := len(Names()); n != 7 {
		t.Errorf("expected 7 selector names, got %d: %v", n, Names())
	}
	if DefaultMethod.ShortName() != "lhm" {
		t.Errorf("expected default method lhm, got %s", DefaultMethod.ShortName())
	}
	if s := Method(9).String(); s != "Method(9)" {
		t.Errorf("expected Method(9), got %s", s)
	}
}
