package transfer

import (
	"fmt"
	"strings"
)

// Method selects one of the colour transfer algorithms.
type Method int

const (
	// ChannelWise matches the mean and standard deviation of every channel
	// independently.
	ChannelWise Method = iota
	// LinearHistogramMatch whitens the content with its covariance and colours
	// it with the reference covariance.
	LinearHistogramMatch
	// PrincipalComponentMatch maps the content principal axes onto the
	// reference principal axes, scaling by the eigenvalue ratios.
	PrincipalComponentMatch
	// Reinhard matches statistics in a log LMS derived colour space.
	Reinhard
)

const DefaultMethod = LinearHistogramMatch

// Methods lists every method in declaration order.
var Methods = []Method{ChannelWise, LinearHistogramMatch, PrincipalComponentMatch, Reinhard}

var methodNames = [...]struct{ long, short string }{
	ChannelWise:             {"channel-wise", "cwct"},
	LinearHistogramMatch:    {"linear-histogram-match", "lhm"},
	PrincipalComponentMatch: {"principal-component-match", "pccm"},
	Reinhard:                {"reinhard", "reinhard"},
}

func (m Method) valid() bool {
	return m >= 0 && int(m) < len(methodNames)
}

func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m].long
}

// ShortName returns the abbreviated selector, e.g. "lhm".
func (m Method) ShortName() string {
	if !m.valid() {
		return m.String()
	}
	return methodNames[m].short
}

// ParseMethod accepts both the long and the abbreviated selector names,
// case-insensitively.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Methods {
		if name == methodNames[m].long || name == methodNames[m].short {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Names returns every accepted selector spelling.
func Names() []string {
	names := make([]string, 0, 2*len(Methods))
	for _, m := range Methods {
		names = append(names, methodNames[m].long)
		if methodNames[m].short != methodNames[m].long {
			names = append(names, methodNames[m].short)
		}
	}
	return names
}
