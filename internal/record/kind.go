package record

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind is one of the three record streams of a run.
type Kind int

const (
	KindStatus Kind = iota
	KindHeader
	KindEvent
)

// Kinds lists every kind in attribute-resolution priority order.
var Kinds = []Kind{KindStatus, KindHeader, KindEvent}

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "Status"
	case KindHeader:
		return "Header"
	case KindEvent:
		return "Event"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Prefix is the lower-case qualifier used in expressions, e.g. header.
func (k Kind) Prefix() string {
	return strings.ToLower(k.String())
}

// ParseKind accepts the kind name in any case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, errors.Newf("unknown record kind %q (want status, header or event)", s)
}
