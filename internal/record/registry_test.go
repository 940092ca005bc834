package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldsLongestFirst(t *testing.T) {
	for _, k := range Kinds {
		fields := Fields(k)
		require.NotEmpty(t, fields, k.String())
		for i := 1; i < len(fields); i++ {
			prev, cur := fields[i-1].Name, fields[i].Name
			if len(prev) == len(cur) {
				require.Less(t, prev, cur)
			} else {
				require.Greater(t, len(prev), len(cur), "%s before %s", prev, cur)
			}
		}
	}
}

func TestRegistrySortsTies(t *testing.T) {
	get := func(*Status) any { return 0 }
	r := MustRegistry(
		StatusField("bb", get),
		StatusField("trigger_threshold", get),
		StatusField("aa", get),
		StatusField("trigger_thresholds", get),
	)
	require.Equal(t, []string{"trigger_thresholds", "trigger_threshold", "aa", "bb"}, r.Names(KindStatus))
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	get := func(*Header) any { return 0 }
	_, err := NewRegistry(HeaderField("x", get), HeaderField("x", get))
	require.ErrorContains(t, err, `duplicate Header field "x"`)

	// The same name in two kinds is allowed.
	_, err = NewRegistry(HeaderField("x", get), EventField("x", func(*Event) any { return 0 }))
	require.NoError(t, err)
}

func TestResolvePriority(t *testing.T) {
	f, kinds, ok := Default().Resolve("readout_time")
	require.True(t, ok)
	require.Equal(t, KindStatus, f.Kind)
	require.Equal(t, []Kind{KindStatus, KindHeader}, kinds)

	f, kinds, ok = Default().Resolve("event_number")
	require.True(t, ok)
	require.Equal(t, KindHeader, f.Kind)
	require.Equal(t, []Kind{KindHeader, KindEvent}, kinds)

	_, _, ok = Default().Resolve("no_such_field")
	require.False(t, ok)
}

func TestFieldGet(t *testing.T) {
	h := &Header{EventNumber: 42, Calpulser: true}
	f, ok := Lookup(KindHeader, "event_number")
	require.True(t, ok)
	require.Equal(t, uint64(42), f.Get(h))

	f, ok = Lookup(KindHeader, "calpulser")
	require.True(t, ok)
	require.Equal(t, true, f.Get(h))

	_, ok = Lookup(KindEvent, "calpulser")
	require.False(t, ok)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"status", KindStatus},
		{"Header", KindHeader},
		{"EVENT", KindEvent},
	}
	for _, tt := range tests {
		k, err := ParseKind(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, k)
		require.Equal(t, tt.want, mustParse(t, k.Prefix()))
	}
	_, err := ParseKind("footer")
	require.Error(t, err)
}

func mustParse(t *testing.T, s string) Kind {
	t.Helper()
	k, err := ParseKind(s)
	require.NoError(t, err)
	return k
}
