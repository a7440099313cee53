package id

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestIntern(t *testing.T) {
	tests := map[string]struct {
		names []string
	}{
		"SameStringInternsToSameID": {
			names: []string{"login_form", "login_form"},
		},
		"DifferentStringsInternToDifferentIDs": {
			names: []string{"login_form", "signup_form"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ids := make([]NodeId, len(test.names))
			for i, n := range test.names {
				ids[i] = Intern(n)
			}

			for i, n := range test.names {
				assert.Equals(t, ids[i].String(), n, "NodeId.String() for %q", n)
			}

			if test.names[0] == test.names[1] {
				assert.Equals(t, ids[0], ids[1], "interning the same string twice")
			} else {
				assert.Truef(t, ids[0] != ids[1], "interning %q and %q should differ", test.names[0], test.names[1])
			}
		})
	}
}

func TestAnonymous(t *testing.T) {
	a := Anonymous("rect")
	b := Anonymous("rect")

	assert.Truef(t, a != b, "two Anonymous(\"rect\") calls must mint distinct ids")
	assert.True(t, a.IsValid())
	assert.True(t, b.IsValid())
}

func TestResolveRoundTrip(t *testing.T) {
	nid := Intern("hero_cta")
	assert.Equals(t, Resolve(nid), "hero_cta")
}
