package postgres

import (
	"strings"
	"testing"
)

func TestRiderMember_ProbesRiderKeyOnly(t *testing.T) {
	t.Parallel()

	member, err := riderMember("rider-a")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// jsonb @> checks pair equality for every key in the probe object, so
	// any extra key here would make the filter miss stored entries whose
	// value for that key differs. The probe must carry the rider id and
	// nothing else.
	if got := string(member); got != `[{"rider_id":"rider-a"}]` {
		t.Fatalf("expected probe [{\"rider_id\":\"rider-a\"}], got %s", got)
	}
}

func TestRiderMember_NeverCarriesLocation(t *testing.T) {
	t.Parallel()

	member, err := riderMember("rider-b")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// A request stored as {"rider_id":"rider-b","location":"Gate 4"} must
	// be matched; a probe with an empty location pair would reject it.
	if strings.Contains(string(member), "location") {
		t.Fatalf("probe must not constrain location, got %s", member)
	}
}
