package relay_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/relay"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := relay.MergeHiddenFields(base,
		relay.Hidden("from_name", "Otkup"),
		relay.Hidden(" campaign ", "spring"),
		relay.Hidden("version", 4),
		relay.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":  "keep",
		"from_name": "Otkup",
		"campaign":  "spring",
		"version":   "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := relay.SortedHiddenFields(merged)
	wantSorted := []relay.HiddenField{
		{Name: "campaign", Value: "spring"},
		{Name: "existing", Value: "keep"},
		{Name: "from_name", Value: "Otkup"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if relay.MergeHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty merge")
	}
	if relay.SortedHiddenFields(map[string]string{" ": "x"}) != nil {
		t.Fatalf("expected nil when every name is blank")
	}
}
