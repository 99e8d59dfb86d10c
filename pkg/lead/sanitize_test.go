package lead_test

import (
	"testing"

	"github.com/goliatone/go-leadform/pkg/lead"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  VW Golf  ", want: "VW Golf"},
		{name: "markup only", in: "<ab>", want: ""},
		{name: "inline tags", in: "motor <b>ok</b>", want: "motor ok"},
		{name: "ampersand kept", in: "knjiga & ključevi", want: "knjiga & ključevi"},
		{name: "encoded tag", in: "a &lt;b&gt;c&lt;/b&gt;", want: "a c"},
		{name: "less than", in: "mileage < 100000", want: "mileage < 100000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := lead.SanitizeText(tc.in)
			if got != tc.want {
				t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := lead.SanitizeText(got); again != got {
				t.Fatalf("not stable: %q became %q", got, again)
			}
		})
	}
}

func TestSanitize_ThenValidate(t *testing.T) {
	fields := validFields()
	fields.Name = "<ab>"
	fields.Notes = "motor <b>ok"

	clean := lead.Sanitize(fields)
	if clean.Name != "" || clean.Notes != "motor ok" {
		t.Fatalf("unexpected sanitized fields: %+v", clean)
	}
	if _, errs := lead.Validate(clean); !errs.Has(lead.FieldName) {
		t.Fatalf("expected name error after sanitizing, got %v", errs)
	}
	if fields.Name != "<ab>" {
		t.Fatalf("Sanitize must not modify its argument")
	}
}
