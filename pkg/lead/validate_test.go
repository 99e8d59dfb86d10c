package lead_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/locale"
)

func validFields() lead.Fields {
	return lead.Fields{
		Name:         "Ana Anić",
		Email:        "ana@example.com",
		Phone:        "0991234567",
		CarMakeModel: "VW Golf",
		Year:         "2015",
		Mileage:      "150000",
	}
}

func TestValidate_ValidLead(t *testing.T) {
	fields := validFields()

	got, errs := lead.Validate(fields)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if diff := cmp.Diff(fields, got); diff != "" {
		t.Fatalf("validated fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidEmailOnly(t *testing.T) {
	fields := validFields()
	fields.Email = "not-an-email"

	_, errs := lead.Validate(fields)
	if diff := cmp.Diff([]string{"email"}, errs.Fields()); diff != "" {
		t.Fatalf("offending fields mismatch (-want +got):\n%s", diff)
	}
	if errs["email"] != "Unesite ispravnu email adresu" {
		t.Fatalf("unexpected email message %q", errs["email"])
	}
}

func TestValidate_ReportsExactlyOffendingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*lead.Fields)
		want   []string
	}{
		{name: "short name", mutate: func(f *lead.Fields) { f.Name = "A" }, want: []string{"name"}},
		{name: "long name", mutate: func(f *lead.Fields) { f.Name = strings.Repeat("a", 101) }, want: []string{"name"}},
		{name: "empty email", mutate: func(f *lead.Fields) { f.Email = "" }, want: []string{"email"}},
		{name: "short phone", mutate: func(f *lead.Fields) { f.Phone = "12345" }, want: []string{"phone"}},
		{name: "short car", mutate: func(f *lead.Fields) { f.CarMakeModel = "V" }, want: []string{"car_make_model"}},
		{name: "short year", mutate: func(f *lead.Fields) { f.Year = "15" }, want: []string{"year"}},
		{name: "missing mileage", mutate: func(f *lead.Fields) { f.Mileage = "" }, want: []string{"mileage"}},
		{
			name: "optional fields are unconstrained",
			mutate: func(f *lead.Fields) {
				f.FuelType = "x"
				f.EngineSize = ""
				f.Notes = strings.Repeat("n", 5000)
			},
			want: []string{},
		},
		{
			name:   "all required missing",
			mutate: func(f *lead.Fields) { *f = lead.Fields{} },
			want:   []string{"car_make_model", "email", "mileage", "name", "phone", "year"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			tc.mutate(&fields)

			_, errs := lead.Validate(fields)
			if diff := cmp.Diff(tc.want, errs.Fields()); diff != "" {
				t.Fatalf("offending fields mismatch (-want +got):\n%s", diff)
			}
			for name, msg := range errs {
				if strings.TrimSpace(msg) == "" {
					t.Fatalf("empty message for %s", name)
				}
				if !lead.IsField(name) {
					t.Fatalf("error keyed by unknown field %q", name)
				}
			}
		})
	}
}

func TestValidate_PureAndIdempotent(t *testing.T) {
	fields := lead.Fields{Name: "A", Email: "nope", Notes: "keep"}
	snapshot := fields

	_, first := lead.Validate(fields)
	_, second := lead.Validate(fields)

	if diff := cmp.Diff(snapshot, fields); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation not idempotent (-first +second):\n%s", diff)
	}
}

func TestValidator_FirstRuleWinsAndLanguage(t *testing.T) {
	v := lead.NewValidator(lead.WithLanguage("en"))

	fields := validFields()
	fields.Name = ""
	fields.Year = ""

	_, errs := v.Validate(fields)
	want := lead.ValidationErrors{
		"name": "Name must be at least 2 characters",
		"year": "Enter the model year",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errs.Error(), "name: Name must be at least 2 characters") {
		t.Fatalf("unexpected error text %q", errs.Error())
	}
}

func TestValidator_GenericMessageFallback(t *testing.T) {
	catalog := locale.TranslatorFunc(func(_ string, key string, args ...any) (string, error) {
		if key == "validation_min" {
			data := args[0].(map[string]any)
			return data["Label"].(string) + " too short", nil
		}
		return "", errors.New("missing")
	})
	v := lead.NewValidator(lead.WithTranslator(catalog))

	fields := validFields()
	fields.Phone = "1"

	_, errs := v.Validate(fields)
	if errs["phone"] != "phone too short" {
		t.Fatalf("expected generic fallback, got %q", errs["phone"])
	}
}

func TestFieldsGetSet(t *testing.T) {
	var fields lead.Fields
	for _, name := range lead.FieldNames {
		if err := fields.Set(name, "v-"+name); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	for _, name := range lead.FieldNames {
		got, err := fields.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if got != "v-"+name {
			t.Fatalf("get %s: got %q", name, got)
		}
	}
	if len(fields.Values()) != len(lead.FieldNames) {
		t.Fatalf("values should include every field")
	}

	if err := fields.Set("vin", "x"); !errors.Is(err, lead.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := fields.Get("vin"); !errors.Is(err, lead.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if (lead.Fields{}).IsZero() != true || fields.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
