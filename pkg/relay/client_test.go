package relay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/relay"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func sampleLead() lead.Fields {
	fields := testsupport.SampleLead()
	fields.FuelType = "dizel"
	fields.Notes = "Servisna knjiga & ključevi"
	return fields
}

func TestSubmit_SendsFieldsAndMetadata(t *testing.T) {
	srv := testsupport.NewRelayServer(t, http.StatusOK, `{"success":true,"message":"ok"}`)

	client, err := relay.New(srv.URL, "key-123",
		relay.WithFromName("Otkup web"),
		relay.WithMetadata(relay.Hidden("botcheck", ""), relay.Hidden("source", "website"), relay.Hidden("email", "spoof")),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Submit(context.Background(), relay.Submission{Fields: sampleLead()}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := srv.Last()
	want := map[string]string{
		"access_key":     "key-123",
		"subject":        "Otkup vozila: VW Golf (2015)",
		"from_name":      "Otkup web",
		"botcheck":       "",
		"source":         "website",
		"name":           "Ana Anić",
		"email":          "ana@example.com",
		"phone":          "0991234567",
		"car_make_model": "VW Golf",
		"year":           "2015",
		"mileage":        "150000",
		"fuel_type":      "dizel",
		"notes":          "Servisna knjiga & ključevi",
	}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if len(got.Files) != 0 {
		t.Fatalf("expected no attachments, got %v", got.Files)
	}
}

func TestSubmit_AttachmentsUseIndexedNames(t *testing.T) {
	srv := testsupport.NewRelayServer(t, http.StatusOK, `{"success":true}`)

	client, err := relay.New(srv.URL, "key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	sub := relay.Submission{
		Fields: sampleLead(),
		Attachments: []attachment.File{
			attachment.FromBytes("front.jpg", []byte("front")),
			attachment.FromBytes("back.jpg", []byte("back")),
		},
	}
	if err := client.Submit(context.Background(), sub); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := srv.Last()
	if diff := cmp.Diff(map[string]string{"attachment_0": "front", "attachment_1": "back"}, got.Files); diff != "" {
		t.Fatalf("attachments mismatch (-want +got):\n%s", diff)
	}
	if got.Filenames["attachment_1"] != "back.jpg" {
		t.Fatalf("expected filename back.jpg, got %q", got.Filenames["attachment_1"])
	}
}

func TestSubmit_FailureShapes(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "success false", status: http.StatusOK, body: `{"success":false,"message":"Invalid access key"}`, wantStatus: http.StatusOK},
		{name: "success missing", status: http.StatusOK, body: `{"message":"ok"}`, wantStatus: http.StatusOK},
		{name: "not json", status: http.StatusOK, body: `<html>ok</html>`, wantStatus: http.StatusOK},
		{name: "server error", status: http.StatusInternalServerError, body: `{"success":true}`, wantStatus: http.StatusInternalServerError},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, wantStatus: http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := testsupport.NewRelayServer(t, tc.status, tc.body)

			client, err := relay.New(srv.URL, "key")
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			err = client.Submit(context.Background(), relay.Submission{Fields: sampleLead()})
			if !errors.Is(err, relay.ErrSubmissionFailed) {
				t.Fatalf("expected ErrSubmissionFailed, got %v", err)
			}
			var providerErr *relay.ProviderError
			if !errors.As(err, &providerErr) || providerErr.StatusCode != tc.wantStatus {
				t.Fatalf("expected ProviderError with status %d, got %v", tc.wantStatus, err)
			}
		})
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := relay.New(url, "key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.Submit(context.Background(), relay.Submission{Fields: sampleLead()})
	if !errors.Is(err, relay.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	var providerErr *relay.ProviderError
	if errors.As(err, &providerErr) {
		t.Fatalf("transport failure should not be a ProviderError")
	}
}

func TestValues_OmitsEmptyOptionalFields(t *testing.T) {
	client, err := relay.New("", "key", relay.WithSubject("Lead {{ name }}"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Endpoint() != relay.DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %s", client.Endpoint())
	}

	fields := sampleLead()
	fields.FuelType = ""
	fields.Name = "Ana & <i>Marko</i>"

	values, err := client.Values(fields)
	if err != nil {
		t.Fatalf("values: %v", err)
	}

	var names []string
	for _, v := range values {
		names = append(names, v.Name)
	}
	want := []string{"access_key", "subject", "name", "email", "phone", "car_make_model", "year", "mileage", "notes"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if values[1].Value != "Lead Ana & Marko" {
		t.Fatalf("unexpected subject %q", values[1].Value)
	}
}

func TestNew_RequiresAccessKey(t *testing.T) {
	if _, err := relay.New("https://example.com", "  "); err == nil {
		t.Fatalf("expected missing access key error")
	}
	if _, err := relay.New("https://example.com", "key", relay.WithSubject("{% if name %}unterminated")); err == nil {
		t.Fatalf("expected template parse error")
	}
}

func TestSubmit_SendsValidatedValuesUnchanged(t *testing.T) {
	srv := testsupport.NewRelayServer(t, http.StatusOK, `{"success":true}`)

	client, err := relay.New(srv.URL, "key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	fields := sampleLead()
	fields.CarMakeModel = "Golf GTI 2.0 <180 KS>"
	if err := client.Submit(context.Background(), relay.Submission{Fields: fields}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got := srv.Last().Values["car_make_model"]; got != fields.CarMakeModel {
		t.Fatalf("expected %q to be sent as given, got %q", fields.CarMakeModel, got)
	}
}
