package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/lead"
)

// DefaultEndpoint is the hosted form relay the site posts to.
const DefaultEndpoint = "https://api.web3forms.com/submit"

const maxResponseBytes = 1 << 20

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Reserved multipart field names.
const (
	FieldAccessKey = "access_key"
	FieldSubject   = "subject"
	FieldFromName  = "from_name"
)

// Submission is one validated lead plus the files to upload with it. An
// empty Attachments slice sends no binaries.
type Submission struct {
	Fields      lead.Fields
	Attachments []attachment.File
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport. The default is http.DefaultClient,
// so no timeout is imposed beyond the transport's own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithSubject sets the subject template. Lead field names are available as
// template variables.
func WithSubject(tmpl string) Option {
	return func(c *Client) {
		c.subject = tmpl
	}
}

// WithFromName sets the sender name shown in the relayed email.
func WithFromName(name string) Option {
	return func(c *Client) {
		c.fromName = strings.TrimSpace(name)
	}
}

// WithMetadata adds fixed hidden fields to every submission.
func WithMetadata(fields ...HiddenField) Option {
	return func(c *Client) {
		c.metadata = MergeHiddenFields(c.metadata, fields...)
	}
}

// Client posts leads to the hosted form relay.
type Client struct {
	endpoint  string
	accessKey string
	http      *http.Client
	subject   string
	fromName  string
	metadata  map[string]string

	subjectTmpl *subjectTemplate
}

// New builds a Client for endpoint authenticated by accessKey.
func New(endpoint, accessKey string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(accessKey) == "" {
		return nil, errors.New("relay: access key is required")
	}

	c := &Client{
		endpoint:  endpoint,
		accessKey: strings.TrimSpace(accessKey),
		http:      http.DefaultClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	tmpl, err := parseSubject(c.subject)
	if err != nil {
		return nil, err
	}
	c.subjectTmpl = tmpl
	return c, nil
}

// Endpoint reports the relay URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends one POST and waits for the single response. Success requires
// a 2xx status and a JSON body with "success": true; anything else is an
// error matching ErrSubmissionFailed. There is no retry.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	body, contentType, err := c.encode(sub)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	return interpret(resp)
}

type relayResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func interpret(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrSubmissionFailed, err)
	}

	var payload relayResponse
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(payload.Message)}
	}
	if decodeErr != nil {
		return &ProviderError{StatusCode: resp.StatusCode, Message: "undecodable response body"}
	}
	if payload.Success == nil || !*payload.Success {
		return &ProviderError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(payload.Message)}
	}
	return nil
}

// Values returns the text parts of a submission in send order: access key,
// subject, sender, metadata, then lead fields. Lead values are sent as
// given apart from trimming; callers sanitize before validating (see
// lead.Sanitize). Optional vehicle details are only present when filled in.
func (c *Client) Values(fields lead.Fields) ([]HiddenField, error) {
	clean := make(map[string]string, len(lead.FieldNames))
	for name, value := range fields.Values() {
		clean[name] = strings.TrimSpace(value)
	}

	subject, err := c.subjectTmpl.render(clean)
	if err != nil {
		return nil, err
	}

	out := []HiddenField{
		{Name: FieldAccessKey, Value: c.accessKey},
		{Name: FieldSubject, Value: subject},
	}
	if c.fromName != "" {
		out = append(out, HiddenField{Name: FieldFromName, Value: c.fromName})
	}
	for _, meta := range SortedHiddenFields(c.metadata) {
		if isReserved(meta.Name) {
			continue
		}
		out = append(out, meta)
	}
	for _, name := range lead.FieldNames {
		value := clean[name]
		if lead.IsOptional(name) && value == "" {
			continue
		}
		out = append(out, HiddenField{Name: name, Value: value})
	}
	return out, nil
}

func (c *Client) encode(sub Submission) (io.Reader, string, error) {
	values, err := c.Values(sub.Fields)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, value := range values {
		if err := w.WriteField(value.Name, value.Value); err != nil {
			return nil, "", fmt.Errorf("relay: write field %s: %w", value.Name, err)
		}
	}
	for i, file := range sub.Attachments {
		if err := writeAttachment(w, fmt.Sprintf("attachment_%d", i), file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("relay: close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeAttachment(w *multipart.Writer, field string, file attachment.File) error {
	if file.Open == nil {
		return fmt.Errorf("relay: attachment %s has no content", file.Name)
	}
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("relay: open attachment %s: %w", file.Name, err)
	}
	defer src.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("relay: create part %s: %w", field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("relay: copy attachment %s: %w", file.Name, err)
	}
	return nil
}

func isReserved(name string) bool {
	switch name {
	case FieldAccessKey, FieldSubject, FieldFromName:
		return true
	}
	return lead.IsField(name)
}
