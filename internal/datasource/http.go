package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/gorbach/typeahead/internal/utils"
)

const (
	// DefaultURL is the country list used when nothing else is configured.
	DefaultURL = "https://raw.githubusercontent.com/samayo/country-json/master/src/country-by-name.json"

	// DefaultField is the object field holding the option label.
	DefaultField = "country"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// HTTP fetches a JSON array of objects and maps each object's Field to an option.
type HTTP struct {
	URL        string
	Field      string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewHTTP creates an HTTP source. An empty field uses DefaultField and a
// non-positive timeout uses ten seconds.
func NewHTTP(url, field string, timeout time.Duration, logger *log.Logger) *HTTP {
	if field == "" {
		field = DefaultField
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTP{
		URL:   url,
		Field: field,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

// Fetch performs a single GET request and decodes the option list.
func (h *HTTP) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build options request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	started := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch options: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("failed to fetch options: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read options response: %w", err)
	}

	options, err := ParseOptions(data, h.Field)
	if err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Debug("fetched options", "url", h.URL, "count", len(options), "took", time.Since(started))
	}
	return options, nil
}

// ParseOptions maps a JSON array of objects to option labels read from field.
// field is a gjson path, so nested labels such as "name.common" work too.
// Labels are stripped of terminal escape sequences.
func ParseOptions(data []byte, field string) ([]string, error) {
	if field == "" {
		field = DefaultField
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		kind := root.Type.String()
		if root.IsObject() {
			kind = "object"
		}
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrMalformed, kind)
	}

	var (
		options  []string
		parseErr error
		index    int
	)
	options = make([]string, 0, len(root.Array()))
	root.ForEach(func(_, value gjson.Result) bool {
		label := value.Get(field)
		if !value.IsObject() || label.Type != gjson.String {
			parseErr = fmt.Errorf("%w: element %d has no string %q field", ErrMalformed, index, field)
			return false
		}
		options = append(options, utils.StripANSI(label.String()))
		index++
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return options, nil
}
