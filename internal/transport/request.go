package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into target. Any non-2xx status
// becomes a CatalogError carrying the status code and a trimmed body.
// operation and query label the error.
func DecodeResponse(resp *http.Response, operation, query string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapCatalog(operation, query, errors.WrapIO("read", "response body", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return errors.NewCatalogError(operation, query, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapCatalog(operation, query, errors.WrapParse("json", "response", err))
	}

	return nil
}
