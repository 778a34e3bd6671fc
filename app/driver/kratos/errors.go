package kratos

import (
	"encoding/json"
	"errors"
	"net/http"

	kratosclient "github.com/ory/kratos-client-go"

	"auth-api/app/domain"
)

// classify maps a Kratos client error onto the domain error contract.
// Responses in the 4xx range are business rejections carrying the provider's
// own message; anything without an HTTP response is a transport failure.
func classify(err error, resp *http.Response) error {
	if err == nil {
		return nil
	}
	if resp == nil {
		return errors.Join(domain.ErrProviderUnavailable, err)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return domain.RejectedError(providerMessage(err))
	}
	return errors.Join(domain.ErrProviderUnavailable, err)
}

// classifyToken is classify for token-resolution calls, where a 401 means
// the token is unknown rather than a flow-level rejection.
func classifyToken(err error, resp *http.Response) error {
	if err == nil {
		return nil
	}
	if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return domain.ErrInvalidToken
	}
	return classify(err, resp)
}

// providerMessage digs the human-readable message out of a Kratos error
// payload. Flow rejections carry UI messages, generic errors carry an error
// object; either way the caller gets the provider's wording.
func providerMessage(err error) string {
	var apiErr *kratosclient.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	body := apiErr.Body()
	if len(body) == 0 {
		return apiErr.Error()
	}

	// Self-service flow rejection: {"ui":{"messages":[{"text":...}]},...}
	var flowBody struct {
		UI struct {
			Messages []struct {
				Text string `json:"text"`
				Type string `json:"type"`
			} `json:"messages"`
			Nodes []struct {
				Messages []struct {
					Text string `json:"text"`
					Type string `json:"type"`
				} `json:"messages"`
			} `json:"nodes"`
		} `json:"ui"`
	}
	if json.Unmarshal(body, &flowBody) == nil {
		for _, m := range flowBody.UI.Messages {
			if m.Type == "error" && m.Text != "" {
				return m.Text
			}
		}
		for _, n := range flowBody.UI.Nodes {
			for _, m := range n.Messages {
				if m.Type == "error" && m.Text != "" {
					return m.Text
				}
			}
		}
	}

	// Generic error: {"error":{"message":...,"reason":...}}
	var errBody struct {
		Error struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &errBody) == nil {
		if errBody.Error.Reason != "" {
			return errBody.Error.Reason
		}
		if errBody.Error.Message != "" {
			return errBody.Error.Message
		}
	}

	return apiErr.Error()
}
