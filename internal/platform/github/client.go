// Package github provides authenticated GitHub API clients.
package github

import (
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v68/github"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewClient creates a GitHub API client authenticated as a GitHub App installation.
// The ghinstallation transport handles token renewal; otelhttp records a
// client span per API call using the global tracer provider.
func NewClient(appID, installationID int64, privateKeyPEM string) (*gogithub.Client, error) {
	transport, err := ghinstallation.New(http.DefaultTransport, appID, installationID, []byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("creating github installation transport: %w", err)
	}

	return gogithub.NewClient(&http.Client{Transport: otelhttp.NewTransport(transport)}), nil
}
