// Command atlasctl is a terminal client for the AtlasIQ analytics API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage turns session failures into a next step for the user
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Not logged in. Run `atlasctl login` first."
	case api.IsUnauthorized(err):
		return "Session expired. Run `atlasctl login` again."
	}
	return "Error: " + err.Error()
}
