package services

import (
	"fmt"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
)

// invalid reports input rejected before any request is sent.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", client.ErrValidation, msg)
}

func notSignedIn() error {
	return fmt.Errorf("%w: not signed in", client.ErrUnauthenticated)
}
