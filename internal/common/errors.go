// Package common defines shared constants and sentinel errors used across
// client layers of idkeeper. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrSealedDataUnreadable means a sealed session could not be opened, either
// because the passphrase changed or the stored bytes are corrupt.
var ErrSealedDataUnreadable = errors.New("sealed data unreadable")
