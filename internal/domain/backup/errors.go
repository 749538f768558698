package backup

import "errors"

// ErrInvalidBackup rejects a document that cannot be restored.
var ErrInvalidBackup = errors.New("invalid backup document")
