package commands

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrEmptyID  = errors.New("remote store returned an empty id")
)

// Wire error codes. The -326xx range follows JSON-RPC 2.0, CodeNotFound is ours.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeNotFound       = -32004
)

// RemoteError is an error reported by the remote store for a given operation.
type RemoteError struct {
	Operation string
	Code      int
	Message   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed (code %d): %s", e.Operation, e.Code, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match a remote "not found" answer.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}
