package errors

import "errors"

var ErrNotFound = errors.New("request not found")
