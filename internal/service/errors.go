package service

import "errors"

// ErrNotFound covers both "record does not exist" and "record is not
// yours"; handlers surface it as a single generic 404 so callers cannot
// probe other users' ids.
var ErrNotFound = errors.New("not found")
