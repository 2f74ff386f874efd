package api

import "errors"

var (
	ErrNotFound         = errors.New("no position record for this fid")
	ErrUnexpectedStatus = errors.New("unexpected status from lookup API")
	ErrNoPosition       = errors.New("lookup API returned an empty position")
)
