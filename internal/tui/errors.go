package tui

import "errors"

var errNoFetcher = errors.New("no user source configured")
