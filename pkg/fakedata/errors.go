package fakedata

import "errors"

// ErrUnknownToken is returned by Generate for names outside the generator vocabulary.
var ErrUnknownToken = errors.New("fakedata: unknown generator token")
