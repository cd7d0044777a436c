package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Device errors
	ErrKeyInvalid    = errors.New(f("key invalid"))
	ErrSpriteTooTall = errors.New(f("sprite too tall"))
)
