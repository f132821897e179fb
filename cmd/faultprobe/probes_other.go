//go:build !linux

package main

import (
	"context"
	"errors"
)

func probeProtNone(context.Context) error { return errors.ErrUnsupported }
