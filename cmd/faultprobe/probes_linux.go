//go:build linux

package main

import (
	"context"

	"golang.org/x/sys/unix"
)

// probeProtNone reads from an inaccessible page, which only a goroutine
// with fault translation installed survives.
func probeProtNone(context.Context) error {
	page, err := unix.Mmap(-1, 0, unix.Getpagesize(), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return err
	}
	defer unix.Munmap(page)
	sink = int(page[0])
	return nil
}
