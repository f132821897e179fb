package main

import (
	"context"
	"sort"
)

type probe func(ctx context.Context) error

var probes = map[string]probe{
	"ok":       func(context.Context) error { return nil },
	"nil":      probeNil,
	"divide":   probeDivide,
	"protnone": probeProtNone,
}

func probeNames() []string {
	names := make([]string, 0, len(probes))
	for n := range probes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var sink int

//go:noinline
func load(p *int) int { return *p }

//go:noinline
func div(a, b int) int { return a / b }

func probeNil(context.Context) error {
	var p *int
	sink = load(p)
	return nil
}

func probeDivide(context.Context) error {
	zero := 0
	sink = div(1, zero)
	return nil
}
