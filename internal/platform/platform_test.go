package platform

import "testing"

func TestIDDistinctAcrossGoroutines(t *testing.T) {
	self := ID()
	if self == 0 {
		t.Fatal("goroutine id: want non-zero")
	}
	other := make(chan int64)
	go func() { other <- ID() }()
	if got := <-other; got == self {
		t.Fatalf("goroutine ids collide: %d", got)
	}
	if ID() != self {
		t.Fatalf("id of the same goroutine changed")
	}
}

func TestRegisterIsPerGoroutine(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		defer Unregister()
		done <- Register()
	}()
	if err := <-done; err != nil {
		t.Fatalf("Register: %v", err)
	}
}
