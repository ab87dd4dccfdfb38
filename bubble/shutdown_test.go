package bubble

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestShutdownHook_RegisterAndShutdown(t *testing.T) {
	hook := NewShutdownHook()

	called := false
	hook.Register("test-hook", func() error {
		called = true
		return nil
	})

	if hook.Count() != 1 {
		t.Errorf("Expected 1 hook, got %d", hook.Count())
	}

	err := hook.Shutdown()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if !called {
		t.Error("Hook was not called")
	}

	if hook.Count() != 0 {
		t.Errorf("Expected hooks to be cleared, got %d", hook.Count())
	}
}

func TestShutdownHook_RunsInOrder(t *testing.T) {
	hook := NewShutdownHook()

	var order []string
	for _, name := range []string{"overlay", "server", "registry"} {
		name := name
		hook.Register(name, func() error {
			order = append(order, name)
			return nil
		})
	}

	if err := hook.Shutdown(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fmt.Sprint(order) != "[overlay server registry]" {
		t.Errorf("Unexpected order: %v", order)
	}
}

func TestShutdownHook_ErrorHandling(t *testing.T) {
	hook := NewShutdownHook()

	ran := 0
	hook.Register("success", func() error { ran++; return nil })
	hook.Register("failure", func() error { ran++; return errors.New("cleanup failed") })
	hook.Register("success2", func() error { ran++; return nil })

	err := hook.Shutdown()

	if err == nil {
		t.Error("Expected error from failed hook")
	}
	if ran != 3 {
		t.Errorf("Expected all 3 hooks to run, got %d", ran)
	}

	// all hooks should still be cleared
	if hook.Count() != 0 {
		t.Errorf("Expected hooks to be cleared even after error, got %d", hook.Count())
	}
}

func TestShutdownHook_EmptyShutdown(t *testing.T) {
	hook := NewShutdownHook()

	err := hook.Shutdown()
	if err != nil {
		t.Errorf("Empty shutdown should not error: %v", err)
	}
}

func TestShutdownHook_ConcurrentRegister(t *testing.T) {
	hook := NewShutdownHook()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			hook.Register(fmt.Sprintf("hook-%d", n), func() error { return nil })
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if hook.Count() != 10 {
		t.Errorf("Expected 10 hooks, got %d", hook.Count())
	}
}

func TestShutdownHook_RegisterDuringShutdown(t *testing.T) {
	hook := NewShutdownHook()

	lateRan := false
	hook.Register("first", func() error {
		// would deadlock if Shutdown held the lock while running hooks
		hook.Register("late", func() error {
			lateRan = true
			return nil
		})
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- hook.Shutdown() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown deadlocked on a hook registering another hook")
	}

	if lateRan {
		t.Error("Hook registered during shutdown should not run in the same pass")
	}
	if hook.Count() != 1 {
		t.Errorf("Expected the late hook to stay registered, got %d", hook.Count())
	}

	if err := hook.Shutdown(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !lateRan {
		t.Error("Late hook should run on the next shutdown")
	}
}
