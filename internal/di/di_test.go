package di

import "testing"

type counter struct{ n int }

func TestRegisterToken_BuildsOnce(t *testing.T) {
	c := NewContainer()
	token := NewToken[*counter]("test.counter")

	builds := 0
	RegisterToken(c, token, func(ServiceRegistry) *counter {
		builds++
		return &counter{n: builds}
	})

	first := GetToken(c, token)
	second := GetToken(c, token)

	if first != second {
		t.Error("expected the same instance on every resolve")
	}
	if builds != 1 {
		t.Errorf("factory ran %d times, want 1", builds)
	}
}

func TestFactory_ResolvesDependencies(t *testing.T) {
	c := NewContainer()
	c.Register("base", 40)

	token := NewToken[int]("test.sum")
	RegisterToken(c, token, func(sr ServiceRegistry) int {
		return sr.Get("base").(int) + 2
	})

	if got := GetToken(c, token); got != 42 {
		t.Errorf("GetToken = %d, want 42", got)
	}
}

func TestGet_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown service")
		}
	}()
	NewContainer().Get("missing")
}

type optional interface{ Name() string }

func TestGetToken_NilInterfaceIsZero(t *testing.T) {
	c := NewContainer()
	token := NewToken[optional]("test.optional")
	RegisterToken(c, token, func(ServiceRegistry) optional { return nil })

	if got := GetToken(c, token); got != nil {
		t.Errorf("GetToken = %v, want nil", got)
	}
}
