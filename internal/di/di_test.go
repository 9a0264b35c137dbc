package di

import "testing"

type counter struct{ n int }

func TestContainer_LazySingleton(t *testing.T) {
	c := NewContainer()
	tok := NewToken[*counter]("test.counter")

	builds := 0
	RegisterToken(c, tok, func(sr ServiceRegistry) *counter {
		builds++
		return &counter{n: builds}
	})

	if builds != 0 {
		t.Fatal("factory ran before first Get")
	}
	a := GetToken(c, tok)
	b := GetToken(c, tok)
	if a != b || builds != 1 {
		t.Errorf("expected a single instance, builds=%d", builds)
	}
}

func TestContainer_FactoryDependsOnOtherService(t *testing.T) {
	c := NewContainer()
	c.Register("config", 10)

	tok := NewToken[int]("test.doubled")
	RegisterToken(c, tok, func(sr ServiceRegistry) int {
		return sr.Get("config").(int) * 2
	})

	if got := GetToken(c, tok); got != 20 {
		t.Errorf("got %d, want 20", got)
	}
}

func TestContainer_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown service")
		}
	}()
	NewContainer().Get("missing")
}

func TestContainer_PanicsOnCycle(t *testing.T) {
	c := NewContainer()
	a := NewToken[int]("a")
	b := NewToken[int]("b")
	RegisterToken(c, a, func(sr ServiceRegistry) int { return GetToken(sr, b) })
	RegisterToken(c, b, func(sr ServiceRegistry) int { return GetToken(sr, a) })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dependency cycle")
		}
	}()
	GetToken(c, a)
}
