package logfields

import (
	"errors"
	"testing"
)

func TestErrorAttrNil(t *testing.T) {
	a := Error(nil)
	if a.Value.String() != "" {
		t.Fatalf("expected empty value for nil error, got %q", a.Value.String())
	}
}

func TestErrorAttr(t *testing.T) {
	a := Error(errors.New("boom"))
	if a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected attr: %s=%s", a.Key, a.Value.String())
	}
}

func TestRouteAttr(t *testing.T) {
	a := Route("/about")
	if a.Key != KeyRoute || a.Value.String() != "/about" {
		t.Fatalf("unexpected attr: %s=%s", a.Key, a.Value.String())
	}
}
