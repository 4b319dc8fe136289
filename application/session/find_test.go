package session

import (
	"context"
	"errors"
	"testing"

	"ocular-go/infrastructure/transport"
)

func TestFindElement_Success(t *testing.T) {
	tr := newMockTransport()
	tr.findRefs[".button"] = "element-42"
	ctrl := newController(tr, nil, nil)

	ref, err := ctrl.FindElement(context.Background(), ".button")
	if err != nil {
		t.Fatalf("FindElement() error = %v", err)
	}
	if ref != "element-42" {
		t.Errorf("ref = %q, want element-42", ref)
	}
}

func TestFindElement_NotFoundCarriesSelector(t *testing.T) {
	tr := newMockTransport()
	tr.findErr[".missing"] = &transport.CmdError{
		Status:  transport.StatusNoSuchElement,
		Message: "no such element",
	}
	ctrl := newController(tr, nil, nil)

	_, err := ctrl.FindElement(context.Background(), ".missing")
	if err == nil {
		t.Fatal("FindElement() expected error")
	}

	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %T, want *LookupError", err)
	}
	if lerr.Selector != ".missing" {
		t.Errorf("Selector = %q, want .missing", lerr.Selector)
	}
}

func TestFindElement_OtherStatusPassesThrough(t *testing.T) {
	tr := newMockTransport()
	tr.findErr["#frame"] = &transport.CmdError{Status: 13, Message: "unknown error"}
	ctrl := newController(tr, nil, nil)

	_, err := ctrl.FindElement(context.Background(), "#frame")
	if err == nil {
		t.Fatal("FindElement() expected error")
	}

	var lerr *LookupError
	if errors.As(err, &lerr) {
		t.Error("non-sentinel status must not gain a selector field")
	}
	var cerr *transport.CmdError
	if !errors.As(err, &cerr) || cerr.Status != 13 {
		t.Errorf("underlying error changed: %v", err)
	}
}

func TestFindByXPath(t *testing.T) {
	tr := newMockTransport()
	tr.findErr["//div[@id='x']"] = &transport.CmdError{Status: transport.StatusNoSuchElement}
	ctrl := newController(tr, nil, nil)

	_, err := ctrl.FindByXPath(context.Background(), "//div[@id='x']")

	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Selector != "//div[@id='x']" {
		t.Errorf("error = %v, want LookupError with the xpath", err)
	}
}

func TestFindElements_OrderPreserved(t *testing.T) {
	tr := newMockTransport()
	tr.findRefs["a"] = "element-a"
	tr.findRefs["b"] = "element-b"
	tr.findRefs["c"] = "element-c"
	ctrl := newController(tr, nil, nil)

	refs, err := ctrl.FindElements(context.Background(), "a", "b", "c")
	if err != nil {
		t.Fatalf("FindElements() error = %v", err)
	}
	want := []transport.ElementRef{"element-a", "element-b", "element-c"}
	for i, ref := range want {
		if refs[i] != ref {
			t.Errorf("refs[%d] = %q, want %q", i, refs[i], ref)
		}
	}
}

func TestFindElements_FailsOnAnyMiss(t *testing.T) {
	tr := newMockTransport()
	tr.findErr["b"] = &transport.CmdError{Status: transport.StatusNoSuchElement}
	ctrl := newController(tr, nil, nil)

	_, err := ctrl.FindElements(context.Background(), "a", "b", "c")
	if err == nil {
		t.Fatal("FindElements() expected error")
	}
	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Selector != "b" {
		t.Errorf("error = %v, want LookupError for b", err)
	}
}
