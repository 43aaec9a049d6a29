package core

import "testing"

func TestEventSystemFireOrderAndHandled(t *testing.T) {
	es := NewEventSystem()
	var calls []string
	first := func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, "first")
		return false
	}
	second := func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, "second")
		return true
	}
	third := func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		calls = append(calls, "third")
		return true
	}

	if !es.Register(EVENT_CODE_RESIZED, "a", first) {
		t.Fatal("register a failed")
	}
	if !es.Register(EVENT_CODE_RESIZED, "b", second) {
		t.Fatal("register b failed")
	}
	es.Register(EVENT_CODE_RESIZED, "c", third)

	if es.Register(EVENT_CODE_RESIZED, "a", first) {
		t.Fatal("duplicate listener registered")
	}

	if !es.Fire(EVENT_CODE_RESIZED, nil, EventContext{}) {
		t.Fatal("event not handled")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestEventSystemUnregister(t *testing.T) {
	es := NewEventSystem()
	var n int
	es.Register(EVENT_CODE_APPLICATION_QUIT, "x", func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		n++
		return true
	})
	if !es.Unregister(EVENT_CODE_APPLICATION_QUIT, "x") {
		t.Fatal("unregister failed")
	}
	if es.Unregister(EVENT_CODE_APPLICATION_QUIT, "x") {
		t.Fatal("second unregister should fail")
	}
	if es.Fire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}) || n != 0 {
		t.Fatal("unregistered listener was called")
	}
}
