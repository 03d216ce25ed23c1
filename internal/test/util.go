package test

import "testing"

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("observed %q, expected %q", observed, expected)
	}
}
