// Package test holds assertion helpers shared by package tests.
package test

import "testing"

// AssertWantErr fails t unless err's message is exactly wantErr. An empty
// wantErr expects no error. It reports whether an error was seen or
// expected, so callers can stop checking results.
func AssertWantErr(t *testing.T, err error, wantErr, caller string) bool {
	t.Helper()
	switch {
	case err == nil && wantErr == "":
		return false
	case err == nil:
		t.Errorf("%s: expected error %q, got none", caller, wantErr)
	case err.Error() != wantErr:
		t.Errorf("%s: error = %v, wantErr %q", caller, err, wantErr)
	}
	return true
}
