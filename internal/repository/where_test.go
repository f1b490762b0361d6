package repository

import (
	"reflect"
	"testing"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	if w.clause() != "" {
		t.Fatalf("expected empty clause")
	}

	w.add("j.is_active = true")
	w.add("j.location ILIKE ?", "%berlin%")
	w.add("(j.title ILIKE ? OR j.description ILIKE ?)", "%go%", "%go%")
	limit := w.arg(10)

	want := " WHERE j.is_active = true AND j.location ILIKE $1 AND (j.title ILIKE $2 OR j.description ILIKE $3)"
	if got := w.clause(); got != want {
		t.Fatalf("clause mismatch:\n got: %s\nwant: %s", got, want)
	}
	if limit != "$4" {
		t.Fatalf("expected $4, got %s", limit)
	}
	if !reflect.DeepEqual(w.args, []any{"%berlin%", "%go%", "%go%", 10}) {
		t.Fatalf("unexpected args: %v", w.args)
	}
}

func TestLikePattern(t *testing.T) {
	if got := likePattern("50%_off"); got != `%50\%\_off%` {
		t.Fatalf("unexpected pattern %q", got)
	}
}
