package result_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/funvibe/modgud/pkg/result"
)

var errBoom = errors.New("boom")

func TestOkAndFail(t *testing.T) {
	ok := result.Ok(42)
	if !ok.IsOk() || ok.IsFail() || ok.Err() != nil {
		t.Error("Ok must report success")
	}
	if v, err := ok.Get(); err != nil || v != 42 {
		t.Errorf("expected (42, nil), got (%v, %v)", v, err)
	}

	fail := result.Fail[int](errBoom)
	if fail.IsOk() || !fail.IsFail() {
		t.Error("Fail must report failure")
	}
	if fail.Err() != errBoom {
		t.Errorf("expected the original error, got %v", fail.Err())
	}
}

func TestUnwrap(t *testing.T) {
	if result.Ok("x").Unwrap() != "x" {
		t.Error("Unwrap must yield the value")
	}
	if result.Fail[int](errBoom).UnwrapOr(7) != 7 {
		t.Error("UnwrapOr must fill failure")
	}
	defer func() {
		if recover() == nil {
			t.Error("Unwrap on Fail must panic")
		}
	}()
	result.Fail[int](errBoom).Unwrap()
}

func TestMap(t *testing.T) {
	out := result.Map(result.Ok(7), strconv.Itoa)
	if out.UnwrapOr("") != "7" {
		t.Errorf("expected 7, got %q", out.UnwrapOr(""))
	}
	failed := result.Map(result.Fail[int](errBoom), strconv.Itoa)
	if failed.Err() != errBoom {
		t.Error("failure must propagate through Map")
	}
}

func TestThen(t *testing.T) {
	parse := func(s string) (int, error) { return strconv.Atoi(s) }
	if v := result.Then(result.Ok("12"), parse); v.UnwrapOr(-1) != 12 {
		t.Errorf("expected 12, got %v", v.UnwrapOr(-1))
	}
	if result.Then(result.Ok("twelve"), parse).IsOk() {
		t.Error("a failing stage must fail the chain")
	}
	if result.Then(result.Fail[string](errBoom), parse).Err() != errBoom {
		t.Error("failure input must short-circuit")
	}
}
