package routeros

import (
	"errors"
	"reflect"
	"testing"
)

func TestRequestWordsQueryFanOut(t *testing.T) {
	req := Request{
		Path:  "/ip/address/print",
		Query: map[string][]string{"id": {"1", "2"}},
	}
	words, err := req.words()
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	want := []string{"/ip/address/print", "?id=1", "?id=2"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words mismatch: got=%v want=%v", words, want)
	}
}

func TestRequestWordsBodyBeforeQuery(t *testing.T) {
	req := Request{
		Path:  "/interface/print",
		Query: map[string][]string{"type": {"ether"}},
		Body:  map[string]string{"b": "2", "a": "1"},
	}
	words, err := req.words()
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	want := []string{"/interface/print", "=a=1", "=b=2", "?type=ether"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words mismatch: got=%v want=%v", words, want)
	}
}

func TestRequestWordsEmptyPath(t *testing.T) {
	_, err := Request{Path: "  "}.words()
	if !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestRequestWordsLoginShape(t *testing.T) {
	req := Request{
		Path: "/login",
		Body: map[string]string{"name": "admin", "password": "secret"},
	}
	words, err := req.words()
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	want := []string{"/login", "=name=admin", "=password=secret"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words mismatch: got=%v want=%v", words, want)
	}
}
