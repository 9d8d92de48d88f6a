package proto

import (
	"reflect"
	"testing"
)

func TestParseReplyRows(t *testing.T) {
	res := ParseReply([]Sentence{
		{"!re", "=name=ether1", "=type=ether"},
		{"!done"},
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	want := []Row{{"name": "ether1", "type": "ether"}}
	if !reflect.DeepEqual(res.Data, want) {
		t.Fatalf("data mismatch: got=%v want=%v", res.Data, want)
	}
}

func TestParseReplyTrap(t *testing.T) {
	res := ParseReply([]Sentence{
		{"!trap", "=message=invalid user name or password"},
	})
	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.Message != "invalid user name or password" {
		t.Fatalf("message mismatch: %q", res.Message)
	}
}

func TestParseReplyTrapWithoutMessage(t *testing.T) {
	res := ParseReply([]Sentence{{"!trap", "=category=0"}})
	if res.Success || res.Message != "Unknown error" {
		t.Fatalf("got %+v", res)
	}
}

func TestParseReplyTrapShortCircuits(t *testing.T) {
	res := ParseReply([]Sentence{
		{"!trap", "=message=failure"},
		{"!re", "=name=ether1"},
		{"!done"},
	})
	if res.Success || len(res.Data) != 0 {
		t.Fatalf("rows after a trap must not be inspected: %+v", res)
	}
}

func TestParseReplyValueContainingEquals(t *testing.T) {
	res := ParseReply([]Sentence{
		{"!re", "=comment=a=b=c"},
		{"!done"},
	})
	if !res.Success || res.Data[0]["comment"] != "a=b=c" {
		t.Fatalf("attribute must split at the first separator only: %+v", res)
	}
}

func TestParseReplyDoneOnly(t *testing.T) {
	res := ParseReply([]Sentence{{"!done"}})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("expected empty row list, got %#v", res.Data)
	}
}

func TestParseReplyIgnoresNonAttributeWords(t *testing.T) {
	res := ParseReply([]Sentence{
		{"!re", ".tag=4", "=name=ether1"},
		{"!done"},
	})
	if !reflect.DeepEqual(res.Data, []Row{{"name": "ether1"}}) {
		t.Fatalf("got %+v", res.Data)
	}
}
