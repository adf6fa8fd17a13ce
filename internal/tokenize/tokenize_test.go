package tokenize

import (
	"reflect"
	"testing"
)

func TestTokens_SplitsWords(t *testing.T) {
	got := Tokens("limited offer buy now", false)
	want := []string{"limited", "offer", "buy", "now"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokens_DropsPunctuationAndSpace(t *testing.T) {
	got := Tokens("Hello, world! 42.", false)
	want := []string{"Hello", "world", "42"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokens_LowercaseFlag(t *testing.T) {
	got := Tokens("Buy NOW", true)
	want := []string{"buy", "now"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	mixed := Tokens("Buy NOW", false)
	if !reflect.DeepEqual(mixed, []string{"Buy", "NOW"}) {
		t.Fatalf("lowercase applied without flag: %v", mixed)
	}
}

func TestTokens_EmptyText(t *testing.T) {
	if got := Tokens("", false); got != nil {
		t.Fatalf("expected no tokens, got %v", got)
	}
}
