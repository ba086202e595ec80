package cache

import (
	"strings"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "empty prompt",
			key:  Key{Provider: "gemini"},
			want: "wordlister:cache:gemini:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "simple prompt",
			key:  Key{Provider: "groq", Prompt: "abc"},
			want: "wordlister:cache:groq:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	prompt := "There are 2 subdomains separated by a < character. a.example.com<b.example.com"
	a := Key{Provider: "deepseek", Prompt: prompt}
	b := Key{Provider: "deepseek", Prompt: prompt}

	if a.String() != b.String() {
		t.Errorf("same key produced %q and %q", a.String(), b.String())
	}
}

func TestKey_DistinguishesProviderAndPrompt(t *testing.T) {
	base := Key{Provider: "gemini", Prompt: "p1"}
	others := []Key{
		{Provider: "groq", Prompt: "p1"},
		{Provider: "gemini", Prompt: "p2"},
	}

	for _, o := range others {
		if base.String() == o.String() {
			t.Errorf("%+v and %+v share key %q", base, o, base.String())
		}
	}
}

func TestKey_DoesNotLeakPrompt(t *testing.T) {
	k := Key{Provider: "gemini", Prompt: "secret.internal.example.com"}
	if strings.Contains(k.String(), "secret") {
		t.Errorf("key %q contains prompt text", k.String())
	}
}
