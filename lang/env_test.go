package lang

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestEnvironment_Set(t *testing.T) {
	var env Environment

	env.Set("CC", "clang")
	env.Set("K", "a")
	env.Set("CC", "-m32")
	env.Set("K", "b")

	if diff := cmp.Diff([]string{"CC", "K"}, env.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]string{"CC": "clang -m32", "K": "a b"}
	if diff := cmp.Diff(want, env.Map()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	if _, ok := env.Get("missing"); ok {
		t.Error("Get reported a missing key as present")
	}
}

func TestEnvironment_Zero(t *testing.T) {
	var env Environment

	if env.Len() != 0 {
		t.Errorf("Len() = %d, want 0", env.Len())
	}

	for k := range env.All() {
		t.Errorf("unexpected key %q", k)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "{}" {
		t.Errorf("json = %s, want {}", data)
	}
}

func TestEnvironment_Clone(t *testing.T) {
	var env Environment
	env.Set("A", "1")

	c := env.Clone()
	c.Set("A", "2")
	c.Set("B", "3")

	if got, _ := env.Get("A"); got != "1" {
		t.Errorf("original changed: A = %q", got)
	}

	if env.Len() != 1 {
		t.Errorf("original has %d keys, want 1", env.Len())
	}
}

func TestEnvironment_Marshal(t *testing.T) {
	var env Environment
	env.Set("Z", "last")
	env.Set("A", "first")

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), `{"Z":"last","A":"first"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}

	out, err := yaml.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(out), "Z: last\nA: first\n"; got != want {
		t.Errorf("yaml = %q, want %q", got, want)
	}
}
