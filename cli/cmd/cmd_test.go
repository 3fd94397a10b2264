package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/wfm/lang"
)

// testProfile returns a small profile whose tables are easy to reason about.
func testProfile() *lang.Profile {
	return &lang.Profile{
		Name:   "test",
		Sigils: `^+=!?'*.@`,
		Order:  lang.OrderArchOpt,
		Tables: &lang.Tables{
			Compilers: map[string]lang.CompilerDescriptor{
				"c": {
					Name:          "Clang",
					Flags:         `^CC=clang;`,
					Architectures: map[string]string{"d": ``},
				},
			},
			Optimizations: map[string]string{"o": `+optimize!debug`},
			Shortcuts:     map[string]string{"j": `+jemalloc`},
			Macros:        map[string]string{"dbg": `+debug-symbols+valgrind`},
		},
	}
}

// testEnv holds the streams of a context built by newTestContext.
type testEnv struct {
	ctx    context.Context
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestContext returns a context carrying an empty kong application with
// the given vars, writing to in-memory streams, and the test profile.
func newTestContext(t *testing.T, vars kong.Vars) testEnv {
	t.Helper()

	var (
		cli    struct{}
		env    testEnv
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&stdout, &stderr), vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	env.ctx = WithProfile(WithContext(context.Background(), ktx), testProfile())
	env.stdout = &stdout
	env.stderr = &stderr

	return env
}

func TestProfileFrom_Default(t *testing.T) {
	p := profileFrom(context.Background())
	if p.Name != lang.DefaultProfile {
		t.Errorf("profileFrom() = %q, want %q", p.Name, lang.DefaultProfile)
	}

	ctx := WithProfile(context.Background(), testProfile())
	if got := profileFrom(ctx).Name; got != "test" {
		t.Errorf("profileFrom() = %q, want test", got)
	}
}

func TestCompile_ReportsFailure(t *testing.T) {
	env := newTestContext(t, nil)

	_, err := compile(env.ctx, "cdo.nope")
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("compile() error = %v, want ErrCompile", err)
	}

	if !errors.Is(err, lang.ErrUnknownMacro) {
		t.Errorf("compile() error = %v, want it to wrap ErrUnknownMacro", err)
	}

	report := env.stderr.String()
	for _, want := range []string{`"nope"`, "Context: cdo.nope", "----^"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestKongVar(t *testing.T) {
	env := newTestContext(t, kong.Vars{JobsIdentifier: "7"})

	if got := kongVar(env.ctx, JobsIdentifier); got != "7" {
		t.Errorf("kongVar() = %q, want 7", got)
	}

	if got := kongVar(context.Background(), JobsIdentifier); got != "" {
		t.Errorf("kongVar() without kong context = %q, want empty", got)
	}
}

func TestError_Is(t *testing.T) {
	err := ErrWriteConfig.With().Wrap(ErrFileExists)

	if !errors.Is(err, ErrWriteConfig) {
		t.Error("wrapped error does not match its sentinel")
	}

	if !errors.Is(err, ErrFileExists) {
		t.Error("wrapped error does not match its cause")
	}

	if errors.Is(err, ErrCompile) {
		t.Error("wrapped error matches an unrelated sentinel")
	}
}
