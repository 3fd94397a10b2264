package cmd

import (
	"errors"
	"testing"
)

func TestCheckRun(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		expr    string
		want    string
		wantErr error
	}{
		{"argument present", "cdo.dbg", `"--enable-valgrind" in Args`, "true\n", nil},
		{"environment", "cdo", `Env.CC == "clang" && len(Args) == 2`, "true\n", nil},
		{"input", "cdo*j", `Input endsWith "*j"`, "true\n", nil},
		{"false", "cdo", `"--enable-jemalloc" in Args`, "false\n", ErrCheckFailed},
		{"not boolean", "cdo", `len(Args)`, "", ErrExpression},
		{"unknown variable", "cdo", `Nope == 1`, "", ErrExpression},
		{"compile error", "cdo.nope", `true`, "", ErrCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestContext(t, nil)

			err := (&Check{Config: tt.config, Expr: tt.expr}).Run(env.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check.Run() error = %v, want %v", err, tt.wantErr)
			}

			if got := env.stdout.String(); got != tt.want {
				t.Errorf("Check.Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckRun_Quiet(t *testing.T) {
	env := newTestContext(t, nil)

	if err := (&Check{Quiet: true, Config: "cdo", Expr: "true"}).Run(env.ctx); err != nil {
		t.Fatalf("Check.Run() error = %v", err)
	}

	if env.stdout.Len() != 0 {
		t.Errorf("Check.Run() wrote %q in quiet mode", env.stdout.String())
	}
}
