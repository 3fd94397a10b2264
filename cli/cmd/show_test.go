package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wantShow = "Environment:\n" +
	"\tCC: clang\n" +
	"Arguments:\n" +
	"\t--enable-optimize\n" +
	"\t--disable-debug\n" +
	"\t--enable-debug-symbols\n" +
	"\t--enable-valgrind\n" +
	"\n\n" +
	`CC="clang" ./configure --enable-optimize --disable-debug --enable-debug-symbols --enable-valgrind` + "\n"

func TestTestRun(t *testing.T) {
	env := newTestContext(t, nil)

	if err := (&Test{Config: "cdo.dbg"}).Run(env.ctx); err != nil {
		t.Fatalf("Test.Run() error = %v", err)
	}

	if got := env.stdout.String(); got != wantShow {
		t.Errorf("Test.Run() output:\n%s\nwant:\n%s", got, wantShow)
	}
}

func TestTestRun_Fingerprint(t *testing.T) {
	env := newTestContext(t, nil)

	if err := (&Test{Config: "cdo", Fingerprint: true}).Run(env.ctx); err != nil {
		t.Fatalf("Test.Run() error = %v", err)
	}

	last := strings.TrimSpace(env.stdout.String())
	last = last[strings.LastIndexByte(last, '\n')+1:]

	hex, ok := strings.CutPrefix(last, "Fingerprint: ")
	if !ok || len(hex) != 64 {
		t.Errorf("last line = %q, want a 64 digit fingerprint", last)
	}
}

func TestTestRun_Failure(t *testing.T) {
	env := newTestContext(t, nil)

	err := (&Test{Config: "zdo"}).Run(env.ctx)
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Test.Run() error = %v, want ErrCompile", err)
	}

	if env.stdout.Len() != 0 {
		t.Errorf("Test.Run() wrote output on failure: %q", env.stdout.String())
	}

	if !strings.Contains(env.stderr.String(), "Context: zdo") {
		t.Errorf("Test.Run() did not report context: %q", env.stderr.String())
	}
}

func TestShowRun_Link(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "ctx")

	if err := os.Symlink(filepath.Join(dir, "cdo.dbg")+"/", link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		show    Show
		want    string
		wantErr error
	}{
		{"explicit", Show{Config: "cdo.dbg", Link: filepath.Join(dir, "missing")}, wantShow, nil},
		{"linked", Show{Link: link}, wantShow, nil},
		{"missing link", Show{Link: filepath.Join(dir, "missing")}, "", ErrNoConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestContext(t, nil)

			err := tt.show.Run(env.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Show.Run() error = %v, want %v", err, tt.wantErr)
			}

			if got := env.stdout.String(); got != tt.want {
				t.Errorf("Show.Run() output:\n%s\nwant:\n%s", got, tt.want)
			}

			if _, err := os.Lstat(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
				t.Error("Show.Run() created the link")
			}
		})
	}
}

func TestTablesRun(t *testing.T) {
	env := newTestContext(t, nil)

	if err := (&Tables{}).Run(env.ctx); err != nil {
		t.Fatalf("Tables.Run() error = %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{
		"Compilers:",
		"\tc: CC=clang",
		"Multi Char Shortcuts (.)",
		"\tdbg: --enable-debug-symbols --enable-valgrind",
		"\tj: --enable-jemalloc",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Tables.Run() output missing %q:\n%s", want, out)
		}
	}
}
