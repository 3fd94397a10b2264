package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func TestResolve_FlattensKeys(t *testing.T) {
	doc := `
profile: marked
log:
  level: debug
  pretty: false
log_time_layout: Kitchen
pprof:
  mode: cpu
jobs: 4
path_prepend: [/opt/bin, /usr/local/bin]
`

	resolver, err := resolve(context.Background())(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"profile", "marked"},
		{"log-level", "debug"},
		{"log-pretty", false},
		{"log-time-layout", "Kitchen"},
		{"pprof-mode", "cpu"},
		{"jobs", "4"},
		{"path-prepend", []string{"/opt/bin", "/usr/local/bin"}},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := resolver.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.flag, diff)
			}
		})
	}
}

func TestResolve_InvalidDocument(t *testing.T) {
	resolver, err := resolve(context.Background())(strings.NewReader("profile: [unterminated"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	flag := &kong.Flag{Value: &kong.Value{Name: "profile"}}

	if got, _ := resolver.Resolve(nil, nil, flag); got != nil {
		t.Errorf("Resolve() = %v, want nil for an invalid document", got)
	}
}

func TestResolve_ReadError(t *testing.T) {
	_, err := resolve(context.Background())(errorReader{})
	if !errors.Is(err, errRead) {
		t.Errorf("resolve() error = %v, want %v", err, errRead)
	}
}

var errRead = errors.New("read failed")

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errRead }

func TestResolve_Configuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseConfig)

	doc := "name: from-file\ncount: 3\nverbose: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli struct {
		Name    string `default:"builtin"`
		Count   int
		Verbose bool
	}

	parser, err := kong.New(&cli,
		kong.Configuration(resolve(context.Background()), path),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--name=flag"}); err != nil {
		t.Fatal(err)
	}

	if cli.Name != "flag" {
		t.Errorf("Name = %q, want the command line to win", cli.Name)
	}

	if cli.Count != 3 || !cli.Verbose {
		t.Errorf("Count, Verbose = %d, %v, want 3, true", cli.Count, cli.Verbose)
	}
}
