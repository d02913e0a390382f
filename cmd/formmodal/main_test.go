package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/formmodal"
	"github.com/smileynet/formmodal/internal/config"
	"github.com/smileynet/formmodal/internal/form"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

var checkNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := k.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return &cli, kctx
}

func TestFeature_CLI(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args shows usage and errors", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{}); err == nil {
			t.Fatal("expected error when no command provided")
		}
	})

	t.Run("open command accepts flags", func(t *testing.T) {
		cli, kctx := parse(t, "open", "--no-mouse", "--notify", "toast", "--emit")

		if kctx.Command() != "open" {
			t.Errorf("got command %q, want %q", kctx.Command(), "open")
		}
		if !cli.Open.NoMouse || cli.Open.Notify != "toast" || !cli.Open.Emit {
			t.Errorf("open flags = %+v, want all set", cli.Open)
		}
	})

	t.Run("check command parses record flags", func(t *testing.T) {
		cli, kctx := parse(t, "check",
			"--username", "alice",
			"--email", "a@b.com",
			"--phone", "5551234567",
			"--dob", "2000-01-01",
			"--plain",
		)

		if kctx.Command() != "check" {
			t.Errorf("got command %q, want %q", kctx.Command(), "check")
		}
		want := CheckCmd{Username: "alice", Email: "a@b.com", Phone: "5551234567", DOB: "2000-01-01", Plain: true}
		if cli.Check != want {
			t.Errorf("check = %+v, want %+v", cli.Check, want)
		}
	})

	t.Run("check command requires email phone and dob", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"check", "--email", "a@b.com"}); err == nil {
			t.Error("expected error for missing --phone and --dob")
		}
	})

	t.Run("config command parses default flag", func(t *testing.T) {
		cli, _ := parse(t, "config", "--default")
		if !cli.Config.Default {
			t.Error("--default should be set")
		}
	})
}

func TestFeature_OpenCommand(t *testing.T) {
	t.Run("run returns error when not a TTY", func(t *testing.T) {
		// Given an OpenCmd
		cmd := &OpenCmd{}

		// When run is called with isTTY=false
		err := cmd.run(false, nil)

		// Then an error mentioning "terminal" is returned
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "terminal") {
			t.Errorf("error = %q, want to contain 'terminal'", err)
		}
	})

	t.Run("run executes tea program when TTY", func(t *testing.T) {
		cmd := &OpenCmd{}
		mock := &mockTeaRunner{}

		if err := cmd.run(true, mock); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !mock.ran {
			t.Error("tea program was not run")
		}
	})

	t.Run("run returns tea program error", func(t *testing.T) {
		cmd := &OpenCmd{}
		mock := &mockTeaRunner{err: fmt.Errorf("tea: terminal error")}

		err := cmd.run(true, mock)

		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "tea: terminal error") {
			t.Errorf("error = %q, want to contain tea error", err)
		}
		if exitCode(err) != exitSetup {
			t.Errorf("exitCode = %d, want %d", exitCode(err), exitSetup)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cmd := &OpenCmd{NoMouse: true, Notify: config.NotifyToast}

		cmd.apply(&cfg)

		if cfg.UI.Mouse {
			t.Error("--no-mouse should disable mouse")
		}
		if cfg.Notify.Mode != config.NotifyToast {
			t.Errorf("notify mode = %q, want toast", cfg.Notify.Mode)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		cfg := config.DefaultConfig()

		(&OpenCmd{}).apply(&cfg)

		if cfg != config.DefaultConfig() {
			t.Errorf("config changed to %+v", cfg)
		}
	})

	t.Run("bad notify flag fails validation", func(t *testing.T) {
		cfg := config.DefaultConfig()
		(&OpenCmd{Notify: "popup"}).apply(&cfg)

		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error for notify=popup")
		}
	})
}

func TestEmit(t *testing.T) {
	// Given: two accepted submissions
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	records := []submission{
		newSubmission(form.Data{Username: "alice", Email: "a@b.com", Phone: "5551234567", DOB: "2000-01-01"}, at),
		newSubmission(form.Data{Username: "bob", Email: "b@c.org", Phone: "5550000000", DOB: "1990-05-05"}, at),
	}
	var buf bytes.Buffer

	// When: emitting
	if err := emit(&buf, records); err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	// Then: one YAML document per submission with flat record fields
	if !strings.Contains(buf.String(), "username: alice") {
		t.Errorf("record fields should be inlined, got:\n%s", buf.String())
	}
	dec := yaml.NewDecoder(&buf)
	var got []submission
	for {
		var s submission
		if err := dec.Decode(&s); err != nil {
			break
		}
		got = append(got, s)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d documents, want 2", len(got))
	}
	for i := range got {
		if got[i].Data != records[i].Data || got[i].ID != records[i].ID || !got[i].SubmittedAt.Equal(at) {
			t.Errorf("document %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestNewSubmission(t *testing.T) {
	d := form.Data{Username: "alice"}
	local := time.Date(2026, 10, 18, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	a := newSubmission(d, local)
	b := newSubmission(d, local)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs %q and %q should be non-empty and distinct", a.ID, b.ID)
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", a.ID, err)
	}
	if a.SubmittedAt.Location() != time.UTC || !a.SubmittedAt.Equal(local) {
		t.Errorf("SubmittedAt = %v, want %v in UTC", a.SubmittedAt, local)
	}
}

func TestEmit_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := emit(&buf, nil); err != nil {
		t.Fatalf("emit() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("emit(nil) wrote %q, want nothing", buf.String())
	}
}

func TestFeature_CheckCommand(t *testing.T) {
	t.Run("valid record prints valid and exits zero", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &CheckCmd{Email: "a@b.com", Phone: "5551234567", DOB: "2000-01-01", Plain: true}

		err := cmd.run(&buf, checkNow)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "valid\n") {
			t.Errorf("output = %q, want valid verdict", buf.String())
		}
		if exitCode(err) != exitSuccess {
			t.Errorf("exitCode = %d, want %d", exitCode(err), exitSuccess)
		}
	})

	t.Run("invalid record prints errors in order and exits one", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &CheckCmd{Email: "bad", Phone: "123", DOB: "2099-01-01", Plain: true}

		err := cmd.run(&buf, checkNow)

		if err == nil {
			t.Fatal("expected error for invalid record")
		}
		if exitCode(err) != exitInvalid {
			t.Errorf("exitCode = %d, want %d", exitCode(err), exitInvalid)
		}
		for _, sentinel := range []error{form.ErrInvalidEmail, form.ErrInvalidPhone, form.ErrInvalidDOB} {
			if !errors.Is(err, sentinel) {
				t.Errorf("error should wrap %v", sentinel)
			}
		}
		out := buf.String()
		e, p, d := strings.Index(out, form.MsgInvalidEmail), strings.Index(out, form.MsgInvalidPhone), strings.Index(out, form.MsgInvalidDOB)
		if e < 0 || p < 0 || d < 0 || !(e < p && p < d) {
			t.Errorf("errors missing or out of order in:\n%s", out)
		}
		if !strings.Contains(out, "invalid: 3 errors") {
			t.Errorf("output should contain verdict, got:\n%s", out)
		}
	})

	t.Run("username is not validated", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &CheckCmd{Email: "a@b.com", Phone: "5551234567", DOB: "2000-01-01", Plain: true}

		if err := cmd.run(&buf, checkNow); err != nil {
			t.Errorf("empty username should pass check, got %v", err)
		}
	})

	t.Run("dob equal to now is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
		cmd := &CheckCmd{Email: "a@b.com", Phone: "5551234567", DOB: "2026-10-18", Plain: true}

		err := cmd.run(&buf, now)

		if !errors.Is(err, form.ErrInvalidDOB) {
			t.Errorf("error = %v, want ErrInvalidDOB", err)
		}
	})
}

func TestFeature_ConfigCommand(t *testing.T) {
	t.Run("prints embedded default when no project config", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &ConfigCmd{}

		err := cmd.run(&buf, formmodal.OverlayFS(t.TempDir(), formmodal.Configs))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != string(formmodal.DefaultConfig()) {
			t.Errorf("output = %q, want embedded default", buf.String())
		}
	})

	t.Run("prints project config when present", func(t *testing.T) {
		dir := t.TempDir()
		local := "ui:\n  title: Join\n"
		if err := os.WriteFile(filepath.Join(dir, formmodal.ConfigFile), []byte(local), 0o644); err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer

		err := (&ConfigCmd{}).run(&buf, formmodal.OverlayFS(dir, formmodal.Configs))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != local {
			t.Errorf("output = %q, want %q", buf.String(), local)
		}
	})

	t.Run("default flag ignores project config", func(t *testing.T) {
		fsys := fstest.MapFS{formmodal.ConfigFile: &fstest.MapFile{Data: []byte("local")}}
		var buf bytes.Buffer

		err := (&ConfigCmd{Default: true}).run(&buf, fsys)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != string(formmodal.DefaultConfig()) {
			t.Errorf("output = %q, want embedded default", buf.String())
		}
	})

	t.Run("missing file is a setup error", func(t *testing.T) {
		err := (&ConfigCmd{}).run(&bytes.Buffer{}, fstest.MapFS{})

		if err == nil {
			t.Fatal("expected error for missing config")
		}
		if exitCode(err) != exitSetup {
			t.Errorf("exitCode = %d, want %d", exitCode(err), exitSetup)
		}
	})
}

func TestLoadConfig_ProjectAndEnv(t *testing.T) {
	// Given: a project config in the working directory and an env override
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	if err := os.MkdirAll(projectConfigDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("ui:\n  title: Join us\n  width: 50\n")
	if err := os.WriteFile(filepath.Join(projectConfigDir, formmodal.ConfigFile), data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FORMMODAL_NOTIFY", "toast")

	// When: loading config
	cfg, err := loadConfig()

	// Then: project values and env override are applied over defaults
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.UI.Title != "Join us" || cfg.UI.Width != 50 {
		t.Errorf("ui = %+v, want project values", cfg.UI)
	}
	if cfg.Notify.Mode != config.NotifyToast {
		t.Errorf("notify mode = %q, want toast from env", cfg.Notify.Mode)
	}
	if !cfg.UI.Mouse {
		t.Error("mouse should keep its default")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"invalid email", fmt.Errorf("check: %w", form.Errors{form.FieldEmail: form.MsgInvalidEmail}.Err()), exitInvalid},
		{"invalid dob", form.ErrInvalidDOB, exitInvalid},
		{"setup", errors.New("config: bad yaml"), exitSetup},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

// mockTeaRunner stubs tea program execution for OpenCmd testing.
type mockTeaRunner struct {
	ran bool
	err error
}

func (m *mockTeaRunner) Run() (tea.Model, error) {
	m.ran = true
	return nil, m.err
}

// Compile-time check: mockTeaRunner satisfies teaRunner.
var _ teaRunner = (*mockTeaRunner)(nil)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir for older Go).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
