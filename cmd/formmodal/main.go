package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/formmodal"
	"github.com/smileynet/formmodal/internal/config"
	"github.com/smileynet/formmodal/internal/form"
	"github.com/smileynet/formmodal/internal/logging"
	"github.com/smileynet/formmodal/internal/modal"
	"github.com/smileynet/formmodal/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// projectConfigDir holds the per-project config file.
const projectConfigDir = ".formmodal"

// CLI is the top-level command structure for formmodal.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Open    OpenCmd          `cmd:"" help:"Open the interactive form dialog."`
	Check   CheckCmd         `cmd:"" help:"Validate a record without the dialog."`
	Config  ConfigCmd        `cmd:"" help:"Print the effective config file."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/formmodal/config.yaml"),
		projectConfigDir+"/"+formmodal.ConfigFile,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// --- Open command ---

// OpenCmd runs the form dialog.
type OpenCmd struct {
	NoMouse bool   `help:"Disable mouse reporting and outside-click close." default:"false"`
	Notify  string `help:"Notification style: alert or toast (overrides config)."`
	Emit    bool   `help:"Write accepted submissions to stdout as YAML; the dialog draws on stderr." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the dialog and launches it.
func (o *OpenCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("open: %w", err)
	}

	logger, sync, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer sync()

	var accepted []submission
	m := modal.NewModel(
		modal.WithConfig(*cfg),
		modal.WithLogger(logger),
		modal.WithSubmitHandler(func(d form.Data) {
			s := newSubmission(d, time.Now())
			logger.Info("submission recorded", zap.String("id", s.ID))
			accepted = append(accepted, s)
		}),
	)

	out := os.Stdout
	if o.Emit {
		out = os.Stderr
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	if err := o.run(tui.IsTTY(out), prog); err != nil {
		return err
	}
	if o.Emit {
		return emit(os.Stdout, accepted)
	}
	return nil
}

// apply overlays command flags onto cfg.
func (o *OpenCmd) apply(cfg *config.Config) {
	if o.NoMouse {
		cfg.UI.Mouse = false
	}
	if o.Notify != "" {
		cfg.Notify.Mode = o.Notify
	}
}

// run executes the tea program, enabling testable wiring.
func (o *OpenCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("open: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}

// submission is one accepted record as written by --emit.
type submission struct {
	ID          string    `yaml:"id"`
	SubmittedAt time.Time `yaml:"submitted_at"`
	form.Data   `yaml:",inline"`
}

func newSubmission(d form.Data, at time.Time) submission {
	return submission{ID: uuid.New().String(), SubmittedAt: at.UTC(), Data: d}
}

// emit writes each submission as its own YAML document. No records
// writes nothing.
func emit(w io.Writer, records []submission) error {
	if len(records) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, d := range records {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("open: encoding submission: %w", err)
		}
	}
	return enc.Close()
}

// --- Check command ---

// CheckCmd validates a record and reports the result.
type CheckCmd struct {
	Username string `help:"Username (not validated)."`
	Email    string `help:"Email address." required:""`
	Phone    string `help:"Phone number, 10 digits." required:""`
	DOB      string `name:"dob" help:"Date of birth, YYYY-MM-DD." required:""`
	Plain    bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run validates against the current time and reports to stdout.
func (c *CheckCmd) Run() error {
	return c.run(os.Stdout, time.Now())
}

func (c *CheckCmd) run(w io.Writer, now time.Time) error {
	d := form.Data{Username: c.Username, Email: c.Email, Phone: c.Phone, DOB: c.DOB}
	errs := form.Validate(d, now)

	r := tui.NewReporter(tui.ReporterOptions{Writer: w, ForcePlain: c.Plain})
	if err := r.Render(tui.Report{Data: d, Errors: errs}); err != nil {
		return fmt.Errorf("check: writing report: %w", err)
	}
	if !errs.Empty() {
		return fmt.Errorf("check: %w", errs.Err())
	}
	return nil
}

// --- Config command ---

// ConfigCmd prints the project config file or the embedded default.
type ConfigCmd struct {
	Default bool `help:"Print the embedded default even if a project config exists." default:"false"`
}

// Run prints the config to stdout.
func (c *ConfigCmd) Run() error {
	return c.run(os.Stdout, formmodal.OverlayFS(projectConfigDir, formmodal.Configs))
}

func (c *ConfigCmd) run(w io.Writer, fsys fs.FS) error {
	if c.Default {
		fsys = formmodal.Configs
	}
	data, err := fs.ReadFile(fsys, formmodal.ConfigFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// --- Exit codes ---

const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, form.ErrInvalidEmail) || errors.Is(err, form.ErrInvalidPhone) || errors.Is(err, form.ErrInvalidDOB) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("A sign-up form dialog for the terminal."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
