package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/daypad/internal/models"
)

// buildCLI returns the binary named by DAYPAD_BIN, or builds one.
func buildCLI(t *testing.T) string {
	t.Helper()
	if bin := os.Getenv("DAYPAD_BIN"); bin != "" {
		return bin
	}
	bin := filepath.Join(t.TempDir(), "daypad")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\nOutput: %s", err, out)
	}
	return bin
}

type workflow struct {
	t    *testing.T
	bin  string
	env  []string
	args []string
}

func (w *workflow) run(stdin string, args ...string) string {
	w.t.Helper()
	cmd := exec.Command(w.bin, append(append([]string{}, w.args...), args...)...)
	cmd.Env = w.env
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	if err != nil {
		w.t.Fatalf("daypad %v failed: %v\nOutput: %s", args, err, out)
	}
	return string(out)
}

func (w *workflow) expect(out, want string) {
	w.t.Helper()
	if !strings.Contains(out, want) {
		w.t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := buildCLI(t)

	home := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "DAYPAD_") && !strings.HasPrefix(e, "XDG_CONFIG_HOME=") {
			env = append(env, e)
		}
	}
	env = append(env, "HOME="+home, "XDG_CONFIG_HOME="+filepath.Join(home, ".config"), "DAYPAD_TIMEZONE=UTC")

	w := &workflow{
		t:   t,
		bin: bin,
		env: env,
		args: []string{
			"--config", filepath.Join(home, "daypad", "config.yaml"),
			"--db", filepath.Join(home, "daypad", "daypad.db"),
		},
	}

	w.expect(w.run("", "init"), "Initialized daypad")

	w.run("", "add", "write", "report")
	w.run("", "add", "call", "mom")
	w.run("", "add", "buy", "milk")
	w.expect(w.run("", "day"), " 1. [ ] write report")

	w.run("", "toggle", "1")
	w.expect(w.run("", "day"), " 1. [x] write report")

	w.run("", "move", "3", "--top")
	w.expect(w.run("", "day"), " 1. [ ] buy milk")

	w.run("", "reschedule", "1", "--to", "tomorrow")
	w.expect(w.run("", "day", "--date", "tomorrow"), "buy milk")
	if out := w.run("", "day"); strings.Contains(out, "buy milk") {
		t.Errorf("rescheduled task still listed today:\n%s", out)
	}

	w.run("## plan\n- ship it\n", "notes", "--set", "-")
	w.expect(w.run("", "notes", "--raw"), "## plan")

	export := filepath.Join(home, "today.json")
	w.run("", "export", "-o", export)
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatal(err)
	}
	var rec models.DayRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("export is not a day record: %v\n%s", err, data)
	}
	if len(rec.Todos) != 2 || !strings.Contains(rec.Notes, "ship it") {
		t.Errorf("exported record = %+v", rec)
	}

	w.expect(w.run("", "calendar"), "1/2*")
	w.expect(w.run("", "prefs", "zoom", "in", "-n", "3"), "Zoom set to 1.3")
	w.expect(w.run("", "validate"), "No conflicts")

	w.run("", "backup", "create")
	w.expect(w.run("", "backup", "list"), "daypad-")
	w.run("", "doctor")
}
