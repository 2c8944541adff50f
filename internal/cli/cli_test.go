package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"

	"github.com/shorts-cli/shorts/internal/config"
	"github.com/shorts-cli/shorts/internal/elevate"
	"github.com/shorts-cli/shorts/internal/fs"
	"github.com/shorts-cli/shorts/internal/shortcut"
)

const binDir = "/usr/local/bin"

func setupTestApp(answer bool) (*fs.MockSystem, *app, *[]string) {
	mock := fs.NewMock()
	mock.HomeDir = "/home/test"
	mock.Dirs["/usr"] = true
	mock.Dirs["/usr/local"] = true
	mock.Dirs[binDir] = true

	var prompts []string
	a := &app{
		fs:          mock,
		configStore: config.NewStore(mock),
		logger:      log.New(io.Discard),
		discover: func(config.BrokerConfig) (elevate.Broker, error) {
			return nil, shortcut.ErrBrokerUnavailable
		},
		ask: func(message string) (bool, error) {
			prompts = append(prompts, message)
			return answer, nil
		},
	}
	return mock, a, &prompts
}

func runCmd(a *app, args ...string) (string, error) {
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSaveListShow(t *testing.T) {
	mock, a, prompts := setupTestApp(true)

	out, err := runCmd(a, "save", "-s", "-o", "upd", "--", "apt", "install")
	if err != nil {
		t.Fatalf("save error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "saved successfully") {
		t.Errorf("save output = %q", out)
	}
	if len(*prompts) != 0 {
		t.Errorf("unexpected prompts: %v", *prompts)
	}

	data, err := mock.ReadFile(binDir + "/upd")
	if err != nil {
		t.Fatalf("shortcut not written: %v", err)
	}
	if !strings.HasSuffix(string(data), "sudo apt install $@\n") {
		t.Errorf("script = %q", data)
	}

	out, err = runCmd(a, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "upd") || !strings.Contains(out, "sudo apt install $@") {
		t.Errorf("list output = %q", out)
	}

	out, err = runCmd(a, "show", "upd")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{binDir + "/upd", "apt install", "sudo,open-ended"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestSaveOverwritePrompt(t *testing.T) {
	original := shortcut.Compose("echo old", shortcut.Modifiers{})

	t.Run("declined", func(t *testing.T) {
		mock, a, prompts := setupTestApp(false)
		mock.AddFile(binDir+"/greet", []byte(original), 0o755)

		out, err := runCmd(a, "save", "greet", "--", "echo new")
		if err != nil {
			t.Fatalf("save error = %v", err)
		}
		if len(*prompts) != 1 {
			t.Fatalf("prompts = %v, want 1", *prompts)
		}
		if !strings.Contains(out, "Kept existing") {
			t.Errorf("output = %q", out)
		}
		if data, _ := mock.ReadFile(binDir + "/greet"); string(data) != original {
			t.Errorf("shortcut overwritten: %q", data)
		}
	})

	t.Run("yes flag", func(t *testing.T) {
		mock, a, prompts := setupTestApp(false)
		mock.AddFile(binDir+"/greet", []byte(original), 0o755)

		if _, err := runCmd(a, "save", "--yes", "greet", "--", "echo new"); err != nil {
			t.Fatalf("save error = %v", err)
		}
		if len(*prompts) != 0 {
			t.Errorf("prompts = %v, want none", *prompts)
		}
		if data, _ := mock.ReadFile(binDir + "/greet"); !strings.Contains(string(data), "echo new") {
			t.Errorf("shortcut not overwritten: %q", data)
		}
	})
}

func TestSaveErrors(t *testing.T) {
	t.Run("invalid name", func(t *testing.T) {
		_, a, _ := setupTestApp(true)
		_, err := runCmd(a, "save", "bad name", "--", "ls")
		if !errors.Is(err, shortcut.ErrInvalidName) {
			t.Errorf("error = %v, want ErrInvalidName", err)
		}
	})

	t.Run("protected directory without broker", func(t *testing.T) {
		mock, a, _ := setupTestApp(true)
		mock.ReadOnly[binDir] = true

		_, err := runCmd(a, "save", "ll", "--", "ls -la")
		if !errors.Is(err, shortcut.ErrBrokerUnavailable) {
			t.Errorf("error = %v, want ErrBrokerUnavailable", err)
		}
		if mock.Exists(binDir + "/ll") {
			t.Error("shortcut written without broker")
		}
	})
}

func TestRemove(t *testing.T) {
	mock, a, prompts := setupTestApp(true)
	mock.AddFile(binDir+"/ll", []byte(shortcut.Compose("ls -la", shortcut.Modifiers{})), 0o755)

	out, err := runCmd(a, "rm", "ll")
	if err != nil {
		t.Fatalf("rm error = %v", err)
	}
	if len(*prompts) != 1 || !strings.Contains((*prompts)[0], "'ll'") {
		t.Errorf("prompts = %v", *prompts)
	}
	if !strings.Contains(out, "deleted") {
		t.Errorf("output = %q", out)
	}
	if mock.Exists(binDir + "/ll") {
		t.Error("shortcut not removed")
	}

	if _, err := runCmd(a, "rm", "ll"); !errors.Is(err, shortcut.ErrNotFound) {
		t.Errorf("second rm error = %v, want ErrNotFound", err)
	}
}

func TestRemoveIgnoresNonShortcuts(t *testing.T) {
	mock, a, prompts := setupTestApp(true)
	mock.AddFile(binDir+"/notes", []byte("text\n"), 0o644)
	mock.AddFile(binDir+"/a.out", []byte("\x7fELF"), 0o755)
	mock.Dirs[binDir+"/sub"] = true

	for _, name := range []string{"notes", "sub"} {
		if _, err := runCmd(a, "rm", name); !errors.Is(err, shortcut.ErrNotFound) {
			t.Errorf("rm %s error = %v, want ErrNotFound", name, err)
		}
		if !mock.Exists(binDir + "/" + name) {
			t.Errorf("%s removed", name)
		}
	}
	if len(*prompts) != 0 {
		t.Errorf("prompts = %v", *prompts)
	}

	out, err := runCmd(a, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No shortcuts found") {
		t.Errorf("list output = %q", out)
	}
}

func TestListFilter(t *testing.T) {
	mock, a, _ := setupTestApp(true)
	for _, name := range []string{"gitlog", "gitstatus", "ls"} {
		mock.AddFile(binDir+"/"+name, []byte(shortcut.Compose(name, shortcut.Modifiers{})), 0o755)
	}

	out, err := runCmd(a, "list", "glog")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "gitlog") || strings.Contains(out, "gitstatus") {
		t.Errorf("list output = %q", out)
	}

	out, err = runCmd(a, "list", "zzz")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No shortcuts found") {
		t.Errorf("list output = %q", out)
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"deploy", "dev-server", "ls"}

	if got := filterNames("", names); !slices.Equal(got, names) {
		t.Errorf("filterNames(\"\") = %v", got)
	}
	got := filterNames("dv", names)
	if len(got) != 1 || got[0] != "dev-server" {
		t.Errorf("filterNames(\"dv\") = %v, want [dev-server]", got)
	}
}

func TestJoinCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"journalctl -f | grep err"}, "journalctl -f | grep err"},
		{[]string{"git", "status"}, "git status"},
	}
	for _, tt := range tests {
		if got := joinCommand(tt.args); got != tt.want {
			t.Errorf("joinCommand(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}

	// Argument boundaries survive a shell split.
	args := []string{"echo", "a b", "$HOME"}
	split, err := shellquote.Split(joinCommand(args))
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if !slices.Equal(split, args) {
		t.Errorf("Split(joinCommand(%q)) = %q", args, split)
	}
}

func TestPreview(t *testing.T) {
	mock, a, _ := setupTestApp(true)

	out, err := runCmd(a, "preview", "-s", "-b", "-o", "--", "updatedb")
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	if !strings.Contains(out, "nohup sudo updatedb $@ &") {
		t.Errorf("preview output = %q", out)
	}

	out, err = runCmd(a, "preview", "--script", "--", "ls")
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	if !strings.HasPrefix(out, "#!/bin/bash\n") {
		t.Errorf("preview --script output = %q", out)
	}

	for path := range mock.Files {
		if strings.HasPrefix(path, binDir) {
			t.Errorf("preview wrote %s", path)
		}
	}
}

func TestCheck(t *testing.T) {
	mock, a, _ := setupTestApp(true)
	mock.AddFile(binDir+"/good", []byte(shortcut.Compose("ls -la", shortcut.Modifiers{})), 0o755)
	mock.AddFile(binDir+"/bad", []byte(shortcut.Compose("echo (", shortcut.Modifiers{})), 0o755)

	out, err := runCmd(a, "check")
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("check error = %v", err)
	}
	if !strings.Contains(out, "bad") || !strings.Contains(out, "good") {
		t.Errorf("check output = %q", out)
	}

	if _, err := runCmd(a, "check", "good"); err != nil {
		t.Errorf("check good error = %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	mock, a, _ := setupTestApp(true)
	path := "/home/test/.config/shorts/config.yaml"

	out, err := runCmd(a, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "using defaults") || !strings.Contains(out, "shortcut_dir: /usr/local/bin") {
		t.Errorf("config show output = %q", out)
	}

	if _, err := runCmd(a, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !mock.Exists(path) {
		t.Fatalf("config file not created at %s", path)
	}

	if _, err := runCmd(a, "config", "init"); err == nil {
		t.Error("expected error when config exists")
	}
	if _, err := runCmd(a, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestConfigShortcutDir(t *testing.T) {
	mock, a, _ := setupTestApp(true)
	mock.Dirs["/home/test"] = true
	mock.AddFile("/home/test/shorts.yaml", []byte("shortcut_dir: ~/bin\n"), 0o644)

	if _, err := runCmd(a, "--config", "/home/test/shorts.yaml", "save", "ll", "--", "ls"); err != nil {
		t.Fatalf("save error = %v", err)
	}
	if !mock.Exists("/home/test/bin/ll") {
		t.Error("shortcut not written to configured directory")
	}
}
