package importer

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"peek-go/internal/peek"
)

func TestNewImporter_EmptyBinary(t *testing.T) {
	for _, binary := range []string{"", "   "} {
		if _, ok := NewImporter(binary, peek.NewNopLogger()).(peek.NopImporter); !ok {
			t.Errorf("NewImporter(%q) should return NopImporter", binary)
		}
	}
}

func TestExecImporter_Success(t *testing.T) {
	var gotName string
	var gotArgs []string
	setHelperCommand(t, "success", func(name string, args []string) {
		gotName = name
		gotArgs = args
	})

	imp := NewImporter("/opt/peek/peek", peek.NewNopLogger())
	if err := imp.Import("NES", "/out/NES.txt"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if gotName != "/opt/peek/peek" {
		t.Errorf("binary = %q, want /opt/peek/peek", gotName)
	}
	if want := "db import NES /out/NES.txt"; strings.Join(gotArgs, " ") != want {
		t.Errorf("args = %v, want %q", gotArgs, want)
	}
}

func TestExecImporter_Failure(t *testing.T) {
	setHelperCommand(t, "failure", nil)

	imp := NewImporter("peek", peek.NewNopLogger())
	err := imp.Import("SNES", "/out/SNES.txt")
	if err == nil {
		t.Fatal("expected import failure")
	}
	if !strings.Contains(err.Error(), "failed with code 3") {
		t.Errorf("error = %q, want exit code in message", err)
	}
}

func TestExecImporter_MissingBinary(t *testing.T) {
	imp := NewImporter("/nonexistent/peek-binary", peek.NewNopLogger())
	if err := imp.Import("NES", "/out/NES.txt"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func setHelperCommand(t *testing.T, mode string, capture func(name string, args []string)) {
	t.Helper()
	original := command
	command = func(name string, args ...string) *exec.Cmd {
		if capture != nil {
			capture(name, args)
		}
		cmd := exec.Command(os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("PEEK_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		command = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("PEEK_HELPER_MODE") {
	case "success":
		fmt.Println("importing 12 games")
		fmt.Println("done")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "database locked")
		os.Exit(3)
	default:
		os.Exit(0)
	}
}
