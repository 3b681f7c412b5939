package system

import (
	"os"
	"os/exec"

	"zshsetup/internal/logging"
)

type LiveExecutor struct{}

// Run attaches the terminal to any unset stdio stream so package-manager
// output and sudo prompts reach the user.
func (l *LiveExecutor) Run(cmd *exec.Cmd) error {
	logging.LogCommand(cmd.Path, cmd.Args[1:])
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func (l *LiveExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	logging.LogCommand(cmd.Path, cmd.Args[1:])
	return cmd.CombinedOutput()
}

func (l *LiveExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}

func (l *LiveExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (l *LiveExecutor) IsRoot() bool {
	return os.Geteuid() == 0
}

func (l *LiveExecutor) CanSudo() bool {
	return exec.Command("sudo", "-n", "true").Run() == nil
}

// DryRunExecutor logs mutating commands instead of running them. Queries
// still reach the wrapped executor so decisions reflect the real machine.
type DryRunExecutor struct {
	Inner Executor
}

func (d *DryRunExecutor) Run(cmd *exec.Cmd) error {
	logRecorded(cmd)
	return nil
}

func (d *DryRunExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	logRecorded(cmd)
	return nil, nil
}

func (d *DryRunExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	return d.Inner.Output(cmd)
}

func (d *DryRunExecutor) LookPath(file string) (string, error) {
	return d.Inner.LookPath(file)
}

func (d *DryRunExecutor) IsRoot() bool  { return d.Inner.IsRoot() }
func (d *DryRunExecutor) CanSudo() bool { return true }

func logRecorded(cmd *exec.Cmd) {
	logger := logging.GetLogger("dry-run")
	logger.Info().Strs("args", cmd.Args).Msg("would run")
}
