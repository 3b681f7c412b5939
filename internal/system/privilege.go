package system

import (
	"fmt"
	"os/exec"
)

// PrivilegeChecker makes sure commands that need root can run.
type PrivilegeChecker interface {
	Check() error
}

// SudoChecker succeeds immediately for root or a cached sudo timestamp,
// otherwise asks sudo to validate interactively.
type SudoChecker struct {
	Exec Executor
}

func (s SudoChecker) Check() error {
	if s.Exec.IsRoot() || s.Exec.CanSudo() {
		return nil
	}
	if err := s.Exec.Run(exec.Command("sudo", "-v")); err != nil {
		return fmt.Errorf("could not obtain administrative privileges: %w", err)
	}
	return nil
}

// Elevated prefixes name with sudo unless the process already runs as root.
func Elevated(e Executor, name string, args ...string) (string, []string) {
	if e.IsRoot() {
		return name, args
	}
	return "sudo", append([]string{name}, args...)
}
