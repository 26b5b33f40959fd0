//go:build !unix

package exec_commander

import "os/exec"

func configureProcessGroup(_ *exec.Cmd) {}
