package renew

import (
	"errors"
	"io/fs"
	"strings"

	"linkwatch/domain/lease"
	"linkwatch/infrastructure/PAL/exec_commander"
)

// permissionMarkers are lowercase fragments that renew tools and escalation
// wrappers print when refused for lack of privilege.
var permissionMarkers = []string{
	"permission denied",
	"access denied",
	"operation not permitted",
	"interactive authentication required",
	"not authorized",
	"password is required",
	"not in the sudoers",
	"not allowed to execute",
}

// classify maps an invocation to a command result. denied reports a refusal
// for lack of privilege, the only failure worth an escalation retry.
func classify(name string, res exec_commander.ExitResult) (result lease.CommandResult, denied bool) {
	output := strings.TrimSpace(string(res.Output))
	switch {
	case res.OK():
		return lease.CommandResult{Status: lease.Success}, false
	case res.TimedOut:
		return lease.CommandResult{Status: lease.Failed, Reason: lease.ReasonTimeout}, false
	case res.Canceled:
		return lease.CommandResult{Status: lease.Failed, Reason: "canceled"}, false
	case res.NotFound:
		return lease.CommandResult{Status: lease.Failed, Reason: "command not found: " + name}, false
	case errors.Is(res.Err, fs.ErrPermission), isPermissionMessage(output):
		return lease.CommandResult{Status: lease.PermissionDenied, Reason: reason(output, res.Err)}, true
	default:
		return lease.CommandResult{Status: lease.Failed, Reason: reason(output, res.Err)}, false
	}
}

func isPermissionMessage(output string) bool {
	lower := strings.ToLower(output)
	for _, m := range permissionMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func reason(output string, err error) string {
	if output != "" {
		return output
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
