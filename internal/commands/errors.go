package commands

import (
	"errors"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

// fail prints a transition failure and maps it to an exit code.
// Local validation failures are user errors; 401-class rejections get
// the login hint; everything else is a backend error.
func fail(errOut io.Writer, err error) int {
	var v *tasklist.ValidationError
	if errors.As(err, &v) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if re, ok := service.AsRemote(err); ok && re.IsAuth() {
		fmt.Fprintf(errOut, "error: %v (run: taskman login)\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
