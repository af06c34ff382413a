package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptConfirm asks once on in. Anything but y/yes, a read error or a
// non-interactive input declines.
func promptConfirm(in io.Reader, out io.Writer, interactive bool) func() bool {
	return func() bool {
		if !interactive {
			fmt.Fprintln(out, "\nstdin is not a terminal, pass --auto-approve to skip confirmation")
			return false
		}
		fmt.Fprint(out, "\nProceed? [y/N]: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
