package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ReadPipedStdin returns stdin's content when stdin is a pipe, nil when it
// is a terminal.
func ReadPipedStdin() ([]byte, error) {
	if IsStdinTTY() {
		return nil, nil
	}
	return io.ReadAll(os.Stdin)
}
