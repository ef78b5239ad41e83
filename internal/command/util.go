package command

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompt reads one line from in. The prompt text is only written when in is
// a terminal, and mask hides the typed characters.
func prompt(in io.Reader, out io.Writer, text string, mask bool) ([]byte, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if _, err := io.WriteString(out, text); err != nil {
			return nil, err
		}
		if mask {
			line, err := term.ReadPassword(int(f.Fd()))
			_, _ = io.WriteString(out, "\n")
			return line, err
		}
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
