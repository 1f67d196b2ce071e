package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// promptLine asks for one free-form line and returns it trimmed.
func promptLine(input *bufio.Reader, output io.Writer, label string) (string, error) {
	fmt.Fprint(output, label)
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}

// chooseOption presents a numbered list and returns the selected entry.
// Both the number and the literal value are accepted; bad input re-prompts.
func chooseOption(input *bufio.Reader, output io.Writer, label string, options []string) (string, error) {
	fmt.Fprintf(output, "Available %ss:\n", label)
	for index, option := range options {
		fmt.Fprintf(output, "  [%d] %s\n", index+1, option)
	}

	for {
		answer, err := promptLine(input, output, fmt.Sprintf("Select a %s: ", label))
		if err != nil {
			return "", err
		}
		if index, convErr := strconv.Atoi(answer); convErr == nil {
			if index >= 1 && index <= len(options) {
				return options[index-1], nil
			}
		} else if lo.Contains(options, answer) {
			return answer, nil
		}
		fmt.Fprintf(output, "Invalid %s %q, try again.\n", label, answer)
	}
}
