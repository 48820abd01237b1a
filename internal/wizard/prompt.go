package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	headline = color.New(color.FgCyan)
	emphasis = color.New(color.Bold)
	alert    = color.New(color.FgYellow, color.Bold)
	failure  = color.New(color.FgRed, color.Bold)
)

// prompter reads interactive answers line by line. Every loop re-asks until
// the answer is valid; an exhausted input stream aborts the wizard instead
// of spinning.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// confirm asks a yes/no question; an empty answer means yes.
func (p *prompter) confirm(question string) (bool, error) {
	for {
		emphasis.Fprintf(p.out, "\n%s [Y/n]: ", question)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		alert.Fprintln(p.out, "\nPlease answer y or n")
	}
}

// pickIndex asks for a 1-based choice and returns the 0-based index.
func (p *prompter) pickIndex(question string, n int) (int, error) {
	for {
		emphasis.Fprintf(p.out, "\n%s [1 - %d]: ", question, n)
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if v, convErr := strconv.Atoi(answer); convErr == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		alert.Fprintf(p.out, "\nPlease enter a number [1 - %d]\n", n)
	}
}

// pickNumber asks for a number inside an inclusive range.
func (p *prompter) pickNumber(question string, lo, hi int) (int, error) {
	for {
		emphasis.Fprintf(p.out, "\n%s [%d - %d]: ", question, lo, hi)
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if v, convErr := strconv.Atoi(answer); convErr == nil && v >= lo && v <= hi {
			return v, nil
		}
		alert.Fprintf(p.out, "\nPlease enter a number [%d - %d]\n", lo, hi)
	}
}

// pickValue offers a list of values, auto-selecting a single entry with a
// notice so the user is never asked a one-answer question.
func pickValue[T any](p *prompter, what string, values []T) (T, error) {
	if len(values) == 1 {
		headline.Fprintf(p.out, "\nThere is only one available %s: %v\n", what, values[0])
		return values[0], nil
	}

	fmt.Fprintln(p.out)
	for i, v := range values {
		fmt.Fprintf(p.out, "  %d) %v\n", i+1, v)
	}
	i, err := p.pickIndex(fmt.Sprintf("Please choose a %s", what), len(values))
	if err != nil {
		var zero T
		return zero, err
	}
	return values[i], nil
}
