package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmFunc prompts the user for confirmation and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// PromptFunc prompts the user for free-text input and returns the response.
type PromptFunc func(prompt string) (string, error)

// SelectFunc prompts the user to select one option from a list. Returns 0-based index.
type SelectFunc func(title string, options []string) (int, error)

// PromptKit bundles all prompt function types for dependency injection.
type PromptKit struct {
	Prompt  PromptFunc
	Confirm ConfirmFunc
	Select  SelectFunc
}

// NewPromptKit returns huh-based prompts on a terminal and plain line
// prompts reading in and writing out otherwise.
func NewPromptKit(in io.Reader, out io.Writer, tty bool) PromptKit {
	if tty {
		return PromptKit{
			Prompt:  huhPrompt,
			Confirm: huhConfirm,
			Select:  huhSelect,
		}
	}
	lr := newLineReader(in, out)
	return PromptKit{
		Prompt:  lr.prompt,
		Confirm: lr.confirm,
		Select:  lr.choose,
	}
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

func huhConfirm(prompt string) (bool, error) {
	var result bool
	err := huh.NewConfirm().
		Title(prompt).
		Value(&result).
		Run()
	return result, err
}

func huhPrompt(prompt string) (string, error) {
	var result string
	err := huh.NewInput().
		Title(prompt).
		Value(&result).
		Run()
	return result, err
}

func huhSelect(title string, options []string) (int, error) {
	var result int
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&result).
		Run()
	return result, err
}

// lineReader prompts on a plain stream. All prompts of a kit share one
// buffered reader so piped input is consumed line by line.
type lineReader struct {
	r *bufio.Reader
	w io.Writer
}

func newLineReader(in io.Reader, out io.Writer) *lineReader {
	return &lineReader{r: bufio.NewReader(in), w: out}
}

// NewConfirmFunc creates a ConfirmFunc reading a y/N answer from in.
// Anything but y or yes, including end of input, means no.
func NewConfirmFunc(in io.Reader, out io.Writer) ConfirmFunc {
	return newLineReader(in, out).confirm
}

// NewPromptFunc creates a PromptFunc reading one line from in.
func NewPromptFunc(in io.Reader, out io.Writer) PromptFunc {
	return newLineReader(in, out).prompt
}

// NewSelectFunc creates a SelectFunc reading a 1-based choice from in.
func NewSelectFunc(in io.Reader, out io.Writer) SelectFunc {
	return newLineReader(in, out).choose
}

func (lr *lineReader) readLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (lr *lineReader) confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprintf(lr.w, "%s [y/N] ", prompt)
	answer, err := lr.readLine()
	if errors.Is(err, io.EOF) {
		_, _ = fmt.Fprintln(lr.w)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (lr *lineReader) prompt(prompt string) (string, error) {
	_, _ = fmt.Fprintf(lr.w, "%s: ", prompt)
	answer, err := lr.readLine()
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: no input", prompt)
	}
	return answer, err
}

func (lr *lineReader) choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("%s: nothing to choose from", title)
	}

	_, _ = fmt.Fprintln(lr.w, title)
	for i, o := range options {
		_, _ = fmt.Fprintf(lr.w, "  %d) %s\n", i+1, o)
	}
	_, _ = fmt.Fprintf(lr.w, "Choice [1-%d]: ", len(options))

	answer, err := lr.readLine()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%s: no input", title)
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("invalid choice %q", answer)
	}
	return n - 1, nil
}
