package selector

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	fallbackMenuPrompt        = "Select [a]ll, [n]one, comma-separated indices, or [c]ancel: "
	fallbackInvalidChoice     = "Unrecognized choice %q\n"
	fallbackInvalidIndex      = "Invalid index %q\n"
	emptySelectionPrompt      = "No files selected. Proceed with empty output? [y/N]: "
	affirmativeAnswerShort    = "y"
	affirmativeAnswerComplete = "yes"
)

// RunFallback offers a line-oriented menu over the same filtered path list,
// used when the full interactive session cannot start. End of input counts as
// cancellation.
func RunFallback(paths []string, reader io.Reader, writer io.Writer) (Result, error) {
	for pathIndex, path := range paths {
		fmt.Fprintf(writer, "%3d. %s\n", pathIndex+1, path)
	}

	lineScanner := bufio.NewScanner(reader)
	for {
		fmt.Fprint(writer, fallbackMenuPrompt)
		if !lineScanner.Scan() {
			if scanError := lineScanner.Err(); scanError != nil {
				return Result{Canceled: true}, scanError
			}
			return Result{Canceled: true}, nil
		}
		answer := strings.TrimSpace(strings.ToLower(lineScanner.Text()))
		switch answer {
		case "a", "all":
			return Result{Selected: append([]string{}, paths...)}, nil
		case "n", "none":
			return Result{Selected: []string{}}, nil
		case "c", "cancel", "":
			return Result{Canceled: true}, nil
		}

		selectedPaths, parseOk := parseIndexSelection(answer, paths, writer)
		if parseOk {
			return Result{Selected: selectedPaths}, nil
		}
	}
}

// parseIndexSelection interprets a comma-separated list of one-based indices.
func parseIndexSelection(answer string, paths []string, writer io.Writer) ([]string, bool) {
	var selectedPaths []string
	seenIndices := make(map[int]struct{})
	for _, indexToken := range strings.Split(answer, ",") {
		trimmedToken := strings.TrimSpace(indexToken)
		if trimmedToken == "" {
			continue
		}
		index, parseError := strconv.Atoi(trimmedToken)
		if parseError != nil || index < 1 || index > len(paths) {
			fmt.Fprintf(writer, fallbackInvalidIndex, trimmedToken)
			return nil, false
		}
		if _, seen := seenIndices[index-1]; seen {
			continue
		}
		seenIndices[index-1] = struct{}{}
		selectedPaths = append(selectedPaths, paths[index-1])
	}
	if selectedPaths == nil {
		fmt.Fprintf(writer, fallbackInvalidChoice, answer)
		return nil, false
	}
	return selectedPaths, true
}

// ConfirmEmptySelection asks for explicit continuation after a confirmed empty
// selection, distinguishing a deliberate empty output from a forgotten one.
func ConfirmEmptySelection(reader io.Reader, writer io.Writer) bool {
	fmt.Fprint(writer, emptySelectionPrompt)
	lineScanner := bufio.NewScanner(reader)
	if !lineScanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(lineScanner.Text()))
	return answer == affirmativeAnswerShort || answer == affirmativeAnswerComplete
}
