package selector

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestRunFallbackChoices(testingInstance *testing.T) {
	paths := []string{"a.py", "b.py", "c.py"}
	testCases := []struct {
		name             string
		input            string
		expectedCanceled bool
		expectedSelected []string
	}{
		{name: "select all", input: "a\n", expectedSelected: []string{"a.py", "b.py", "c.py"}},
		{name: "select all long form", input: "all\n", expectedSelected: []string{"a.py", "b.py", "c.py"}},
		{name: "select none", input: "n\n", expectedSelected: []string{}},
		{name: "cancel", input: "c\n", expectedCanceled: true},
		{name: "empty line cancels", input: "\n", expectedCanceled: true},
		{name: "end of input cancels", input: "", expectedCanceled: true},
		{name: "indices in given order", input: "3,1\n", expectedSelected: []string{"c.py", "a.py"}},
		{name: "duplicate indices collapse", input: "2,2,2\n", expectedSelected: []string{"b.py"}},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subtest *testing.T) {
			var output bytes.Buffer
			result, runError := RunFallback(paths, strings.NewReader(testCase.input), &output)
			if runError != nil {
				subtest.Fatalf("RunFallback returned error: %v", runError)
			}
			if result.Canceled != testCase.expectedCanceled {
				subtest.Fatalf("Canceled = %v, expected %v", result.Canceled, testCase.expectedCanceled)
			}
			if !testCase.expectedCanceled && !reflect.DeepEqual(result.Selected, testCase.expectedSelected) {
				subtest.Errorf("Selected = %v, expected %v", result.Selected, testCase.expectedSelected)
			}
		})
	}
}

func TestRunFallbackRepromptsOnInvalidInput(testingInstance *testing.T) {
	paths := []string{"a.py", "b.py"}
	var output bytes.Buffer
	result, runError := RunFallback(paths, strings.NewReader("7\nbanana\n2\n"), &output)
	if runError != nil {
		testingInstance.Fatalf("RunFallback returned error: %v", runError)
	}
	if result.Canceled {
		testingInstance.Fatalf("expected a confirmed selection after reprompts")
	}
	if !reflect.DeepEqual(result.Selected, []string{"b.py"}) {
		testingInstance.Errorf("Selected = %v, expected [b.py]", result.Selected)
	}
	promptCount := strings.Count(output.String(), fallbackMenuPrompt)
	if promptCount != 3 {
		testingInstance.Errorf("prompt shown %d times, expected 3", promptCount)
	}
}

func TestRunFallbackListsPathsWithIndices(testingInstance *testing.T) {
	var output bytes.Buffer
	_, _ = RunFallback([]string{"src/main.py"}, strings.NewReader("a\n"), &output)
	if !strings.Contains(output.String(), "  1. src/main.py") {
		testingInstance.Errorf("menu output missing numbered entry: %q", output.String())
	}
}

func TestConfirmEmptySelection(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes short", input: "y\n", expected: true},
		{name: "yes complete", input: "yes\n", expected: true},
		{name: "default declines", input: "\n", expected: false},
		{name: "explicit no", input: "no\n", expected: false},
		{name: "end of input declines", input: "", expected: false},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subtest *testing.T) {
			var output bytes.Buffer
			confirmed := ConfirmEmptySelection(strings.NewReader(testCase.input), &output)
			if confirmed != testCase.expected {
				subtest.Errorf("ConfirmEmptySelection(%q) = %v, expected %v", testCase.input, confirmed, testCase.expected)
			}
		})
	}
}
