package response

import (
	"fmt"
	"io"
	"sort"
)

func Line(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func Success(w io.Writer, message string) {
	Line(w, "%s", message)
}

// Warnings prints one line per tolerated failure
func Warnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		Line(w, "Warning: %s", warning)
	}
}

func Error(w io.Writer, message string) {
	Line(w, "Error: %s", message)
}

// ValidationError prints the field messages in field order
func ValidationError(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	Line(w, "Invalid input:")
	for _, k := range keys {
		Line(w, "  - %s", fields[k])
	}
}

func NotFound(w io.Writer, message string) {
	if message == "" {
		message = "Record not found"
	}
	Error(w, message)
}

func InternalError(w io.Writer, message string) {
	if message == "" {
		message = "Something went wrong"
	}
	Error(w, message)
}
