package json

import (
	"io"
	"os"
)

// ReadFromFile will read JSON data from the specified file and write the
// decoded data to value.
func ReadFromFile(filename string, value interface{}) error {
	return readFromFile(filename, value)
}

// WriteToFile will write value as indented JSON to the specified file.
// The file is written to a temporary file in the same directory first and
// then renamed, so that partial writes are never visible.
func WriteToFile(filename string, perm os.FileMode, indent string,
	value interface{}) error {
	return writeToFile(filename, perm, indent, value)
}

// WriteWithIndent will write value as indented JSON to w.
func WriteWithIndent(w io.Writer, indent string, value interface{}) error {
	return writeWithIndent(w, indent, value)
}
