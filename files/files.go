package files

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Read returns the rows of the file at path. Line terminators ("\n" or
// "\r\n") are stripped; a trailing terminator does not produce an extra row.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return lines, nil
}

// Write creates or truncates path and writes every row followed by '\n'.
func Write(path string, lines []string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		writer.WriteString(line)
		writer.WriteByte('\n')
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
