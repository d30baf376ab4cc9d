package golang

import (
	"bufio"
	"io"
	"strings"
)

// ParseWorkFile returns the directories named by use directives in a go.work
// file, in file order.
func ParseWorkFile(r io.Reader) ([]string, error) {
	var dirs []string
	inUse := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		if inUse {
			if line == ")" {
				inUse = false
				continue
			}
			dirs = append(dirs, strings.Trim(line, `"`))
			continue
		}

		switch {
		case line == "use (" || line == "use(":
			inUse = true
		case strings.HasPrefix(line, "use "):
			dirs = append(dirs, strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "use ")), `"`))
		}
	}

	return dirs, scanner.Err()
}
