package main

import (
	"fmt"
	"strings"
)

// parseConfigFlag strips --config from args wherever it appears before "--".
func parseConfigFlag(args []string) (string, []string, error) {
	path := ""
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		switch {
		case arg == "--config":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--config expects a value")
			}
			path = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
			if strings.TrimSpace(path) == "" {
				return "", nil, fmt.Errorf("--config expects a value")
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return path, remaining, nil
}
