package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode controls whether the interactive progress view is drawn.
type uiMode string

const (
	uiModeAuto uiMode = "auto" // follow the terminal
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

// readUIMode parses the --ui flag. An empty value means auto.
func readUIMode(value string) (uiMode, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	switch normalized {
	case "", string(uiModeAuto):
		return uiModeAuto, nil
	case string(uiModeOn):
		return uiModeOn, nil
	case string(uiModeOff):
		return uiModeOff, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI решает, рисовать ли прогресс: явный флаг побеждает,
// auto смотрит на терминал.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout)
}
