package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode uint8

const (
	uiModeOff uiMode = iota
	uiModeAuto
	uiModeOn
)

var uiModes = map[string]uiMode{"": uiModeOff, "off": uiModeOff, "auto": uiModeAuto, "on": uiModeOn}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return uiModeOff, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether the progress model takes over the terminal.
// --quiet wins over auto but not over an explicit on.
func shouldUseTUI(mode uiMode, quiet bool) bool {
	return mode == uiModeOn || (mode == uiModeAuto && !quiet && isTerminal(os.Stdout))
}
