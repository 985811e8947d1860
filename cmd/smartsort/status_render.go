package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ""
	}
}

func renderStatusLabel(kind statusKind, colorize bool) string {
	label := statusKindLabel(kind)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + label + ansiReset
		}
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
