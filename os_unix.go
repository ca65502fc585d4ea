//go:build !windows

package ics

const platformNewLine = "\n"
