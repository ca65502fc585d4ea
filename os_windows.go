//go:build windows

package ics

const platformNewLine = "\r\n"
