//go:build !darwin && !linux
// +build !darwin,!linux

package logger

import "os"

func GetTerminalInfo(*os.File) TerminalInfo {
	return TerminalInfo{}
}

func writeStringWithColor(file *os.File, text string) {
	file.WriteString(text)
}
