package game

import "github.com/atotto/clipboard"

func copyToClipboard(s string) error {
	if s == "" {
		s = " "
	}
	return clipboard.WriteAll(s)
}
