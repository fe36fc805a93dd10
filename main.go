package main

import (
	"os"

	"github.com/connorleisz/emojiTUI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
