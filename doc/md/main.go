package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"
	"github.com/telegram-files/gate/pkg/commands/root"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: md <output dir>")
	}

	cmd, err := root.CobraCommand()
	if err != nil {
		log.Fatal(err)
	}
	cmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(cmd, os.Args[1]); err != nil {
		log.Fatal(err)
	}
}
