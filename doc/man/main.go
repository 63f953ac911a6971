package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"
	"github.com/telegram-files/gate/pkg/commands/root"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: man <output dir>")
	}

	cmd, err := root.CobraCommand()
	if err != nil {
		log.Fatal(err)
	}
	header := doc.GenManHeader{
		Title:   "TFGATE",
		Section: "1",
		Source:  "https://github.com/telegram-files/gate",
	}
	if err := doc.GenManTree(cmd, &header, os.Args[1]); err != nil {
		log.Fatal(err)
	}
}
