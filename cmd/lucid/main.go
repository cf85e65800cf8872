package main

import (
	"log"
	"os"
	"runtime"

	"github.com/corvidchess/lucid/internal/engine"
	"github.com/corvidchess/lucid/internal/uci"
)

var (
	versionName = "dev"
	gitRevision = "(null)"
)

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags)
	logger.Println("Lucid",
		"VersionName", versionName,
		"GitRevision", gitRevision,
		"RuntimeVersion", runtime.Version())

	var eng = engine.NewEngine()
	uci.Run(eng, os.Stdin, os.Stdout)
}
