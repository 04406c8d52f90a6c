/*
phlink creates the symlinks EPW needs to find the ph.x outputs:
PREFIX.dyn_qN for the dynamical matrices and both PREFIX.dvscf_qN and
PREFIX.dvscfN_1 for the potentials. Existing regular files are never
touched, so re-running is always safe.

Usage:

	phlink [flags] PREFIX
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/qe-tools/qeplot/phlink"
)

func main() {
	dvscfDir := flag.String("dvscf-dir", "./tmp/_ph0", "EPW's dvscf_dir, where the links are created")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: phlink [flags] PREFIX")
		flag.PrintDefaults()
		os.Exit(2)
	}
	prefix := flag.Arg(0)

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	logger := log.New(os.Stdout, "", 0)
	logger.Printf("[info] cwd       : %s", cwd)
	logger.Printf("[info] dvscf_dir : %s", *dvscfDir)

	if err := phlink.Link(prefix, ".", *dvscfDir, logger); err != nil {
		log.Fatalf("[error] %v", err)
	}
}
