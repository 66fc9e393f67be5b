package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"

	"github.com/32bitkid/unpack"
)

const progName = "unpack"

var log = logging.MustGetLogger(progName)

func startLogging(debug bool) {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:-8s} %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-debug] infile outfile\n", progName)
	flag.PrintDefaults()
}

func main() {
	debug := flag.Bool("debug", false, "log decode internals")
	flag.Usage = usage
	flag.Parse()
	startLogging(*debug)

	if flag.NArg() < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	res, err := unpack.Decode(in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Debugf("%s: read %d compressed bytes", inPath, res.BytesRead)
	log.Infof("%s: decompressed size %d (%dKB)", outPath, res.BytesWritten, res.BytesWritten/1024)
	return nil
}
