// dip-fix-tif-refs replaces references to TIFF master files in the METS
// file of a dissemination package with references to their thumbnail,
// front thumbnail, reference image and print image derivatives. Master
// files sharing an identifier are renamed first.
//
// $ dip-fix-tif-refs xt7sf7665q87
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/config"
	"github.com/uklibraries/dipkit/repair"
)

var (
	configFile  = flag.String("c", "", "config file, default: "+config.DefaultFile())
	dipRoot     = flag.String("d", "", "root directory of dissemination packages")
	logLevel    = flag.String("l", "", "log level")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dip-fix-tif-refs [OPTIONS] ID\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(dipkit.Version)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	id := flag.Arg(0)
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Apply(config.Overrides{DIPRoot: *dipRoot, LogLevel: *logLevel})
	entry, err := cfg.Entry("dip-fix-tif-refs")
	if err != nil {
		log.Fatal(err)
	}
	entry = entry.WithField("object", id)
	p, err := repair.Open(cfg.ObjectDir(id), entry)
	if err != nil {
		entry.Fatal(err)
	}
	n, err := repair.Run(p, repair.FixTifRefs)
	if err != nil {
		entry.Fatal(err)
	}
	entry.WithField("fixed", n).Info("done")
}
