// dip-align-aip fills empty sections in the METS file of a dissemination
// package. The missing page is taken from the end of the preceding section
// and described after the matching division of the archival package.
//
// $ dip-align-aip xt7sf7665q87 xt7sf7665q87
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/config"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/repair"
)

var (
	configFile  = flag.String("c", "", "config file, default: "+config.DefaultFile())
	dipRoot     = flag.String("d", "", "root directory of dissemination packages")
	aipRoot     = flag.String("a", "", "root directory of archival packages")
	logLevel    = flag.String("l", "", "log level")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dip-align-aip [OPTIONS] ID AIP\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(dipkit.Version)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	id, aipID := flag.Arg(0), flag.Arg(1)
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Apply(config.Overrides{DIPRoot: *dipRoot, AIPRoot: *aipRoot, LogLevel: *logLevel})
	entry, err := cfg.Entry("dip-align-aip")
	if err != nil {
		log.Fatal(err)
	}
	entry = entry.WithFields(logrus.Fields{"object": id, "aip": aipID})
	p, err := repair.Open(cfg.ObjectDir(id), entry)
	if err != nil {
		entry.Fatal(err)
	}
	aip, err := mets.ReadFile(filepath.Join(cfg.AIPDir(aipID), "data", "mets.xml"))
	if err != nil {
		entry.Fatal(err)
	}
	n, err := repair.Run(p, repair.AlignAIP(aip))
	if err != nil {
		entry.Fatal(err)
	}
	entry.WithField("fixed", n).Info("done")
}
