// dip-json derives one JSON document per structural node of a dissemination
// package: the object itself, its sections and every page, image, audio or
// video division. Documents are written to the JSON cache, one file per id.
//
// $ dip-json xt7sf7665q87
//
// $ DIPKIT_WORKERS=4 dip-json -o /tmp/json xt7sf7665q87
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/config"
	"github.com/uklibraries/dipkit/derive"
	"github.com/uklibraries/dipkit/pproc"
)

var (
	configFile  = flag.String("c", "", "config file, default: "+config.DefaultFile())
	dipRoot     = flag.String("d", "", "root directory of dissemination packages")
	jsonRoot    = flag.String("o", "", "root directory for derived documents")
	baseURL     = flag.String("u", "", "public base URL of package files")
	numWorkers  = flag.Int("w", 0, "number of workers")
	logLevel    = flag.String("l", "", "log level")
	checkOnly   = flag.Bool("check", false, "only check the package structure, write nothing")
	showVersion = flag.Bool("version", false, "show version")
)

var help = `dip-json derives metadata documents from a dissemination package

Usage:

    $ dip-json [OPTIONS] ID

`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
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
	cfg.Apply(config.Overrides{
		DIPRoot:  *dipRoot,
		JSONRoot: *jsonRoot,
		BaseURL:  *baseURL,
		Workers:  *numWorkers,
		LogLevel: *logLevel,
	})
	entry, err := cfg.Entry("dip-json")
	if err != nil {
		log.Fatal(err)
	}
	entry = entry.WithField("object", id)
	c, err := derive.Load(cfg.ObjectDir(id), id, cfg.BaseURL, entry)
	if err != nil {
		entry.Fatal(err)
	}
	if err := c.Check(); err != nil {
		entry.Fatal(err)
	}
	if *checkOnly {
		entry.Info("ok")
		return
	}
	sink := &derive.DirSink{Dir: cfg.JSONDir(id)}
	if err := sink.Prepare(); err != nil {
		entry.Fatal(err)
	}
	pool := pproc.NewPool(pproc.WithWorkers(cfg.Workers))
	if err := derive.Derive(context.Background(), c, sink, pool); err != nil {
		entry.Fatal(err)
	}
	entry.WithField("dir", sink.Dir).Info("done")
}
