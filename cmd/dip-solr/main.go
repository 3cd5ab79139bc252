// dip-solr maps the derived documents of an object to Solr documents. The
// Solr directory of the object is replaced. With -bundle all documents are
// also written to a single JSON lines file, compressed by suffix (.zst,
// .gz).
//
// $ dip-solr xt7sf7665q87
//
// $ dip-solr -bundle xt7sf7665q87.jsonl.zst xt7sf7665q87
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/config"
	"github.com/uklibraries/dipkit/pproc"
	"github.com/uklibraries/dipkit/solr"
)

var (
	configFile  = flag.String("c", "", "config file, default: "+config.DefaultFile())
	jsonRoot    = flag.String("i", "", "root directory of derived documents")
	solrRoot    = flag.String("o", "", "root directory for solr documents")
	bundleFile  = flag.String("bundle", "", "also write all documents to this file as JSON lines")
	numWorkers  = flag.Int("w", 0, "number of workers")
	logLevel    = flag.String("l", "", "log level")
	showVersion = flag.Bool("version", false, "show version")
)

var help = `dip-solr maps derived documents to solr documents

Usage:

    $ dip-solr [OPTIONS] ID

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
		JSONRoot: *jsonRoot,
		SolrRoot: *solrRoot,
		Workers:  *numWorkers,
		LogLevel: *logLevel,
	})
	entry, err := cfg.Entry("dip-solr")
	if err != nil {
		log.Fatal(err)
	}
	entry = entry.WithField("object", id)
	conv := &solr.Converter{
		Pool: pproc.NewPool(pproc.WithWorkers(cfg.Workers)),
		Log:  entry,
	}
	var bundle io.WriteCloser
	if *bundleFile != "" {
		if bundle, err = solr.CreateBundle(*bundleFile); err != nil {
			entry.Fatal(err)
		}
		conv.Bundle = bundle
	}
	n, err := conv.Convert(context.Background(), cfg.JSONDir(id), cfg.SolrDir(id))
	if bundle != nil {
		if cerr := bundle.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		entry.Fatal(err)
	}
	entry.WithField("count", n).Info("done")
}
