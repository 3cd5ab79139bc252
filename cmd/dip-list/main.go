// dip-list prints the structure of dissemination packages: one line per
// division with its id and reference file, or with -g the content file
// groups. Identifiers are taken from the arguments or, if there are none,
// from stdin, one per line.
//
// $ dip-list xt7sf7665q87
// * xt7sf7665q87_1 - Section
// * xt7sf7665q87_1_1 0001/0001.jpg
//
// $ cat ids.txt | dip-list -g
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/uklibraries/dipkit"
	"github.com/uklibraries/dipkit/config"
	"github.com/uklibraries/dipkit/derive"
	"github.com/uklibraries/dipkit/mets"
	"github.com/uklibraries/dipkit/pproc"
)

var (
	configFile  = flag.String("c", "", "config file, default: "+config.DefaultFile())
	dipRoot     = flag.String("d", "", "root directory of dissemination packages")
	listGroups  = flag.Bool("g", false, "list content file groups instead of divisions")
	numWorkers  = flag.Int("w", 0, "number of workers")
	logLevel    = flag.String("l", "", "log level")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dip-list [OPTIONS] [ID ...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(dipkit.Version)
		os.Exit(0)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Apply(config.Overrides{DIPRoot: *dipRoot, Workers: *numWorkers, LogLevel: *logLevel})
	entry, err := cfg.Entry("dip-list")
	if err != nil {
		log.Fatal(err)
	}
	list := derive.List
	if *listGroups {
		list = derive.ListGroups
	}
	proc := pproc.NewProcessor(func(ctx context.Context, id string) ([]byte, error) {
		filename := filepath.Join(cfg.ObjectDir(id), "data", "mets.xml")
		doc, err := mets.ReadFile(filename)
		if err != nil {
			entry.WithField("object", id).Error(err)
			return nil, nil
		}
		var buf bytes.Buffer
		if err := list(&buf, id, doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}, pproc.WithWorkers(cfg.Workers))
	var r io.Reader = os.Stdin
	if flag.NArg() > 0 {
		r = strings.NewReader(strings.Join(flag.Args(), "\n"))
	}
	if err := proc.Process(context.Background(), r, os.Stdout); err != nil {
		entry.Fatal(err)
	}
}
