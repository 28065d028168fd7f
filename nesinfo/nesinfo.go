// nesinfo reads an iNES ROM file and prints its header fields: mirroring
// mode, mapper number, PRG/CHR sizes in bytes, and battery/trainer/NES 2.0
// flags. It exits non-zero on any I/O or parse failure.
package main

import (
	"flag"
	"io/ioutil"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/nescore/nes6502/rom"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		glog.Exitf("usage: %s <rom-file>", flag.Arg(0))
	}
	path := flag.Arg(0)

	data, err := ioutil.ReadFile(path)
	if err != nil {
		glog.Exitf("%+v", errors.Wrapf(err, "reading %s", path))
	}

	r, err := rom.Parse(data)
	if err != nil {
		glog.Exitf("%+v", errors.Wrapf(err, "parsing %s", path))
	}

	glog.Infof("%s: mapper=%d mirroring=%s battery=%t trainer=%t nes2=%t prg=%d bytes chr=%d bytes",
		path, r.Mapper, r.Mirroring, r.Battery, r.HasTrainer, r.NES2, len(r.PRG), len(r.CHR))
}
