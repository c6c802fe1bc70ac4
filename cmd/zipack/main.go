package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/ndquang/zipack/internal/list"
	"github.com/ndquang/zipack/internal/pack"
	"github.com/ndquang/zipack/internal/unpack"
)

var opts struct {
	Pack   pack.Command   `command:"pack" alias:"p" description:"pack files and directories into a ZIP archive"`
	Unpack unpack.Command `command:"unpack" alias:"x" description:"unpack ZIP archives"`
	List   list.Command   `command:"list" alias:"l" description:"list the records of ZIP archives"`
}

func main() {
	_, err := flags.NewParser(&opts, flags.Default).Parse()
	exit(err)
}
