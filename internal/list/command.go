package list

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/ndquang/zipack"
)

type Command struct {
	Args struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the .zip files to be listed" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	for _, file := range c.Args.Files {
		infos, err := zipack.List(string(file))
		if err != nil {
			return err
		}

		if _, err = fmt.Printf("%s:\n", file); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "size\tpacked\tmodified\t\tname")

		var size, packed uint64
		for _, info := range infos {
			enc := ""
			if info.Encrypted {
				enc = "*"
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				humanize.Bytes(info.UncompressedSize),
				humanize.Bytes(info.CompressedSize),
				info.Modified.Format("2006-01-02 15:04"),
				enc,
				info.Name)

			size += info.UncompressedSize
			packed += info.CompressedSize
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t\t\t%d records\n", humanize.Bytes(size), humanize.Bytes(packed), len(infos))

		if err = w.Flush(); err != nil {
			return err
		}
	}

	return nil
}
