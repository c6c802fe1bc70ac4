package unpack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/ndquang/zipack"
	"github.com/ndquang/zipack/internal"
	"github.com/ndquang/zipack/internal/config"
	"github.com/ndquang/zipack/util"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

type Command struct {
	Dir        flags.Filename `short:"C" long:"dir" description:"unpack into this directory instead of a new one named after each archive"`
	Password   string         `short:"p" long:"password" description:"password for encrypted records"`
	Overwrite  bool           `short:"f" long:"overwrite" description:"replace files that already exist"`
	NoProgress bool           `long:"no-progress" description:"replace the progress bar with occasional log lines"`
	Args       struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the .zip files to be unpacked" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Command) Execute(args []string) (err error) {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	if path, err := config.Load(ctx); err != nil {
		log.Printf(`load config file "%s" error: %v`, path, err)
	}
	c.Overwrite = c.Overwrite || config.ForUnpack().Overwrite

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		c.logger = internal.NewLogger(i, n, string(file))
		c.logger.Printf("start unpacking")

		if err = c.unpack(ctx, string(file)); err == nil {
			success++
			continue
		}

		if errors.Is(err, context.Canceled) {
			c.logger.Printf("unpack was interrupted")
			break
		}

		c.logger.Printf("unpack error: %v", err)
	}

	log.Printf("successfully unpacked %d/%d archives", success, n)
	return nil
}

func (c *Command) unpack(ctx context.Context, name string) error {
	dir, output := string(c.Dir), string(c.Dir)
	if dir == "" {
		var err error
		if dir, output, err = c.outputDir(name); err != nil {
			return err
		}
	}

	if err := zipack.Unpack(ctx, name, dir, func(options *zipack.UnpackOptions) {
		options.Password = c.Password
		options.Overwrite = c.Overwrite
		options.OnProgress = c.onProgress(name)
	}); err != nil {
		return err
	}

	c.logger.Printf(`done unpacking into "%s"`, output)
	return nil
}

// outputDir returns the directory to unpack into plus the directory to report to the user.
//
// Archives whose records all share a root directory unpack right next to the archive so
// the root does not end up nested inside another directory named after the archive. Every
// other archive gets a fresh directory named after its stem. The archive's headers are
// inspected before anything is created, so an unreadable archive leaves no directory
// behind.
func (c *Command) outputDir(name string) (dir, output string, err error) {
	infos, err := zipack.List(name)
	if err != nil {
		return "", "", err
	}

	parent := filepath.Dir(name)

	if len(infos) > 0 {
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}

		if root := internal.FindRootDir(names); root != "" {
			return parent, filepath.Join(parent, root), nil
		}
	}

	stem, _ := util.StemAndExt(name)
	if dir, err = util.MkExclDir(parent, stem, 0755); err != nil {
		return "", "", fmt.Errorf("create output directory error: %w", err)
	}

	return dir, dir, nil
}

// onProgress returns the reporter to attach to the engine: a byte progress bar by default,
// throttled log lines with --no-progress.
//
// Progress is measured in compressed bytes against the archive size so the bar may finish
// shy of 100%; the ratio 1 report closes it regardless.
func (c *Command) onProgress(name string) zipack.ProgressFunc {
	if c.NoProgress {
		sometimes := rate.Sometimes{Interval: 5 * time.Second}
		return func(processed, total int64, ratio float64) {
			if ratio == 1 {
				return
			}

			sometimes.Do(func() {
				c.logger.Printf("unpacked %s/%s (%.1f%%) so far", humanize.Bytes(uint64(processed)), humanize.Bytes(uint64(total)), ratio*100)
			})
		}
	}

	var bar *progressbar.ProgressBar
	return func(processed, total int64, ratio float64) {
		if bar == nil {
			bar = internal.DefaultBytes(total, fmt.Sprintf(`unpacking "%s"`, filepath.Base(name)))
		}

		_ = bar.Set64(processed)
		if ratio == 1 {
			_ = bar.Close()
		}
	}
}
