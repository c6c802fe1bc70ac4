package pack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/klauspost/compress/flate"
	"github.com/ndquang/zipack"
	"github.com/ndquang/zipack/internal"
	"github.com/ndquang/zipack/internal/config"
	"github.com/ndquang/zipack/util"
	"github.com/schollz/progressbar/v3"
	"github.com/yeka/zip"
	"golang.org/x/time/rate"
)

type Command struct {
	Output     flags.Filename `short:"o" long:"output" description:"name of the archive to create; defaults to the first path's stem plus .zip, never clobbering an existing file"`
	Password   string         `short:"p" long:"password" description:"encrypt every record with this password"`
	Encryption string         `short:"e" long:"encryption" choice:"zipcrypto" choice:"aes128" choice:"aes192" choice:"aes256" description:"encryption method to pair with --password; default is zipcrypto which virtually every extractor can read"`
	Level      string         `short:"l" long:"level" description:"compression level: store, fastest, default, best, or a digit from 1 to 9"`
	DirMarkers bool           `long:"dir-markers" description:"record directories as well so empty ones survive a round trip"`
	NoProgress bool           `long:"no-progress" description:"replace the progress bar with occasional log lines"`
	Args       struct {
		Paths []flags.Filename `positional-arg-name:"path" description:"the files and directories to be packed" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	if path, err := config.Load(ctx); err != nil {
		log.Printf(`load config file "%s" error: %v`, path, err)
	}
	cfg := config.ForPack()
	if c.Level == "" {
		c.Level = cfg.Level
	}
	if c.Encryption == "" {
		c.Encryption = cfg.Encryption
	}
	c.DirMarkers = c.DirMarkers || cfg.DirMarkers

	level, err := parseLevel(c.Level)
	if err != nil {
		return err
	}

	encryption, err := parseEncryption(c.Encryption)
	if err != nil {
		return err
	}

	paths := make([]string, len(c.Args.Paths))
	for i, file := range c.Args.Paths {
		paths[i] = string(file)
	}

	var resolveOptFns []func(*zipack.ResolveOptions)
	if c.DirMarkers {
		resolveOptFns = append(resolveOptFns, zipack.WithDirMarkers)
	}
	entries := zipack.Resolve(paths, resolveOptFns...)
	if len(entries) == 0 {
		return fmt.Errorf("nothing to pack: none of the given paths could be resolved")
	}

	name := string(c.Output)
	if name == "" {
		stem, _ := util.StemAndExt(paths[0])

		f, err := util.OpenExclFile(".", stem, zipack.Ext, 0644)
		if err != nil {
			return fmt.Errorf("create archive error: %w", err)
		}
		name = f.Name()
		_ = f.Close()
	}

	c.logger = log.New(os.Stderr, fmt.Sprintf(`["%s"] - `, util.TruncateRightWithSuffix(filepath.Base(name), 30, "...")), 0)
	c.logger.Printf("start packing %d entries", len(entries))

	if err = zipack.Pack(ctx, entries, name, func(options *zipack.PackOptions) {
		options.Password = c.Password
		options.Encryption = encryption
		options.Level = level
		options.OnProgress = c.onProgress(name)
	}); err != nil {
		_ = os.Remove(name)

		if errors.Is(err, context.Canceled) {
			c.logger.Printf("pack was interrupted")
			return nil
		}

		return err
	}

	if fi, err := os.Stat(name); err == nil {
		c.logger.Printf(`successfully packed %d entries into "%s" (%s)`, len(entries), name, humanize.Bytes(uint64(fi.Size())))
	} else {
		c.logger.Printf(`successfully packed %d entries into "%s"`, len(entries), name)
	}

	return nil
}

// onProgress returns the reporter to attach to the engine: a byte progress bar by default,
// throttled log lines with --no-progress.
func (c *Command) onProgress(name string) zipack.ProgressFunc {
	if c.NoProgress {
		sometimes := rate.Sometimes{Interval: 5 * time.Second}
		return func(processed, total int64, ratio float64) {
			if ratio == 1 {
				return
			}

			sometimes.Do(func() {
				c.logger.Printf("packed %s/%s (%.1f%%) so far", humanize.Bytes(uint64(processed)), humanize.Bytes(uint64(total)), ratio*100)
			})
		}
	}

	var bar *progressbar.ProgressBar
	return func(processed, total int64, ratio float64) {
		if bar == nil {
			bar = internal.DefaultBytes(total, fmt.Sprintf(`packing "%s"`, filepath.Base(name)))
		}

		_ = bar.Set64(processed)
		if ratio == 1 {
			_ = bar.Close()
		}
	}
}

func parseLevel(s string) (int, error) {
	switch s {
	case "", "default":
		return flate.DefaultCompression, nil
	case "store":
		return flate.NoCompression, nil
	case "fastest":
		return flate.BestSpeed, nil
	case "best":
		return flate.BestCompression, nil
	}

	switch v, err := strconv.Atoi(s); {
	case err != nil:
		return 0, fmt.Errorf(`unknown compression level "%s"`, s)
	case v < flate.NoCompression || v > flate.BestCompression:
		return 0, fmt.Errorf("compression level must be between %d and %d, got %d", flate.NoCompression, flate.BestCompression, v)
	default:
		return v, nil
	}
}

func parseEncryption(s string) (zip.EncryptionMethod, error) {
	switch s {
	case "", "zipcrypto":
		return zip.StandardEncryption, nil
	case "aes128":
		return zip.AES128Encryption, nil
	case "aes192":
		return zip.AES192Encryption, nil
	case "aes256":
		return zip.AES256Encryption, nil
	default:
		return 0, fmt.Errorf(`unknown encryption method "%s"`, s)
	}
}
