package config

// PackConfig contains settings from the [pack] section.
//
// Command-line flags always take precedence over these.
type PackConfig struct {
	Level      string
	Encryption string
	DirMarkers bool
}

// ForPack returns configuration for pack.
func (l *Loader) ForPack() (c PackConfig) {
	if l.cfg == nil {
		return c
	}

	sec, err := l.cfg.GetSection("pack")
	if err != nil {
		return c
	}

	c.Level = sec.Key("level").Value()
	c.Encryption = sec.Key("encryption").Value()
	c.DirMarkers, _ = sec.Key("dir-markers").Bool()

	return
}

// ForPack calls Loader.ForPack on the DefaultLoader instance.
func ForPack() (c PackConfig) {
	return DefaultLoader.ForPack()
}

// UnpackConfig contains settings from the [unpack] section.
type UnpackConfig struct {
	Overwrite bool
}

// ForUnpack returns configuration for unpack.
func (l *Loader) ForUnpack() (c UnpackConfig) {
	if l.cfg == nil {
		return c
	}

	sec, err := l.cfg.GetSection("unpack")
	if err != nil {
		return c
	}

	c.Overwrite, _ = sec.Key("overwrite").Bool()

	return
}

// ForUnpack calls Loader.ForUnpack on the DefaultLoader instance.
func ForUnpack() (c UnpackConfig) {
	return DefaultLoader.ForUnpack()
}
