package daemon

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Detacher runs a Primitive and turns the result into an Outcome.
type Detacher struct {
	primitive Primitive
	logger    logrus.FieldLogger

	chdir    func(dir string) error
	getwd    func() (string, error)
	redirect func() error
}

// NewDetacher creates a Detacher around p. A nil logger discards output.
func NewDetacher(p Primitive, logger logrus.FieldLogger) *Detacher {
	return &Detacher{
		primitive: p,
		logger:    orDiscard(logger),
		chdir:     os.Chdir,
		getwd:     os.Getwd,
		redirect:  redirectStdio,
	}
}

// Detach detaches the process and reports the result. Failures are logged
// and reflected in Outcome.Succeeded; the process keeps running either way.
func (d *Detacher) Detach(noChdir, noClose bool) Outcome {
	opts := Options{NoChdir: noChdir, NoClose: noClose}

	succeeded := d.detach(opts)

	wd, err := d.getwd()
	if err != nil {
		d.logger.WithError(err).Warn("Failed to read working directory after detach")
		wd = ""
	}

	return Outcome{Succeeded: succeeded, WorkingDirectory: wd}
}

func (d *Detacher) detach(opts Options) bool {
	if err := d.primitive.Detach(opts); err != nil {
		d.logger.WithError(err).Warn("Detach failed")
		return false
	}

	// daemon(3) ignores a failed chdir.
	if !opts.NoChdir {
		root := rootDir()
		if err := d.chdir(root); err != nil {
			d.logger.WithError(err).WithField("dir", root).Warn("Failed to change to root directory")
		}
	}

	if !opts.NoClose {
		if err := d.redirect(); err != nil {
			d.logger.WithError(err).Warn("Detach failed")
			return false
		}
	}

	return true
}

// RootDir returns the directory a detach without NoChdir moves to.
func RootDir() string {
	return rootDir()
}
