/*
Package rgb565 is a library for previewing headerless RGB565 image dumps.

It reads raw files, decodes them to RGB888, and renders them as PNG images,
either once, periodically as the file is rewritten, or for every raw file
found under a directory.
*/
package rgb565

import (
	"errors"
	"log"
)

var errNoCatalog = errors.New("rgb565: no catalog")

type Previewer struct {
	db     *Catalog
	logger *log.Logger
}

// New returns a Previewer logging to logger. If file is not empty the
// catalog stored there is opened, or created, for use by Scan and List.
func New(file string, logger *log.Logger) (*Previewer, error) {
	p := &Previewer{
		logger: logger,
	}
	if file != "" {
		db, err := NewCatalog(file)
		if err != nil {
			return nil, err
		}
		p.db = db
	}
	return p, nil
}

func (p *Previewer) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}

// List returns every file recorded in the catalog.
func (p *Previewer) List() ([]Entry, error) {
	if p.db == nil {
		return nil, errNoCatalog
	}
	return p.db.List()
}
