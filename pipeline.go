package rgb565

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/rgb565/pixel"
	"github.com/bodgit/rgb565/raw"
)

const numWorkers = 10

type job struct {
	file          string
	width, height int
}

func (p *Previewer) findFiles(ctx context.Context, base string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			// Only files named with a size are considered raw images
			w, h := SizeFromName(file)
			width, height, err := ParseSize(w, h)
			if err != nil {
				return nil
			}

			if _, err := raw.DecodeConfig(info.Size(), width, height); err != nil {
				p.logger.Printf("Skipping \"%s\": %s\n", file, err)
				return nil
			}

			select {
			case out <- job{file, width, height}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *Previewer) renderFile(j job, opts Options) error {
	b, err := os.ReadFile(j.file)
	if err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))
	output := j.file + ".png"

	e, err := p.db.Lookup(j.file)
	if err != nil {
		return err
	}
	if e != nil && e.SHA1 == sha && e.Width == j.width && e.Height == j.height && e.Output == output {
		if _, err := os.Stat(output); err == nil {
			p.logger.Printf("Unchanged \"%s\"\n", j.file)
			return nil
		}
	}

	m, err := pixel.Decode(raw.Words(b), j.width, j.height)
	if err != nil {
		// Not fatal, the file may be rewritten while it is being read
		p.logger.Printf("Cannot decode \"%s\": %s\n", j.file, err)
		return nil
	}

	if err := WritePNGFile(output, m, j.file, opts); err != nil {
		return err
	}
	p.logger.Printf("Rendered \"%s\" to \"%s\"\n", j.file, output)

	return p.db.Record(Entry{
		Source: j.file,
		SHA1:   sha,
		Width:  j.width,
		Height: j.height,
		Output: output,
	})
}

func (p *Previewer) renderWorker(ctx context.Context, in <-chan job, opts Options) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if err := p.renderFile(j, opts); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and renders every raw file named with a WIDTHxHEIGHT
// extension to a PNG alongside it, recording each one in the catalog. Files
// that are unchanged since they were last rendered are skipped.
func (p *Previewer) Scan(path string, opts Options) error {
	if p.db == nil {
		return errNoCatalog
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := p.renderWorker(ctx, files, opts)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
