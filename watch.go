package rgb565

import (
	"bytes"
	"context"
	"crypto/sha1"
	"os"
	"time"

	"github.com/bodgit/rgb565/pixel"
	"github.com/bodgit/rgb565/raw"
)

// Watch renders the raw file straight away and then again every interval
// until ctx is cancelled, calling fn with each image whose content differs
// from the last one delivered. A render that fails is logged and the
// previous image stands. A non-positive interval means the default of five
// seconds.
func (p *Previewer) Watch(ctx context.Context, file string, width, height int, interval time.Duration, fn func(*pixel.RGB)) error {
	if interval <= 0 {
		interval = defaultInterval * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last []byte
	for {
		switch b, err := os.ReadFile(file); {
		case err != nil:
			p.logger.Printf("Cannot read \"%s\": %s\n", file, err)
		default:
			sum := sha1.Sum(b)
			if last != nil && bytes.Equal(last, sum[:]) {
				break
			}
			m, err := pixel.Decode(raw.Words(b), width, height)
			if err != nil {
				p.logger.Printf("Cannot decode \"%s\": %s\n", file, err)
				break
			}
			last = sum[:]
			fn(m)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
