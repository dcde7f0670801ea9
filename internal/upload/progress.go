package upload

import "io"

// progressReader reports whole percentages of size as bytes are read.
type progressReader struct {
	r      io.Reader
	size   int64
	read   int64
	last   int
	report func(int)
}

func newProgressReader(r io.Reader, size int64, report func(int)) *progressReader {
	return &progressReader{r: r, size: size, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.size > 0 {
		pct := int(p.read * 100 / p.size)
		if pct > 99 {
			// 100 is reported once the upload is acknowledged
			pct = 99
		}
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
