package search

import (
	"fmt"
	"strconv"
)

const (
	defaultPage = 0
	defaultSize = 100
)

// PageSpec is a bounded page request.
type PageSpec struct {
	Number int
	Size   int
}

func (p PageSpec) Offset() int { return p.Number * p.Size }

// resolvePage parses the string page/size inputs. Absent values take the
// defaults; present-but-malformed values fail the request rather than being
// silently defaulted.
func resolvePage(page, size string) (PageSpec, error) {
	number := defaultPage
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return PageSpec{}, fmt.Errorf("%w: page %q is not numeric", ErrInvalidRequest, page)
		}
		if n < 0 {
			return PageSpec{}, fmt.Errorf("%w: page %d is negative", ErrInvalidRequest, n)
		}
		number = n
	}
	count := defaultSize
	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return PageSpec{}, fmt.Errorf("%w: size %q is not numeric", ErrInvalidRequest, size)
		}
		if n <= 0 {
			return PageSpec{}, fmt.Errorf("%w: size %d must be positive", ErrInvalidRequest, n)
		}
		count = n
	}
	return PageSpec{Number: number, Size: count}, nil
}
