package products

import (
	"fmt"
	"strings"

	"github.com/kbukum/injector/di"
)

// ProductService loads products from catalog files. The first non-empty
// line of a file is a header and is skipped. Blank lines are ignored.
type ProductService interface {
	AllFromFile(path string) ([]Product, error)
	ByCategory(path, category string) ([]Product, error)
}

type productService struct {
	di.Component
	Reader FileReader    `inject:""`
	Parser ProductParser `inject:""`
}

func (s *productService) AllFromFile(path string) ([]Product, error) {
	lines, err := s.Reader.ReadLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		lines = lines[1:]
	}

	out := make([]Product, 0, len(lines))
	for _, line := range lines {
		p, err := s.Parser.Parse(line.Text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line.Number, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ByCategory matches category case-insensitively.
func (s *productService) ByCategory(path, category string) ([]Product, error) {
	all, err := s.AllFromFile(path)
	if err != nil {
		return nil, err
	}
	var out []Product
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}
