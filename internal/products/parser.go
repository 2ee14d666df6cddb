package products

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/kbukum/injector/di"
	"github.com/kbukum/injector/validation"
)

const fieldCount = 5

// ProductParser turns one CSV record, id,name,category,description,price,
// into a Product.
type ProductParser interface {
	Parse(line string) (Product, error)
}

type csvParser struct {
	di.Component
}

func (*csvParser) Parse(line string) (Product, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = fieldCount
	r.TrimLeadingSpace = true

	fields, err := r.Read()
	if err != nil {
		return Product{}, fmt.Errorf("malformed record %q: %w", line, err)
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Product{}, fmt.Errorf("invalid id %q: %w", fields[0], err)
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Product{}, fmt.Errorf("invalid price %q: %w", fields[4], err)
	}

	p := Product{
		ID:          id,
		Name:        fields[1],
		Category:    fields[2],
		Description: fields[3],
		Price:       price,
	}
	if err := validation.Validate(p); err != nil {
		return Product{}, err
	}
	return p, nil
}
