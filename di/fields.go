package di

import (
	"reflect"
	"sync"
)

// injectionPoint is a struct field tagged `inject`.
type injectionPoint struct {
	index []int
	name  string
	typ   reflect.Type
}

type fieldKey struct {
	typ      reflect.Type
	embedded bool
}

// fieldCache caches the injection points of each struct type. Entries are
// computed once and only read afterwards.
type fieldCache struct {
	mu     sync.RWMutex
	points map[fieldKey][]injectionPoint
}

func newFieldCache() *fieldCache {
	return &fieldCache{points: make(map[fieldKey][]injectionPoint)}
}

// injectionPoints returns the tagged fields declared on structType. With
// embedded set, fields of embedded structs are scanned as well.
func (c *fieldCache) injectionPoints(structType reflect.Type, embedded bool) []injectionPoint {
	key := fieldKey{typ: structType, embedded: embedded}

	c.mu.RLock()
	points, ok := c.points[key]
	c.mu.RUnlock()
	if ok {
		return points
	}

	points = scanFields(structType, nil, "", embedded)

	c.mu.Lock()
	c.points[key] = points
	c.mu.Unlock()
	return points
}

func scanFields(structType reflect.Type, parent []int, prefix string, embedded bool) []injectionPoint {
	var points []injectionPoint
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		index := append(append([]int(nil), parent...), i)

		tag, tagged := field.Tag.Lookup(injectTag)
		switch {
		case tagged && tag != "-":
			points = append(points, injectionPoint{
				index: index,
				name:  prefix + field.Name,
				typ:   field.Type,
			})
		case !tagged && embedded && field.Anonymous &&
			field.Type.Kind() == reflect.Struct && field.Type != markerType:
			points = append(points, scanFields(field.Type, index, prefix+field.Name+".", embedded)...)
		}
	}
	return points
}
