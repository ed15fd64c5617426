package model

import (
	"fmt"
	"strings"
)

// Category is one of the three fixed activity classifications.
type Category string

const (
	CategoryProductive Category = "productive"
	CategoryPersonal   Category = "personal"
	CategorySleep      Category = "sleep"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryProductive, CategoryPersonal, CategorySleep}

func (c Category) Valid() bool {
	switch c {
	case CategoryProductive, CategoryPersonal, CategorySleep:
		return true
	}
	return false
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// DefaultActivityName is used when an activity is started without a name.
func DefaultActivityName(c Category) string {
	return fmt.Sprintf("My %s time", c)
}
