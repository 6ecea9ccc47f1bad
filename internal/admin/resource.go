// Package admin implements the back-office. Each entity is described by an
// explicit Resource configuration (fields, widgets, validators and storage
// closures) instead of deriving forms from the schema at runtime.
package admin

import (
	"strings"

	"gorm.io/gorm"

	"github.com/example/cacti/internal/utils"
)

// Widget selects the form control a field renders as.
type Widget string

const (
	WidgetText        Widget = "text"
	WidgetRichText    Widget = "richtext"
	WidgetImage       Widget = "image"
	WidgetSelect      Widget = "select"
	WidgetMultiSelect Widget = "multiselect"
	WidgetCheckbox    Widget = "checkbox"
	WidgetPassword    Widget = "password"
)

// Option is one selectable choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form field of a resource.
type Field struct {
	Name     string
	Label    string
	Widget   Widget
	Required bool
	// Options supplies select choices, static or loaded from the database.
	Options func(db *gorm.DB) ([]Option, error)
}

// Cell is one rendered list-view cell. Image cells carry a thumbnail URL
// and render as an inline <img>; an empty ThumbURL renders the text.
type Cell struct {
	Text     string
	ThumbURL string
}

// Row is one rendered list-view row.
type Row struct {
	ID    uint
	Cells []Cell
}

// FormValues carries submitted (or fetched) field values by field name.
type FormValues struct {
	values map[string][]string
}

// NewFormValues returns an empty value set.
func NewFormValues() *FormValues {
	return &FormValues{values: map[string][]string{}}
}

// Get returns the first value for name, or "".
func (f *FormValues) Get(name string) string {
	if vs := f.values[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GetAll returns every value submitted for name.
func (f *FormValues) GetAll(name string) []string {
	return f.values[name]
}

// Set replaces the values for name with a single value.
func (f *FormValues) Set(name, value string) {
	f.values[name] = []string{value}
}

// SetAll replaces the values for name.
func (f *FormValues) SetAll(name string, values []string) {
	f.values[name] = values
}

// Has reports whether name was submitted at all.
func (f *FormValues) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Resource is the explicit admin configuration for one entity type.
type Resource struct {
	Slug    string
	Title   string
	Columns []string
	Fields  []Field

	Count  func(db *gorm.DB) (int64, error)
	List   func(db *gorm.DB, pg utils.Pagination) ([]Row, int64, error)
	Fetch  func(db *gorm.DB, id uint) (*FormValues, error)
	// Save persists the form; id 0 means create. Validation failures
	// return *ValidationError so the handler re-renders the form.
	Save   func(db *gorm.DB, id uint, form *FormValues) error
	Delete func(db *gorm.DB, id uint) error
}

// ValidationError carries user-facing form errors.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}
