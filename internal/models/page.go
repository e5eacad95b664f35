package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Breadcrumb is one entry of a page's breadcrumb trail, root to leaf.
type Breadcrumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Breadcrumbs is an ordered breadcrumb trail stored as a JSONB column.
type Breadcrumbs []Breadcrumb

// Value implements driver.Valuer for JSONB storage.
func (b Breadcrumbs) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (b *Breadcrumbs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = nil
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("cannot scan %T into Breadcrumbs", src)
	}
}

// JSONDoc holds a raw JSON document (schema.org structured data) stored in a
// JSONB column and emitted verbatim to the rendering layer. A nil JSONDoc is
// stored and rendered as absent.
type JSONDoc []byte

// Value implements driver.Valuer for JSONB storage.
func (d JSONDoc) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

// Scan implements sql.Scanner for JSONB retrieval.
func (d *JSONDoc) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		*d = append((*d)[:0], v...)
		return nil
	case string:
		*d = JSONDoc(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONDoc", src)
	}
}

// MarshalJSON emits the document verbatim, or null when absent.
func (d JSONDoc) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores the raw document.
func (d *JSONDoc) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("models.JSONDoc: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[:0], data...)
	return nil
}

// Page is the generated landing document for one (service, city) pair.
// Pages are immutable after creation: the orchestrator creates them once and
// the only mutation is the administrative clear-all operation.
type Page struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	ServiceID       uuid.UUID      `json:"service_id" db:"service_id"`
	CityID          uuid.UUID      `json:"city_id" db:"city_id"`
	Slug            string         `json:"slug" db:"slug"`
	Title           string         `json:"title" db:"title"`
	MetaTitle       string         `json:"meta_title" db:"meta_title"`
	MetaDescription string         `json:"meta_description" db:"meta_description"`
	Keywords        pq.StringArray `json:"keywords" db:"keywords"`
	Content         string         `json:"content" db:"content"`
	CanonicalURL    string         `json:"canonical_url" db:"canonical_url"`
	Breadcrumbs     Breadcrumbs    `json:"breadcrumbs" db:"breadcrumbs"`
	StructuredData  JSONDoc        `json:"structured_data" db:"structured_data"`
	FAQSchema       JSONDoc        `json:"faq_schema,omitempty" db:"faq_schema"`
	IsGenerated     bool           `json:"is_generated" db:"is_generated"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}
