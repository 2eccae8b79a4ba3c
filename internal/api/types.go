package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Object is a record returned by /objects or /objects/{id}. Only the id is
// interpreted; every other field is kept verbatim in Raw.
type Object struct {
	ID  int64
	Raw json.RawMessage
}

// UnmarshalJSON keeps a copy of the payload and extracts the id, which may be
// encoded as a number or a numeric string. Payloads of any other shape, or
// with an id that is not an integer, are kept as-is with a zero ID.
func (o *Object) UnmarshalJSON(data []byte) error {
	o.Raw = append(json.RawMessage(nil), data...)
	o.ID = 0

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil
	}
	if id, err := parseID(head.ID); err == nil {
		o.ID = id
	}
	return nil
}

// MarshalJSON re-emits the original payload unchanged.
func (o Object) MarshalJSON() ([]byte, error) {
	if len(o.Raw) == 0 {
		return json.Marshal(map[string]int64{"id": o.ID})
	}
	return o.Raw, nil
}

// Clone returns a deep copy so callers cannot alias stored payloads.
func (o Object) Clone() Object {
	return Object{ID: o.ID, Raw: append(json.RawMessage(nil), o.Raw...)}
}

// Fields decodes the top-level fields of the object.
func (o Object) Fields() (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(o.Raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(o.Raw, &fields); err != nil {
		return nil, fmt.Errorf("decode object %d: %w", o.ID, err)
	}
	return fields, nil
}

// FieldNames returns the sorted top-level field names.
func (o Object) FieldNames() []string {
	fields, err := o.Fields()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a scalar field rendered as text, or "" when absent.
func (o Object) String(field string) string {
	fields, err := o.Fields()
	if err != nil {
		return ""
	}
	return scalarText(fields[field])
}

// Title picks a display title from the common naming fields.
func (o Object) Title() string {
	for _, field := range []string{"title", "name", "label"} {
		if v := strings.TrimSpace(o.String(field)); v != "" {
			return v
		}
	}
	return fmt.Sprintf("#%d", o.ID)
}

// Pagination carries the server-reported totals for a list query.
type Pagination struct {
	TotalObjects int `json:"totalObjects"`
	TotalPages   int `json:"totalPages"`
}

// ObjectPage is one page of /objects.
type ObjectPage struct {
	Objects    []Object
	Pagination Pagination
}

type objectEnvelope struct {
	Items        []Object `json:"items"`
	Objects      []Object `json:"objects"`
	TotalObjects *int     `json:"totalObjects"`
	TotalPages   *int     `json:"totalPages"`
}

// decodeObjectPage accepts either a bare array (pagination from headers) or
// an envelope object whose totals take precedence over headers.
func decodeObjectPage(body json.RawMessage, header http.Header) (ObjectPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ObjectPage{Pagination: paginationFromHeader(header, 0)}, nil
	}

	if trimmed[0] == '[' {
		var items []Object
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ObjectPage{}, err
		}
		return ObjectPage{Objects: items, Pagination: paginationFromHeader(header, len(items))}, nil
	}

	var env objectEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ObjectPage{}, err
	}
	items := env.Items
	if items == nil {
		items = env.Objects
	}
	pagination := paginationFromHeader(header, len(items))
	if env.TotalObjects != nil {
		pagination.TotalObjects = *env.TotalObjects
	}
	if env.TotalPages != nil {
		pagination.TotalPages = *env.TotalPages
	}
	return ObjectPage{Objects: items, Pagination: pagination}, nil
}

func paginationFromHeader(header http.Header, pageLen int) Pagination {
	count, hasCount := headerInt(header, headerTotalCount)
	pages, hasPages := headerInt(header, headerTotalPages)
	perPage, hasPerPage := headerInt(header, headerPerPage)

	p := Pagination{TotalObjects: pageLen}
	if pageLen > 0 {
		p.TotalPages = 1
	}
	if hasCount {
		p.TotalObjects = count
		if !hasPages && hasPerPage && perPage > 0 {
			p.TotalPages = (count + perPage - 1) / perPage
		}
	}
	if hasPages {
		p.TotalPages = pages
	}
	return p
}

func headerInt(header http.Header, name string) (int, bool) {
	if header == nil {
		return 0, false
	}
	raw := strings.TrimSpace(header.Get(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseID(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("object id %q is not an integer", s)
		}
		return id, nil
	}
	var id int64
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return 0, fmt.Errorf("object id %s is not an integer", string(trimmed))
	}
	return id, nil
}

func scalarText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '{', '[':
		return ""
	}
	return string(trimmed)
}
