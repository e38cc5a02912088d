package postmaster

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is a generic remote entity: a collection path plus the field mapping
// exchanged as JSON with the server. Entity types wrap a Record and add their
// own verbs on top of the two generic ones, fetch and upsert.
//
// A Record is not safe for concurrent use; each call chain owns its record.
type Record struct {
	entity  string
	path    string
	allowed map[string]struct{}
	fields  map[string]any
}

// newRecord creates a record for one entity type. When allowed is non-empty,
// every field name is validated against it; an unknown name fails with an
// invalid-argument error naming the field and the entity type.
func newRecord(entity, path string, allowed []string, fields map[string]any) (*Record, error) {
	var allowedSet map[string]struct{}
	if len(allowed) > 0 {
		allowedSet = make(map[string]struct{}, len(allowed))
		for _, name := range allowed {
			allowedSet[name] = struct{}{}
		}
		for name := range fields {
			if _, ok := allowedSet[name]; !ok {
				return nil, NewError(KindInvalidArgument,
					fmt.Sprintf("%s is an invalid field for %s", name, entity)).
					WithCause(ErrUnknownField)
			}
		}
	}

	if fields == nil {
		fields = map[string]any{}
	}

	return &Record{
		entity:  entity,
		path:    path,
		allowed: allowedSet,
		fields:  fields,
	}, nil
}

// Field returns the value stored under name. A name with no stored value is
// an error, never a silent nil.
func (r *Record) Field(name string) (any, error) {
	v, ok := r.fields[name]
	if !ok {
		return nil, NewError(KindInvalidArgument,
			fmt.Sprintf("%s has no field %s", r.entity, name))
	}
	return v, nil
}

// StringField returns the value stored under name as a string. Missing names
// and non-string values are errors.
func (r *Record) StringField(name string) (string, error) {
	v, err := r.Field(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", NewError(KindInvalidArgument,
			fmt.Sprintf("%s field %s is not a string", r.entity, name))
	}
	return s, nil
}

// Fields returns a copy of the record's field mapping.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// instancePath builds path/id or path/id/subAction.
func (r *Record) instancePath(id, subAction string) string {
	p := r.path + "/" + id
	if subAction != "" {
		p += "/" + subAction
	}
	return p
}

// FetchOne retrieves one entity, or one sub-action view of it, by id.
// The raw response is returned as-is for the caller to wrap.
func (r *Record) FetchOne(ctx context.Context, t Transport, id, subAction string, params map[string]string) (json.RawMessage, error) {
	if id == "" {
		return nil, NewError(KindInvalidArgument,
			fmt.Sprintf("%s fetch requires an id", r.entity)).WithCause(ErrNoID)
	}
	return t.Get(ctx, r.instancePath(id, subAction), params)
}

// FetchAll retrieves the collection. Pagination parameters pass through
// untouched; the response structure is the caller's to interpret.
func (r *Record) FetchAll(ctx context.Context, t Transport, params map[string]string) (json.RawMessage, error) {
	return t.Get(ctx, r.path, params)
}

// Upsert sends the record's fields to the server: POST against the collection
// when id is empty (create), PUT against the instance otherwise (update).
// The record is not mutated; callers merge the response when they need
// server-assigned fields.
func (r *Record) Upsert(ctx context.Context, t Transport, id, subAction string) (json.RawMessage, error) {
	if id == "" {
		return t.Post(ctx, r.path, r.fields)
	}
	return t.Put(ctx, r.instancePath(id, subAction), r.fields)
}

// Submit PUTs the record's fields against the bare collection path. Quote-style
// endpoints (rates, transit times, address validation) take the payload this
// way and answer with a computation rather than a persisted resource.
func (r *Record) Submit(ctx context.Context, t Transport) (json.RawMessage, error) {
	return t.Put(ctx, r.path, r.fields)
}

// merge folds a JSON object response into the record's field mapping.
// Whitelists do not apply here: the server may return derived fields.
func (r *Record) merge(raw json.RawMessage) error {
	var incoming map[string]any
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return NewError(KindDecode,
			fmt.Sprintf("%s response is not a JSON object", r.entity)).WithCause(err)
	}
	for k, v := range incoming {
		r.fields[k] = v
	}
	return nil
}
