package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/idilsaglam/persons/internal/model"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// normalizeList turns a list-style response body into a uniform slice:
// an array is kept as-is, a single object becomes a one-element list and
// anything else (empty, null, scalars) is an empty list.
func normalizeList(op string, body []byte) ([]model.Person, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []model.Person{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Op: op, Err: errInvalidJSON}
	}

	res := gjson.ParseBytes(body)
	switch {
	case res.IsArray():
		elems := res.Array()
		out := make([]model.Person, 0, len(elems))
		for i, v := range elems {
			if !v.IsObject() {
				return nil, &ParseError{Op: op, Err: fmt.Errorf("element %d is not an object", i)}
			}
			out = append(out, personFrom(v))
		}
		return out, nil
	case res.IsObject():
		return []model.Person{personFrom(res)}, nil
	default:
		return []model.Person{}, nil
	}
}

// decodePerson reads a single-record body. Empty and null bodies mean the
// record is absent.
func decodePerson(op string, body []byte) (model.Person, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return model.Person{}, ErrNotFound
	}
	if !gjson.ValidBytes(body) {
		return model.Person{}, &ParseError{Op: op, Err: errInvalidJSON}
	}
	res := gjson.ParseBytes(body)
	switch {
	case res.IsObject():
		return personFrom(res), nil
	case res.Type == gjson.Null:
		return model.Person{}, ErrNotFound
	default:
		return model.Person{}, &ParseError{Op: op, Err: fmt.Errorf("expected an object, got %s", res.Type)}
	}
}

func personFrom(v gjson.Result) model.Person {
	return model.Person{
		ID:   int(v.Get("id").Int()),
		Name: v.Get("name").String(),
		Age:  int(v.Get("age").Int()),
	}
}
