package wire

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Unwrap quita el sobre {"data": ...} si existe; en otro caso devuelve el cuerpo tal cual.
func Unwrap(body []byte) []byte {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return body
	}
	var env map[string]json.RawMessage
	if json.Unmarshal(body, &env) != nil {
		return body
	}
	if data, ok := env["data"]; ok {
		return bytes.TrimSpace(data)
	}
	return body
}

// listItems extrae los elementos de un listado: arreglo directo, sobre {"data": [...]}
// o página {"items": [...]} / {"results": [...]}. Cualquier otra forma es un listado vacío.
func listItems(body []byte) []json.RawMessage {
	body = Unwrap(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '{' {
		var page map[string]json.RawMessage
		if json.Unmarshal(body, &page) != nil {
			return nil
		}
		for _, k := range []string{"items", "results", "docs"} {
			if v, ok := page[k]; ok {
				body = bytes.TrimSpace(v)
				break
			}
		}
	}
	var items []json.RawMessage
	if json.Unmarshal(body, &items) != nil {
		return nil
	}
	return items
}

// decodeList decodifica cada elemento por separado con decodeOne.
func decodeList[T any](body []byte, decodeOne func([]byte) T) []T {
	items := listItems(body)
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, decodeOne(it))
	}
	return out
}

// decodeObject decodifica el cuerpo (con o sin sobre) en raw; si no es un objeto deja raw vacío.
func decodeObject[R any](body []byte) R {
	var raw R
	if err := json.Unmarshal(Unwrap(body), &raw); err != nil {
		var zero R
		return zero
	}
	return raw
}
