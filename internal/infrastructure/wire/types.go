// Package wire traduce las representaciones heterogéneas del backend (nombres de
// campo variables, ids envueltos en {"$oid": ...}, números como texto) a las
// entidades canónicas del dominio.
//
// Los tipos de este paquete implementan json.Unmarshaler y nunca devuelven error:
// un valor con forma inesperada queda en su valor por defecto. Las funciones
// Normalize* son totales y puras.
package wire

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ID identificador que puede llegar como texto, número o {"$oid": "..."}.
type ID string

// UnmarshalJSON implementa json.Unmarshaler.
func (i *ID) UnmarshalJSON(b []byte) error {
	*i = ID(resolveID(b))
	return nil
}

func resolveID(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{':
		var ref struct {
			OID json.RawMessage `json:"$oid"`
			ID  json.RawMessage `json:"_id"`
		}
		if json.Unmarshal(b, &ref) != nil {
			return ""
		}
		if len(ref.OID) > 0 {
			return resolveID(ref.OID)
		}
		if len(ref.ID) > 0 {
			return resolveID(ref.ID)
		}
		return ""
	case 'n', 't', 'f', '[':
		return ""
	default:
		// número
		return string(b)
	}
}

// Text acepta texto, número o booleano y lo guarda como string.
type Text string

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = ""
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) == nil {
			*t = Text(strings.TrimSpace(s))
		}
	case 't', 'f':
		*t = Text(b)
	case 'n', '{', '[':
	default:
		*t = Text(b)
	}
	return nil
}

// Number valor numérico tolerante: acepta número o texto numérico.
// Set indica que el valor vino y pudo interpretarse; nunca contiene NaN.
type Number struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		raw = strings.TrimPrefix(raw, "$")
	} else if b[0] == 'n' || b[0] == 't' || b[0] == 'f' || b[0] == '{' || b[0] == '[' {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.Value, n.Set = d, true
	return nil
}

// Int parte entera del número (0 si no vino).
func (n Number) Int() int { return int(n.Value.IntPart()) }

// Flag booleano tolerante: true/false, "true"/"si"/"1", números distintos de cero.
type Flag struct {
	Value bool
	Set   bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case 't':
		*f = Flag{Value: true, Set: true}
	case 'f':
		*f = Flag{Value: false, Set: true}
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "si", "sí", "yes", "on":
			*f = Flag{Value: true, Set: true}
		case "false", "0", "no", "off", "":
			*f = Flag{Value: false, Set: true}
		}
	case 'n', '{', '[':
	default:
		if v, err := strconv.ParseFloat(string(b), 64); err == nil {
			*f = Flag{Value: v != 0, Set: true}
		}
	}
	return nil
}

// Time fecha tolerante: RFC3339, "2006-01-02", {"$date": ...} o epoch en milisegundos.
type Time struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	t.Time = parseTime(b)
	return nil
}

func parseTime(b []byte) time.Time {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return time.Time{}
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return time.Time{}
		}
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC()
			}
		}
		return time.Time{}
	case '{':
		var wrapped struct {
			Date json.RawMessage `json:"$date"`
		}
		if json.Unmarshal(b, &wrapped) != nil || len(wrapped.Date) == 0 {
			return time.Time{}
		}
		return parseTime(wrapped.Date)
	case 'n', 't', 'f', '[':
		return time.Time{}
	default:
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	}
}

// StringList lista de textos: ["a","b"], "a" , "a,b" o [{"url": "a"}].
type StringList []string

// UnmarshalJSON implementa json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	*l = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				*l = append(*l, p)
			}
		}
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(b, &items) != nil {
			return nil
		}
		for _, it := range items {
			if s := listItem(it); s != "" {
				*l = append(*l, s)
			}
		}
	}
	return nil
}

func listItem(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			URL Text `json:"url"`
			Src Text `json:"src"`
		}
		if json.Unmarshal(b, &obj) != nil {
			return ""
		}
		return string(first(obj.URL, obj.Src))
	}
	var t Text
	_ = t.UnmarshalJSON(b)
	return string(t)
}

// List lista tolerante de objetos: si no llega un arreglo queda vacía y los
// elementos que no se pueden decodificar se omiten.
type List[T any] []T

// UnmarshalJSON implementa json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = nil
	var items []json.RawMessage
	if json.Unmarshal(b, &items) != nil {
		return nil
	}
	for _, it := range items {
		var v T
		if json.Unmarshal(it, &v) == nil {
			*l = append(*l, v)
		}
	}
	return nil
}

// first devuelve el primer texto no vacío.
func first[S ~string](vals ...S) S {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstNumber devuelve el primer número presente.
func firstNumber(vals ...Number) Number {
	for _, v := range vals {
		if v.Set {
			return v
		}
	}
	return Number{Value: decimal.Zero}
}

// firstFlag devuelve el primer booleano presente.
func firstFlag(vals ...Flag) Flag {
	for _, v := range vals {
		if v.Set {
			return v
		}
	}
	return Flag{}
}

// activeFlag resuelve la bandera activo: sin valor en el payload el backend
// considera activo el registro.
func activeFlag(vals ...Flag) bool {
	f := firstFlag(vals...)
	if !f.Set {
		return true
	}
	return f.Value
}

func firstTime(vals ...Time) time.Time {
	for _, v := range vals {
		if !v.IsZero() {
			return v.Time
		}
	}
	return time.Time{}
}
