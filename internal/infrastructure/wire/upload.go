package wire

// RawUpload respuesta de la subida de imágenes.
type RawUpload struct {
	URL       Text `json:"url"`
	SecureURL Text `json:"secure_url"`
	Location  Text `json:"location"`
	Path      Text `json:"path"`
}

// DecodeUploadURL devuelve la URL estable de la imagen subida; vacío si no viene.
func DecodeUploadURL(body []byte) string {
	raw := decodeObject[RawUpload](body)
	return string(first(raw.SecureURL, raw.URL, raw.Location, raw.Path))
}
