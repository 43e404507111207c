package dto

import (
	"time"

	"github.com/jhoicas/subastas-admin/internal/application/state"
)

// NoticeResponse aviso visible en el panel.
type NoticeResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToNoticeResponses mapea los avisos vigentes.
func ToNoticeResponses(in []state.Notice) []NoticeResponse {
	out := make([]NoticeResponse, len(in))
	for i, n := range in {
		out[i] = NoticeResponse{ID: n.ID, Kind: string(n.Kind), Level: n.Level, Message: n.Message, CreatedAt: n.CreatedAt}
	}
	return out
}

// UploadResponse URL estable de la imagen subida.
type UploadResponse struct {
	URL string `json:"url"`
}
