package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NoticeKind distingue avisos efímeros de banners descartables.
type NoticeKind string

// Tipos de aviso.
const (
	KindToast  NoticeKind = "toast"
	KindBanner NoticeKind = "banner"
)

// Notice aviso visible para el administrador.
type Notice struct {
	ID        string
	Kind      NoticeKind
	Level     string // info, warn, error
	Message   string
	CreatedAt time.Time
}

// Notices cola acotada de avisos compartida por las páginas.
type Notices struct {
	mu    sync.Mutex
	max   int
	items []Notice
}

// NewNotices construye la cola; max <= 0 usa 50.
func NewNotices(max int) *Notices {
	if max <= 0 {
		max = 50
	}
	return &Notices{max: max}
}

// Toast agrega un aviso efímero (p. ej. fallo de un cambio optimista).
func (n *Notices) Toast(level, msg string) Notice {
	return n.push(KindToast, level, msg)
}

// Banner agrega un aviso global descartable (p. ej. servicio de IA no disponible).
func (n *Notices) Banner(level, msg string) Notice {
	return n.push(KindBanner, level, msg)
}

func (n *Notices) push(kind NoticeKind, level, msg string) Notice {
	nt := Notice{ID: uuid.NewString(), Kind: kind, Level: level, Message: msg, CreatedAt: time.Now()}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, nt)
	if len(n.items) > n.max {
		n.items = append([]Notice(nil), n.items[len(n.items)-n.max:]...)
	}
	return nt
}

// List devuelve una copia de los avisos vigentes, del más antiguo al más reciente.
func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.items...)
}

// Dismiss descarta un aviso. false si no existe.
func (n *Notices) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, it := range n.items {
		if it.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}
