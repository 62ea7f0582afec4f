package historia

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/German880/Front-inder/models"
)

// Store guarda las sesiones del asistente en memoria. El mapa se protege con
// mu; cada sesión se modifica con su propio mutex.
type Store struct {
	mu       sync.RWMutex
	sesiones map[string]*Sesion
	ttl      time.Duration
	ahora    func() time.Time
	log      zerolog.Logger
}

// NewStore crea un almacén cuyas sesiones expiran tras ttl sin uso
func NewStore(ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		sesiones: make(map[string]*Sesion),
		ttl:      ttl,
		ahora:    time.Now,
		log:      log.With().Str("component", "historia").Logger(),
	}
}

var (
	globalMu sync.RWMutex
	global   *Store
)

// GetStore retorna el almacén global
func GetStore() *Store {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// SetStore reemplaza el almacén global
func SetStore(s *Store) {
	globalMu.Lock()
	global = s
	globalMu.Unlock()
}

// Iniciar abre la historia clínica en el backend y crea la sesión en el paso 1.
// estadoID es el item "abierta" del catálogo de estados.
func (st *Store) Iniciar(ctx context.Context, be Backend, dep models.Deportista, estadoID string) (Vista, error) {
	h, err := be.CrearHistoria(ctx, models.HistoriaClinica{
		DeportistaID:  dep.ID,
		FechaApertura: st.ahora().Format(models.FormatoFecha),
		EstadoID:      estadoID,
	})
	if err != nil {
		return Vista{}, err
	}
	historiaID := ""
	if h != nil {
		historiaID = h.ID
	}
	if historiaID == "" {
		st.log.Warn().Str("deportista_id", dep.ID).Msg("el backend no devolvió id de historia")
	}

	s := nuevaSesion(uuid.NewString(), dep, historiaID, st.ahora)
	st.mu.Lock()
	st.sesiones[s.ID] = s
	st.mu.Unlock()

	st.log.Info().
		Str("sesion_id", s.ID).
		Str("historia_id", historiaID).
		Str("deportista_id", dep.ID).
		Msg("sesión de historia clínica iniciada")
	return s.Vista(), nil
}

func (st *Store) buscar(id string) (*Sesion, bool) {
	st.mu.RLock()
	s, ok := st.sesiones[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if st.expirada(s) {
		st.Eliminar(id)
		return nil, false
	}
	return s, true
}

func (st *Store) expirada(s *Sesion) bool {
	return st.ttl > 0 && st.ahora().Sub(s.inactivaDesde()) > st.ttl
}

// Con ejecuta fn con la sesión bloqueada y devuelve su vista actualizada.
// La vista se devuelve aunque fn falle.
func (st *Store) Con(id string, fn func(*Sesion) error) (Vista, error) {
	s, ok := st.buscar(id)
	if !ok {
		return Vista{}, ErrSesionNoEncontrada
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s)
	s.tocar()
	return s.Vista(), err
}

// Obtener devuelve la vista de una sesión
func (st *Store) Obtener(id string) (Vista, error) {
	return st.Con(id, func(*Sesion) error { return nil })
}

// Eliminar descarta una sesión
func (st *Store) Eliminar(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sesiones[id]
	delete(st.sesiones, id)
	return ok
}

// Len devuelve el número de sesiones activas
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sesiones)
}

// Purgar elimina las sesiones inactivas por más de ttl
func (st *Store) Purgar() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sesiones {
		if st.expirada(s) {
			delete(st.sesiones, id)
			n++
		}
	}
	return n
}

// Janitor purga sesiones expiradas cada intervalo hasta que ctx termina
func (st *Store) Janitor(ctx context.Context, intervalo time.Duration) {
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Purgar(); n > 0 {
				st.log.Info().Int("sesiones", n).Msg("sesiones expiradas eliminadas")
			}
		}
	}
}
