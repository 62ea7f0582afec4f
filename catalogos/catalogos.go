// Package catalogos mantiene en memoria los items de catálogo que usan los
// formularios (tipos de documento, sexos, estados, tipos y estados de cita).
package catalogos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/German880/Front-inder/models"
)

// ErrCarga es el error que ve el usuario cuando falla la carga de catálogos
var ErrCarga = errors.New("Error al cargar los catálogos")

// Nombres son los catálogos que se cargan juntos
var Nombres = []string{
	models.CatalogoTipoDocumento,
	models.CatalogoSexo,
	models.CatalogoEstadoDeportista,
	models.CatalogoTipoCita,
	models.CatalogoEstadoCita,
}

// Loader obtiene los items de un catálogo del backend
type Loader interface {
	ItemsCatalogo(ctx context.Context, nombre string) ([]models.CatalogoItem, error)
}

// Cache guarda los catálogos durante ttl y los recarga al expirar
type Cache struct {
	loader Loader
	ttl    time.Duration
	log    zerolog.Logger
	ahora  func() time.Time

	mu       sync.RWMutex
	items    map[string][]models.CatalogoItem
	cargados time.Time
	carga    sync.Mutex
}

// New crea una caché vacía
func New(loader Loader, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{
		loader: loader,
		ttl:    ttl,
		log:    log.With().Str("component", "catalogos").Logger(),
		ahora:  time.Now,
	}
}

var (
	globalMu sync.RWMutex
	global   *Cache
)

// GetCache retorna la caché global
func GetCache() *Cache {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// SetCache reemplaza la caché global
func SetCache(c *Cache) {
	globalMu.Lock()
	global = c
	globalMu.Unlock()
}

func (c *Cache) vigente() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items != nil && c.ahora().Sub(c.cargados) < c.ttl
}

// Cargar trae todos los catálogos en paralelo. Si uno falla, falla la carga
// completa y se conserva lo que hubiera en caché.
func (c *Cache) Cargar(ctx context.Context) error {
	c.carga.Lock()
	defer c.carga.Unlock()
	return c.cargar(ctx)
}

func (c *Cache) cargar(ctx context.Context) error {
	resultados := make([][]models.CatalogoItem, len(Nombres))
	g, gctx := errgroup.WithContext(ctx)
	for i, nombre := range Nombres {
		i, nombre := i, nombre
		g.Go(func() error {
			items, err := c.loader.ItemsCatalogo(gctx, nombre)
			if err != nil {
				return fmt.Errorf("catálogo %s: %w", nombre, err)
			}
			resultados[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Error().Err(err).Msg("error al cargar los catálogos")
		return fmt.Errorf("%w: %w", ErrCarga, err)
	}

	items := make(map[string][]models.CatalogoItem, len(Nombres))
	total := 0
	for i, nombre := range Nombres {
		items[nombre] = resultados[i]
		total += len(resultados[i])
	}

	c.mu.Lock()
	c.items = items
	c.cargados = c.ahora()
	c.mu.Unlock()

	c.log.Info().Int("catalogos", len(Nombres)).Int("items", total).Msg("catálogos cargados")
	return nil
}

// Asegurar carga los catálogos si no están en caché o expiraron
func (c *Cache) Asegurar(ctx context.Context) error {
	if c.vigente() {
		return nil
	}
	c.carga.Lock()
	defer c.carga.Unlock()
	if c.vigente() {
		return nil
	}
	return c.cargar(ctx)
}

// Invalidar fuerza la recarga en el próximo acceso
func (c *Cache) Invalidar() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Todos devuelve todos los catálogos, cargándolos si hace falta
func (c *Cache) Todos(ctx context.Context) (map[string][]models.CatalogoItem, error) {
	if err := c.Asegurar(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make(map[string][]models.CatalogoItem, len(c.items))
	for k, v := range c.items {
		res[k] = append([]models.CatalogoItem(nil), v...)
	}
	return res, nil
}

// Items devuelve los items de un catálogo
func (c *Cache) Items(ctx context.Context, nombre string) ([]models.CatalogoItem, error) {
	if err := c.Asegurar(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.items[nombre]
	if !ok {
		return nil, fmt.Errorf("catálogo desconocido: %s", nombre)
	}
	return append([]models.CatalogoItem(nil), items...), nil
}

// BuscarPorNombre busca un item por nombre sin distinguir mayúsculas
func (c *Cache) BuscarPorNombre(ctx context.Context, catalogo, nombre string) (*models.CatalogoItem, bool, error) {
	items, err := c.Items(ctx, catalogo)
	if err != nil {
		return nil, false, err
	}
	nombre = strings.TrimSpace(nombre)
	for i := range items {
		if strings.EqualFold(strings.TrimSpace(items[i].Nombre), nombre) {
			return &items[i], true, nil
		}
	}
	return nil, false, nil
}

// Etiqueta devuelve el nombre del item con ese id, o "" si no existe o la
// caché no está cargada. No dispara cargas.
func (c *Cache) Etiqueta(catalogo, id string) string {
	if id == "" {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items[catalogo] {
		if it.ID == id {
			return it.Nombre
		}
	}
	return ""
}
