// Package backend es el cliente tipado de la API REST de historias clínicas.
// Cada operación hace una sola petición; no hay reintentos.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrNoDisponible envuelve los fallos de transporte (conexión, timeout)
var ErrNoDisponible = errors.New("backend no disponible")

// Client habla con la API externa. Es inmutable; ConToken devuelve una copia.
type Client struct {
	baseURL string
	timeout time.Duration
	token   string
	log     zerolog.Logger
}

// New crea un cliente para baseURL (por ejemplo http://localhost:8000/api/v1)
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// ConToken devuelve un cliente que envía Authorization: Bearer <token>
func (c *Client) ConToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL devuelve la URL base configurada
func (c *Client) BaseURL() string {
	return c.baseURL
}

var (
	mu      sync.RWMutex
	cliente *Client
)

// Connect crea el cliente global y comprueba /health. Un backend caído no impide
// arrancar; se registra una advertencia.
func Connect(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	c := New(baseURL, timeout, log)
	SetClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Health(ctx); err != nil {
		c.log.Warn().Err(err).Str("base_url", c.baseURL).Msg("el backend no responde a /health")
	} else {
		c.log.Info().Str("base_url", c.baseURL).Msg("conectado al backend")
	}
	return c
}

// GetClient retorna el cliente global
func GetClient() *Client {
	mu.RLock()
	defer mu.RUnlock()
	return cliente
}

// SetClient reemplaza el cliente global
func SetClient(c *Client) {
	mu.Lock()
	cliente = c
	mu.Unlock()
}

type peticion struct {
	metodo   string
	ruta     string
	query    url.Values
	cuerpo   interface{}
	campos   map[string]string
	archivo  *fiber.FormFile
	destino  interface{}
	descarga *descarga
}

type descarga struct {
	contentType string
}

// hacer ejecuta la petición y decodifica la respuesta JSON en p.destino
func (c *Client) hacer(ctx context.Context, p peticion) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		restante := time.Until(dl)
		if restante <= 0 {
			return nil, context.DeadlineExceeded
		}
		if timeout <= 0 || restante < timeout {
			timeout = restante
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(p.metodo)
	req.SetRequestURI(c.baseURL + p.ruta)
	if len(p.query) > 0 {
		a.QueryString(p.query.Encode())
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	switch {
	case p.archivo != nil:
		args := fiber.AcquireArgs()
		for k, v := range p.campos {
			if v != "" {
				args.Set(k, v)
			}
		}
		a.FileData(p.archivo)
		a.MultipartForm(args)
		fiber.ReleaseArgs(args)
	case p.cuerpo != nil:
		a.JSON(p.cuerpo)
	default:
		a.ContentType(fiber.MIMEApplicationJSON)
	}

	var resp *fiber.Response
	if p.descarga != nil {
		resp = fiber.AcquireResponse()
		defer fiber.ReleaseResponse(resp)
		a.SetResponse(resp)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNoDisponible, p.metodo, p.ruta, err)
	}

	inicio := time.Now()
	code, body, errs := a.Bytes()
	evento := c.log.Debug().
		Str("method", p.metodo).
		Str("path", p.ruta).
		Int("status", code).
		Dur("duration", time.Since(inicio))

	if len(errs) > 0 {
		evento.Errs("errors", errs).Msg("petición al backend fallida")
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNoDisponible, p.metodo, p.ruta, errors.Join(errs...))
	}
	evento.Msg("petición al backend")

	if code < 200 || code > 299 {
		apiErr := nuevoAPIError(code, body)
		c.log.Warn().
			Str("method", p.metodo).
			Str("path", p.ruta).
			Int("status", code).
			Str("error", apiErr.Mensaje).
			Msg("el backend respondió con error")
		return nil, apiErr
	}

	if p.descarga != nil {
		p.descarga.contentType = string(resp.Header.ContentType())
	}
	if p.destino != nil && len(body) > 0 {
		if err := json.Unmarshal(body, p.destino); err != nil {
			return nil, fmt.Errorf("decodificar respuesta de %s %s: %w", p.metodo, p.ruta, err)
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, ruta string, query url.Values, destino interface{}) error {
	_, err := c.hacer(ctx, peticion{metodo: fiber.MethodGet, ruta: ruta, query: query, destino: destino})
	return err
}

func (c *Client) post(ctx context.Context, ruta string, cuerpo, destino interface{}) error {
	_, err := c.hacer(ctx, peticion{metodo: fiber.MethodPost, ruta: ruta, cuerpo: cuerpo, destino: destino})
	return err
}

func (c *Client) put(ctx context.Context, ruta string, cuerpo, destino interface{}) error {
	_, err := c.hacer(ctx, peticion{metodo: fiber.MethodPut, ruta: ruta, cuerpo: cuerpo, destino: destino})
	return err
}

func (c *Client) delete(ctx context.Context, ruta string) error {
	_, err := c.hacer(ctx, peticion{metodo: fiber.MethodDelete, ruta: ruta})
	return err
}

// segmento escapa un identificador para usarlo dentro de la ruta
func segmento(s string) string {
	return url.PathEscape(s)
}

func paginacion(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	return q
}
