package backend

import (
	"context"
	"net/url"

	"github.com/German880/Front-inder/models"
)

// Deportistas lista deportistas paginados
func (c *Client) Deportistas(ctx context.Context, page, pageSize int) (*models.Paginado[models.Deportista], error) {
	var res models.Paginado[models.Deportista]
	if err := c.get(ctx, "/deportistas", paginacion(page, pageSize), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Deportista obtiene un deportista por id
func (c *Client) Deportista(ctx context.Context, id string) (*models.Deportista, error) {
	var res models.Deportista
	if err := c.get(ctx, "/deportistas/"+segmento(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// BuscarDeportistas busca por nombre, apellido o documento
func (c *Client) BuscarDeportistas(ctx context.Context, q string) ([]models.Deportista, error) {
	var res []models.Deportista
	err := c.get(ctx, "/deportistas/search", url.Values{"q": {q}}, &res)
	return res, err
}

// CrearDeportista registra un deportista
func (c *Client) CrearDeportista(ctx context.Context, d models.DeportistaCreate) (*models.Deportista, error) {
	var res models.Deportista
	if err := c.post(ctx, "/deportistas", d, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ActualizarDeportista envía los campos a modificar
func (c *Client) ActualizarDeportista(ctx context.Context, id string, cambios map[string]interface{}) (*models.Deportista, error) {
	var res models.Deportista
	if err := c.put(ctx, "/deportistas/"+segmento(id), cambios, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EliminarDeportista elimina un deportista
func (c *Client) EliminarDeportista(ctx context.Context, id string) error {
	return c.delete(ctx, "/deportistas/"+segmento(id))
}

// HistoriasDeDeportista lista las historias clínicas de un deportista
func (c *Client) HistoriasDeDeportista(ctx context.Context, deportistaID string) ([]models.HistoriaClinica, error) {
	var res []models.HistoriaClinica
	err := c.get(ctx, "/deportistas/"+segmento(deportistaID)+"/historias_clinicas", nil, &res)
	return res, err
}

// CitasDeDeportista lista las citas de un deportista
func (c *Client) CitasDeDeportista(ctx context.Context, deportistaID string) ([]models.Cita, error) {
	var res []models.Cita
	err := c.get(ctx, "/deportistas/"+segmento(deportistaID)+"/citas", nil, &res)
	return res, err
}

// ProximasCitas lista las próximas citas de un deportista
func (c *Client) ProximasCitas(ctx context.Context, deportistaID string) ([]models.Cita, error) {
	var res []models.Cita
	err := c.get(ctx, "/deportistas/"+segmento(deportistaID)+"/citas/proximas", nil, &res)
	return res, err
}
