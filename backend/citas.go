package backend

import (
	"context"

	"github.com/German880/Front-inder/models"
)

// Citas lista citas paginadas
func (c *Client) Citas(ctx context.Context, page, pageSize int) (*models.Paginado[models.Cita], error) {
	var res models.Paginado[models.Cita]
	if err := c.get(ctx, "/citas", paginacion(page, pageSize), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Cita obtiene una cita por id
func (c *Client) Cita(ctx context.Context, id string) (*models.Cita, error) {
	var res models.Cita
	if err := c.get(ctx, "/citas/"+segmento(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CrearCita agenda una cita
func (c *Client) CrearCita(ctx context.Context, cita models.Cita) (*models.Cita, error) {
	var res models.Cita
	if err := c.post(ctx, "/citas", cita, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ActualizarCita modifica una cita
func (c *Client) ActualizarCita(ctx context.Context, id string, cambios map[string]interface{}) (*models.Cita, error) {
	var res models.Cita
	if err := c.put(ctx, "/citas/"+segmento(id), cambios, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EliminarCita elimina una cita
func (c *Client) EliminarCita(ctx context.Context, id string) error {
	return c.delete(ctx, "/citas/"+segmento(id))
}

// DeportistasConCitasHoy lista los deportistas con cita en el día
func (c *Client) DeportistasConCitasHoy(ctx context.Context) ([]models.Deportista, error) {
	var res []models.Deportista
	err := c.get(ctx, "/citas/deportistas-con-citas-hoy", nil, &res)
	return res, err
}
