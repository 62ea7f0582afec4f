package backend

import (
	"context"
	"net/url"

	"github.com/German880/Front-inder/models"
)

// Formularios lista los formularios; con modulo filtra por módulo
func (c *Client) Formularios(ctx context.Context, modulo string) ([]models.Formulario, error) {
	var q url.Values
	if modulo != "" {
		q = url.Values{"modulo": {modulo}}
	}
	var res []models.Formulario
	err := c.get(ctx, "/formularios", q, &res)
	return res, err
}

// Formulario obtiene un formulario con sus campos
func (c *Client) Formulario(ctx context.Context, id string) (*models.Formulario, error) {
	var res models.Formulario
	if err := c.get(ctx, "/formularios/"+segmento(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Plantillas lista las plantillas clínicas
func (c *Client) Plantillas(ctx context.Context) ([]models.PlantillaClinica, error) {
	var res []models.PlantillaClinica
	err := c.get(ctx, "/plantillas_clinicas", nil, &res)
	return res, err
}

// PlantillaPorSistema obtiene la plantilla de un sistema (cardiovascular, respiratorio...)
func (c *Client) PlantillaPorSistema(ctx context.Context, sistema string) (*models.PlantillaClinica, error) {
	var res models.PlantillaClinica
	if err := c.get(ctx, "/plantillas_clinicas/"+segmento(sistema), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Health comprueba que el backend responde
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}
