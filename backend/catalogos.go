package backend

import (
	"context"

	"github.com/German880/Front-inder/models"
)

// Catalogos lista todos los catálogos
func (c *Client) Catalogos(ctx context.Context) ([]models.Catalogo, error) {
	var res []models.Catalogo
	err := c.get(ctx, "/catalogos", nil, &res)
	return res, err
}

// Catalogo obtiene un catálogo por nombre
func (c *Client) Catalogo(ctx context.Context, nombre string) (*models.Catalogo, error) {
	var res models.Catalogo
	if err := c.get(ctx, "/catalogos/"+segmento(nombre), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ItemsCatalogo obtiene los items de un catálogo (tipo_documento, sexo...)
func (c *Client) ItemsCatalogo(ctx context.Context, nombre string) ([]models.CatalogoItem, error) {
	var res []models.CatalogoItem
	err := c.get(ctx, "/catalogos/"+segmento(nombre)+"/items", nil, &res)
	return res, err
}
