package backend

import (
	"context"

	"github.com/German880/Front-inder/models"
)

// CrearRespuestaGrupo crea el grupo que agrupa las respuestas de un paso
func (c *Client) CrearRespuestaGrupo(ctx context.Context, g models.RespuestaGrupo) (*models.RespuestaGrupo, error) {
	var res models.RespuestaGrupo
	if err := c.post(ctx, "/respuesta_grupos", g, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RespuestasDeGrupo lista las respuestas de un grupo
func (c *Client) RespuestasDeGrupo(ctx context.Context, grupoID string) ([]models.FormularioRespuesta, error) {
	var res []models.FormularioRespuesta
	err := c.get(ctx, "/respuesta_grupos/"+segmento(grupoID)+"/respuestas", nil, &res)
	return res, err
}

// CrearRespuesta guarda una respuesta
func (c *Client) CrearRespuesta(ctx context.Context, r models.FormularioRespuesta) (*models.FormularioRespuesta, error) {
	var res models.FormularioRespuesta
	if err := c.post(ctx, "/formulario_respuestas", r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CrearRespuestasBatch guarda pares campo/valor de un grupo
func (c *Client) CrearRespuestasBatch(ctx context.Context, b models.RespuestasBatch) ([]models.FormularioRespuesta, error) {
	var res []models.FormularioRespuesta
	err := c.post(ctx, "/formulario_respuestas/batch", b, &res)
	return res, err
}

// CrearRespuestasBulk guarda respuestas con la estructura completa
func (c *Client) CrearRespuestasBulk(ctx context.Context, respuestas []models.FormularioRespuesta) ([]models.FormularioRespuesta, error) {
	var res []models.FormularioRespuesta
	err := c.post(ctx, "/formulario_respuestas/bulk", models.RespuestasBulk{Respuestas: respuestas}, &res)
	return res, err
}

// ActualizarRespuesta modifica una respuesta
func (c *Client) ActualizarRespuesta(ctx context.Context, id string, cambios map[string]interface{}) (*models.FormularioRespuesta, error) {
	var res models.FormularioRespuesta
	if err := c.put(ctx, "/formulario_respuestas/"+segmento(id), cambios, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EliminarRespuesta elimina una respuesta
func (c *Client) EliminarRespuesta(ctx context.Context, id string) error {
	return c.delete(ctx, "/formulario_respuestas/"+segmento(id))
}
