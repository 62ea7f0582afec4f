package backend

import (
	"context"
	"encoding/json"

	"github.com/German880/Front-inder/models"
)

// HistoriasClinicas lista historias paginadas
func (c *Client) HistoriasClinicas(ctx context.Context, page, pageSize int) (*models.Paginado[models.HistoriaClinica], error) {
	var res models.Paginado[models.HistoriaClinica]
	if err := c.get(ctx, "/historias_clinicas", paginacion(page, pageSize), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// HistoriaClinica obtiene una historia por id
func (c *Client) HistoriaClinica(ctx context.Context, id string) (*models.HistoriaClinica, error) {
	var res models.HistoriaClinica
	if err := c.get(ctx, "/historias_clinicas/"+segmento(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CrearHistoria abre una historia clínica
func (c *Client) CrearHistoria(ctx context.Context, h models.HistoriaClinica) (*models.HistoriaClinica, error) {
	var res models.HistoriaClinica
	if err := c.post(ctx, "/historias_clinicas", h, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ActualizarHistoria modifica una historia clínica
func (c *Client) ActualizarHistoria(ctx context.Context, id string, cambios map[string]interface{}) (*models.HistoriaClinica, error) {
	var res models.HistoriaClinica
	if err := c.put(ctx, "/historias_clinicas/"+segmento(id), cambios, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// EliminarHistoria elimina una historia clínica
func (c *Client) EliminarHistoria(ctx context.Context, id string) error {
	return c.delete(ctx, "/historias_clinicas/"+segmento(id))
}

// CrearHistoriaCompleta envía la historia con todas sus secciones en una llamada.
// La estructura la define el backend y se pasa sin interpretar.
func (c *Client) CrearHistoriaCompleta(ctx context.Context, datos json.RawMessage) (json.RawMessage, error) {
	var res json.RawMessage
	if err := c.post(ctx, "/historias_clinicas/completa", datos, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// HistoriaCompleta obtiene la historia con todas sus secciones
func (c *Client) HistoriaCompleta(ctx context.Context, id string) (json.RawMessage, error) {
	var res json.RawMessage
	if err := c.get(ctx, "/historias_clinicas/"+segmento(id)+"/datos-completos", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GruposDeHistoria lista los grupos de respuestas de una historia
func (c *Client) GruposDeHistoria(ctx context.Context, historiaID string) ([]models.RespuestaGrupo, error) {
	var res []models.RespuestaGrupo
	err := c.get(ctx, "/historias_clinicas/"+segmento(historiaID)+"/respuesta_grupos", nil, &res)
	return res, err
}

// RespuestasDeHistoria lista las respuestas de una historia
func (c *Client) RespuestasDeHistoria(ctx context.Context, historiaID string) ([]models.FormularioRespuesta, error) {
	var res []models.FormularioRespuesta
	err := c.get(ctx, "/historias_clinicas/"+segmento(historiaID)+"/formulario_respuestas", nil, &res)
	return res, err
}

// ArchivosDeHistoria lista los archivos clínicos de una historia
func (c *Client) ArchivosDeHistoria(ctx context.Context, historiaID string) ([]models.ArchivoClinico, error) {
	var res []models.ArchivoClinico
	err := c.get(ctx, "/historias_clinicas/"+segmento(historiaID)+"/archivos_clinicos", nil, &res)
	return res, err
}
