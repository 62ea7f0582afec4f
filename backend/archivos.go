package backend

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/models"
)

// SubirArchivo envía un archivo clínico como multipart (campo archivo)
func (c *Client) SubirArchivo(ctx context.Context, s models.ArchivoSubida) (*models.ArchivoClinico, error) {
	var res models.ArchivoClinico
	_, err := c.hacer(ctx, peticion{
		metodo: fiber.MethodPost,
		ruta:   "/archivos_clinicos",
		campos: map[string]string{
			"historia_clinica_id": s.HistoriaClinicaID,
			"formulario_id":       s.FormularioID,
			"grupo_id":            s.GrupoID,
		},
		archivo: &fiber.FormFile{
			Fieldname: "archivo",
			Name:      s.NombreArchivo,
			Content:   s.Contenido,
		},
		destino: &res,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DescargarArchivo obtiene el contenido de un archivo clínico
func (c *Client) DescargarArchivo(ctx context.Context, id string) (*models.Descarga, error) {
	return c.descargar(ctx, "/archivos_clinicos/"+segmento(id)+"/descargar")
}

// EliminarArchivo elimina un archivo clínico
func (c *Client) EliminarArchivo(ctx context.Context, id string) error {
	return c.delete(ctx, "/archivos_clinicos/"+segmento(id))
}

// HistoriaClinicaPDF descarga la historia clínica en PDF
func (c *Client) HistoriaClinicaPDF(ctx context.Context, historiaID string) (*models.Descarga, error) {
	return c.descargar(ctx, "/documentos/"+segmento(historiaID)+"/historia-clinica-pdf")
}

func (c *Client) descargar(ctx context.Context, ruta string) (*models.Descarga, error) {
	d := &descarga{}
	body, err := c.hacer(ctx, peticion{metodo: fiber.MethodGet, ruta: ruta, descarga: d})
	if err != nil {
		return nil, err
	}
	ct := d.contentType
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return &models.Descarga{ContentType: ct, Contenido: body}, nil
}
