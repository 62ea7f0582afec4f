package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/German880/Front-inder/models"
)

// SubirArchivo recibe un archivo clínico (campo archivo) y lo reenvía al backend
func SubirArchivo(c *fiber.Ctx) error {
	historiaID := strings.TrimSpace(c.FormValue("historia_clinica_id"))
	if historiaID == "" {
		return falloValidacion(c, "F60", map[string]string{"historia_clinica_id": "Requerido"})
	}
	fh, err := c.FormFile("archivo")
	if err != nil {
		return falloValidacion(c, "F60", map[string]string{"archivo": "Requerido"})
	}
	if fh.Size > opciones.MaxUploadBytes {
		return fallo(c, fiber.StatusRequestEntityTooLarge, "F60",
			fmt.Sprintf("El archivo supera el tamaño máximo de %d MB", opciones.MaxUploadBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F60", "No se pudo leer el archivo")
	}
	defer f.Close()
	contenido, err := io.ReadAll(io.LimitReader(f, opciones.MaxUploadBytes+1))
	if err != nil {
		return fallo(c, fiber.StatusBadRequest, "F60", "No se pudo leer el archivo")
	}

	archivo, err := clienteDe(c).SubirArchivo(ctxDe(c), models.ArchivoSubida{
		HistoriaClinicaID: historiaID,
		FormularioID:      c.FormValue("formulario_id"),
		GrupoID:           c.FormValue("grupo_id"),
		NombreArchivo:     filepath.Base(fh.Filename),
		Contenido:         contenido,
	})
	if err != nil {
		return falloBackend(c, "F60", err, "Error al subir el archivo")
	}
	return exito(c, fiber.StatusCreated, "S60", archivo)
}

// DescargarArchivo devuelve el contenido del archivo tal como lo entrega el backend
func DescargarArchivo(c *fiber.Ctx) error {
	d, err := clienteDe(c).DescargarArchivo(ctxDe(c), c.Params("id"))
	if err != nil {
		return falloBackend(c, "F61", err, "Error al descargar el archivo")
	}
	c.Set(fiber.HeaderContentType, d.ContentType)
	return c.Status(fiber.StatusOK).Send(d.Contenido)
}

func EliminarArchivo(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := clienteDe(c).EliminarArchivo(ctxDe(c), id); err != nil {
		return falloBackend(c, "F63", err, "Error al eliminar el archivo")
	}
	return exito(c, fiber.StatusOK, "S63", fiber.Map{"message": "Archivo eliminado", "id": id})
}

// HistoriaClinicaPDF descarga la historia clínica como adjunto historia_clinica_<id>.pdf
func HistoriaClinicaPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	d, err := clienteDe(c).HistoriaClinicaPDF(ctxDe(c), id)
	if err != nil {
		return falloBackend(c, "F64", err, "Error al generar el PDF de la historia clínica")
	}
	c.Attachment(fmt.Sprintf("historia_clinica_%s.pdf", id))
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Status(fiber.StatusOK).Send(d.Contenido)
}
