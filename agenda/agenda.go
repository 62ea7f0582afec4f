// Package agenda arma la vista de calendario de las citas.
package agenda

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/German880/Front-inder/models"
)

// Límites del rango de la agenda
const (
	DiasPorDefecto = 7
	MaxDias        = 31
)

// ErrHoraInvalida se devuelve cuando la hora no es HH:MM ni HH:MM:SS
var ErrHoraInvalida = errors.New("Hora inválida (HH:MM)")

// Etiquetador resuelve el nombre de un item de catálogo
type Etiquetador interface {
	Etiqueta(catalogo, id string) string
}

// ColorEstado devuelve la clase de color para el estado de una cita
func ColorEstado(estado string) string {
	switch strings.ToLower(strings.TrimSpace(estado)) {
	case models.EstadoCitaPendiente:
		return "bg-yellow-100 text-yellow-700"
	case models.EstadoCitaConfirmada:
		return "bg-green-100 text-green-700"
	case models.EstadoCitaCancelada:
		return "bg-red-100 text-red-700"
	case models.EstadoCitaRealizada:
		return "bg-blue-100 text-blue-700"
	}
	return "bg-gray-100 text-gray-700"
}

// FormatearHora recorta HH:MM:SS a HH:MM. Una hora vacía se muestra como "-".
func FormatearHora(hora string) string {
	hora = strings.TrimSpace(hora)
	if hora == "" {
		return "-"
	}
	partes := strings.Split(hora, ":")
	if len(partes) < 2 {
		return hora
	}
	return partes[0] + ":" + partes[1]
}

// NormalizarHora acepta HH:MM o HH:MM:SS y devuelve HH:MM:SS
func NormalizarHora(hora string) (string, error) {
	hora = strings.TrimSpace(hora)
	for _, layout := range []string{models.FormatoHora, "15:04"} {
		if t, err := time.Parse(layout, hora); err == nil {
			return t.Format(models.FormatoHora), nil
		}
	}
	return "", ErrHoraInvalida
}

// ValidarCita revisa los campos obligatorios de una cita y normaliza la hora.
// Devuelve los errores por campo; vacío si es válida.
func ValidarCita(c *models.Cita) map[string]string {
	errs := map[string]string{}
	requeridos := map[string]string{
		"deportista_id": c.DeportistaID,
		"fecha":         c.Fecha,
		"hora":          c.Hora,
		"tipo_cita_id":  c.TipoCitaID,
	}
	for campo, valor := range requeridos {
		if strings.TrimSpace(valor) == "" {
			errs[campo] = "Requerido"
		}
	}
	if _, ok := errs["fecha"]; !ok {
		if _, err := time.Parse(models.FormatoFecha, strings.TrimSpace(c.Fecha)); err != nil {
			errs["fecha"] = "Fecha inválida (AAAA-MM-DD)"
		}
	}
	if _, ok := errs["hora"]; !ok {
		h, err := NormalizarHora(c.Hora)
		if err != nil {
			errs["hora"] = err.Error()
		} else {
			c.Hora = h
		}
	}
	return errs
}

// LimitarDias interpreta el parámetro dias de la agenda. Vacío usa el valor
// por defecto; cualquier otro valor debe ser un entero entre 1 y MaxDias.
func LimitarDias(texto string) (int, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return DiasPorDefecto, nil
	}
	dias, err := strconv.Atoi(texto)
	if err != nil || dias < 1 || dias > MaxDias {
		return 0, fmt.Errorf("dias debe estar entre 1 y %d", MaxDias)
	}
	return dias, nil
}

func nombreEstado(c models.Cita, et Etiquetador) string {
	if c.EstadoCita != nil && c.EstadoCita.Nombre != "" {
		return c.EstadoCita.Nombre
	}
	if et == nil {
		return ""
	}
	return et.Etiqueta(models.CatalogoEstadoCita, c.EstadoCitaID)
}

// Vista une la cita con las etiquetas que muestra el calendario
func Vista(c models.Cita, et Etiquetador) models.CitaVista {
	v := models.CitaVista{
		Cita:         c,
		HoraCorta:    FormatearHora(c.Hora),
		EstadoNombre: nombreEstado(c, et),
	}
	if c.Deportista != nil {
		v.DeportistaNombre = c.Deportista.NombreCompleto()
	}
	if c.TipoCita != nil && c.TipoCita.Nombre != "" {
		v.TipoNombre = c.TipoCita.Nombre
	} else if et != nil {
		v.TipoNombre = et.Etiqueta(models.CatalogoTipoCita, c.TipoCitaID)
	}
	v.EstadoColor = ColorEstado(v.EstadoNombre)
	return v
}

// EsCancelada indica si la cita está en estado cancelada
func EsCancelada(c models.Cita, et Etiquetador) bool {
	return strings.EqualFold(nombreEstado(c, et), models.EstadoCitaCancelada)
}

func ordenarPorFechaHora(citas []models.CitaVista) {
	sort.SliceStable(citas, func(i, j int) bool {
		if citas[i].Fecha != citas[j].Fecha {
			return citas[i].Fecha < citas[j].Fecha
		}
		return citas[i].Hora < citas[j].Hora
	})
}

// AgruparPorDia arma un día de agenda por cada fecha en [desde, desde+dias),
// con sus citas ordenadas por hora. Los días sin citas se incluyen vacíos.
func AgruparPorDia(citas []models.Cita, desde time.Time, dias int, et Etiquetador) []models.DiaAgenda {
	inicio := time.Date(desde.Year(), desde.Month(), desde.Day(), 0, 0, 0, 0, desde.Location())
	res := make([]models.DiaAgenda, dias)
	indice := make(map[string]int, dias)
	for i := 0; i < dias; i++ {
		f := inicio.AddDate(0, 0, i).Format(models.FormatoFecha)
		res[i] = models.DiaAgenda{Fecha: f, Citas: []models.CitaVista{}}
		indice[f] = i
	}
	for _, c := range citas {
		i, ok := indice[c.Fecha]
		if !ok {
			continue
		}
		res[i].Citas = append(res[i].Citas, Vista(c, et))
	}
	for i := range res {
		ordenarPorFechaHora(res[i].Citas)
	}
	return res
}

// Proximas devuelve las citas desde hoy que no están canceladas, en orden
// cronológico. limite <= 0 no limita.
func Proximas(citas []models.Cita, hoy time.Time, limite int, et Etiquetador) []models.CitaVista {
	desde := hoy.Format(models.FormatoFecha)
	var res []models.CitaVista
	for _, c := range citas {
		if c.Fecha < desde || EsCancelada(c, et) {
			continue
		}
		res = append(res, Vista(c, et))
	}
	ordenarPorFechaHora(res)
	if limite > 0 && len(res) > limite {
		res = res[:limite]
	}
	return res
}
