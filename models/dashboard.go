package models

import "time"

// Tipos de actividad del tablero
const (
	ActividadCita       = "cita"
	ActividadHistoria   = "historia"
	ActividadArchivo    = "archivo"
	ActividadDeportista = "deportista"
)

// ActividadItem es una línea de actividad reciente o próxima
type ActividadItem struct {
	ID          string `json:"id"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
	Color       string `json:"color"`
}

// EstadisticasDashboard son los datos del tablero principal
type EstadisticasDashboard struct {
	TotalDeportistas     int             `json:"total_deportistas"`
	HistoriasClinicas    int             `json:"historias_clinicas"`
	CitasProximas        int             `json:"citas_proximas"`
	ActividadReciente    []ActividadItem `json:"actividad_reciente"`
	ProximasActividades  []ActividadItem `json:"proximas_actividades"`
	FuentesNoDisponibles []string        `json:"fuentes_no_disponibles,omitempty"`
	FechaGeneracion      time.Time       `json:"fecha_generacion"`
}
