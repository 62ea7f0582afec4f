package models

// Cita representa una cita agendada para un deportista
type Cita struct {
	ID            string        `json:"id,omitempty"`
	DeportistaID  string        `json:"deportista_id"`
	Fecha         string        `json:"fecha"`
	Hora          string        `json:"hora"`
	TipoCitaID    string        `json:"tipo_cita_id"`
	EstadoCitaID  string        `json:"estado_cita_id"`
	Observaciones string        `json:"observaciones,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty"`
	Deportista    *Deportista   `json:"deportista,omitempty"`
	TipoCita      *CatalogoItem `json:"tipo_cita,omitempty"`
	EstadoCita    *CatalogoItem `json:"estado_cita,omitempty"`
}

// CitaVista es una cita lista para mostrar en la agenda
type CitaVista struct {
	Cita
	HoraCorta        string `json:"hora_corta"`
	DeportistaNombre string `json:"deportista_nombre,omitempty"`
	TipoNombre       string `json:"tipo_nombre,omitempty"`
	EstadoNombre     string `json:"estado_nombre,omitempty"`
	EstadoColor      string `json:"estado_color"`
}

// DiaAgenda agrupa las citas de un día
type DiaAgenda struct {
	Fecha string      `json:"fecha"`
	Citas []CitaVista `json:"citas"`
}
