package models

// Catalogo representa una tabla de catálogo administrada por el backend
type Catalogo struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// CatalogoItem representa una entrada de un catálogo (tipo de documento, sexo, estado...)
type CatalogoItem struct {
	ID         string `json:"id"`
	CatalogoID string `json:"catalogo_id"`
	Codigo     string `json:"codigo,omitempty"`
	Nombre     string `json:"nombre"`
	Activo     bool   `json:"activo"`
}

// Nombres de los catálogos que usa la aplicación
const (
	CatalogoTipoDocumento    = "tipo_documento"
	CatalogoSexo             = "sexo"
	CatalogoEstadoDeportista = "estado_deportista"
	CatalogoTipoCita         = "tipo_cita"
	CatalogoEstadoCita       = "estado_cita"
)

// Nombres de items que la aplicación busca por nombre
const (
	EstadoHistoriaAbierta = "abierta"
	EstadoCitaPendiente   = "pendiente"
	EstadoCitaConfirmada  = "confirmada"
	EstadoCitaCancelada   = "cancelada"
	EstadoCitaRealizada   = "realizada"
)
