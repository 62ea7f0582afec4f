package models

// ArchivoClinico es un archivo adjunto a una historia clínica
type ArchivoClinico struct {
	ID                string `json:"id,omitempty"`
	HistoriaClinicaID string `json:"historia_clinica_id"`
	FormularioID      string `json:"formulario_id,omitempty"`
	GrupoID           string `json:"grupo_id,omitempty"`
	NombreArchivo     string `json:"nombre_archivo,omitempty"`
	RutaArchivo       string `json:"ruta_archivo"`
	TipoArchivo       string `json:"tipo_archivo,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
}

// ArchivoSubida son los datos para subir un archivo clínico
type ArchivoSubida struct {
	HistoriaClinicaID string
	FormularioID      string
	GrupoID           string
	NombreArchivo     string
	Contenido         []byte
}

// Descarga es el contenido binario devuelto por el backend
type Descarga struct {
	ContentType string
	Contenido   []byte
}
