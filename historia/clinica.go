package historia

// Antecedente es una enfermedad previa codificada con CIE-11
type Antecedente struct {
	CodigoCIE11      string `json:"codigoCIE11"`
	NombreEnfermedad string `json:"nombreEnfermedad"`
	Observaciones    string `json:"observaciones,omitempty"`
}

// AntecedenteFamiliar es un antecedente de un familiar del deportista
type AntecedenteFamiliar struct {
	Antecedente
	Familiar string `json:"familiar"`
}

// Diagnostico es un diagnóstico clínico; el código CIE-11 es opcional
type Diagnostico struct {
	CodigoCIE11      string `json:"codigoCIE11,omitempty"`
	NombreEnfermedad string `json:"nombreEnfermedad"`
	Observaciones    string `json:"observaciones,omitempty"`
}

// Remision es una remisión a un especialista
type Remision struct {
	Especialista  string `json:"especialista"`
	Motivo        string `json:"motivo"`
	Prioridad     string `json:"prioridad"`
	FechaRemision string `json:"fechaRemision"`
}

// Prioridades de remisión
const (
	PrioridadNormal  = "Normal"
	PrioridadUrgente = "Urgente"
)

// Familiares que se pueden seleccionar en un antecedente familiar
var Familiares = []string{
	"Padre",
	"Madre",
	"Hermano/a",
	"Abuelo Paterno",
	"Abuela Paterna",
	"Abuelo Materno",
	"Abuela Materna",
	"Tío/a Paterno/a",
	"Tío/a Materno/a",
	"Otro",
}

// Vacunas disponibles para marcar
var Vacunas = []string{"Tétanos", "Hepatitis", "Influenza", "COVID-19", "Fiebre Amarilla", "Otras"}

// Especialistas a los que se puede remitir
var Especialistas = []string{"Psicólogo", "Fisiatra", "Nutricionista", "Fisioterapeuta", "Cardiólogo", "Ortopedista"}

func contiene(lista []string, v string) bool {
	for _, s := range lista {
		if s == v {
			return true
		}
	}
	return false
}
