package historia

// TipoCampo define cómo se valida y serializa un campo del asistente
type TipoCampo string

const (
	Texto    TipoCampo = "texto"
	Booleano TipoCampo = "booleano"
	Numero   TipoCampo = "numero"
	Fecha    TipoCampo = "fecha"
	Catalogo TipoCampo = "catalogo"
)

// Campo es un campo de un paso
type Campo struct {
	Nombre    string    `json:"nombre"`
	Etiqueta  string    `json:"etiqueta"`
	Tipo      TipoCampo `json:"tipo"`
	Requerido bool      `json:"requerido"`
	// RequeridoSi nombra el campo booleano que vuelve obligatorio a este
	RequeridoSi string `json:"requerido_si,omitempty"`
}

// DefinicionPaso describe un paso del asistente
type DefinicionPaso struct {
	Numero      int     `json:"numero"`
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion"`
	Campos      []Campo `json:"campos"`
}

// TotalPasos es el número de pasos de la historia clínica
const TotalPasos = 7

// Pasos son los pasos de la historia clínica en orden
var Pasos = [TotalPasos]DefinicionPaso{
	{
		Numero:      1,
		Titulo:      "Motivo de Consulta",
		Descripcion: "Completa el tipo de cita y el motivo de la consulta",
		Campos: []Campo{
			{Nombre: "tipo_cita_id", Etiqueta: "Tipo de cita", Tipo: Catalogo, Requerido: true},
			{Nombre: "motivo_consulta", Etiqueta: "Motivo de consulta", Tipo: Texto, Requerido: true},
			{Nombre: "enfermedad_actual", Etiqueta: "Enfermedad actual", Tipo: Texto, Requerido: true},
		},
	},
	{
		Numero:      2,
		Titulo:      "Antecedentes Médicos",
		Descripcion: "Registra los antecedentes personales y familiares",
		Campos: []Campo{
			{Nombre: "antecedentes_personales", Etiqueta: "Antecedentes personales", Tipo: Texto},
			{Nombre: "antecedentes_familiares", Etiqueta: "Antecedentes familiares", Tipo: Texto},
			{Nombre: "tiene_alergias", Etiqueta: "¿Tiene alergias?", Tipo: Booleano},
			{Nombre: "alergias", Etiqueta: "Alergias", Tipo: Texto, RequeridoSi: "tiene_alergias"},
			{Nombre: "cirugias_previas", Etiqueta: "¿Cirugías previas?", Tipo: Booleano},
			{Nombre: "detalle_cirugias", Etiqueta: "Detalle de cirugías", Tipo: Texto, RequeridoSi: "cirugias_previas"},
			{Nombre: "toma_medicacion", Etiqueta: "¿Toma medicación?", Tipo: Booleano},
			{Nombre: "medicacion_actual", Etiqueta: "Medicación actual", Tipo: Texto, RequeridoSi: "toma_medicacion"},
		},
	},
	{
		Numero:      3,
		Titulo:      "Lesiones Deportivas",
		Descripcion: "Historial de lesiones deportivas",
		Campos: []Campo{
			{Nombre: "tiene_lesiones", Etiqueta: "¿Ha tenido lesiones?", Tipo: Booleano},
			{Nombre: "descripcion_lesiones", Etiqueta: "Descripción de lesiones", Tipo: Texto, RequeridoSi: "tiene_lesiones"},
			{Nombre: "fecha_ultima_lesion", Etiqueta: "Fecha de la última lesión", Tipo: Fecha},
			{Nombre: "medicacion_actual", Etiqueta: "Medicación actual", Tipo: Texto},
		},
	},
	{
		Numero:      4,
		Titulo:      "Signos Vitales",
		Descripcion: "Registra los signos vitales del deportista",
		Campos: []Campo{
			{Nombre: "estatura", Etiqueta: "Estatura (cm)", Tipo: Numero},
			{Nombre: "peso", Etiqueta: "Peso (kg)", Tipo: Numero},
			{Nombre: "frecuencia_cardiaca", Etiqueta: "Frecuencia cardiaca (lpm)", Tipo: Numero},
			{Nombre: "presion_arterial", Etiqueta: "Presión arterial (mmHg)", Tipo: Texto},
			{Nombre: "frecuencia_respiratoria", Etiqueta: "Frecuencia respiratoria (rpm)", Tipo: Numero},
			{Nombre: "temperatura", Etiqueta: "Temperatura (°C)", Tipo: Numero},
			{Nombre: "saturacion_oxigeno", Etiqueta: "Saturación de oxígeno (%)", Tipo: Numero},
		},
	},
	{
		Numero:      5,
		Titulo:      "Exploración Física",
		Descripcion: "Resultados de la exploración física",
		Campos: []Campo{
			{Nombre: "sistema_cardiovascular", Etiqueta: "Sistema cardiovascular", Tipo: Texto},
			{Nombre: "sistema_respiratorio", Etiqueta: "Sistema respiratorio", Tipo: Texto},
			{Nombre: "sistema_digestivo", Etiqueta: "Sistema digestivo", Tipo: Texto},
			{Nombre: "sistema_neurologico", Etiqueta: "Sistema neurológico", Tipo: Texto},
			{Nombre: "sistema_musculoesqueletico", Etiqueta: "Sistema musculoesquelético", Tipo: Texto},
		},
	},
	{
		Numero:      6,
		Titulo:      "Diagnóstico",
		Descripcion: "Diagnóstico clínico del deportista",
		Campos: []Campo{
			{Nombre: "analisis_objetivo", Etiqueta: "Análisis objetivo", Tipo: Texto},
			{Nombre: "impresion_diagnostica", Etiqueta: "Impresión diagnóstica", Tipo: Texto},
		},
	},
	{
		Numero:      7,
		Titulo:      "Plan de Tratamiento y Seguimiento",
		Descripcion: "Indicaciones, remisiones y plan de seguimiento",
		Campos: []Campo{
			{Nombre: "indicaciones_medicas", Etiqueta: "Indicaciones médicas", Tipo: Texto, Requerido: true},
			{Nombre: "recomendaciones_entrenamiento", Etiqueta: "Recomendaciones de entrenamiento", Tipo: Texto, Requerido: true},
			{Nombre: "plan_seguimiento", Etiqueta: "Plan de seguimiento", Tipo: Texto},
			{Nombre: "fecha_proximo_control", Etiqueta: "Fecha del próximo control", Tipo: Fecha},
			{Nombre: "observaciones", Etiqueta: "Observaciones", Tipo: Texto},
		},
	},
}

// Definicion devuelve la definición del paso n (1..TotalPasos)
func Definicion(n int) (DefinicionPaso, bool) {
	if n < 1 || n > TotalPasos {
		return DefinicionPaso{}, false
	}
	return Pasos[n-1], true
}

func (d DefinicionPaso) campo(nombre string) (Campo, bool) {
	for _, c := range d.Campos {
		if c.Nombre == nombre {
			return c, true
		}
	}
	return Campo{}, false
}

// valoresIniciales son los valores vacíos de los campos del paso
func (d DefinicionPaso) valoresIniciales() map[string]interface{} {
	datos := make(map[string]interface{}, len(d.Campos))
	for _, c := range d.Campos {
		if c.Tipo == Booleano {
			datos[c.Nombre] = false
		} else {
			datos[c.Nombre] = ""
		}
	}
	return datos
}
