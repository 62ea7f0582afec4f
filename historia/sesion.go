package historia

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/German880/Front-inder/cie11"
	"github.com/German880/Front-inder/models"
)

// Backend son las llamadas a la API que necesita el asistente
type Backend interface {
	CrearHistoria(ctx context.Context, h models.HistoriaClinica) (*models.HistoriaClinica, error)
	CrearRespuestaGrupo(ctx context.Context, g models.RespuestaGrupo) (*models.RespuestaGrupo, error)
	CrearRespuestasBatch(ctx context.Context, b models.RespuestasBatch) ([]models.FormularioRespuesta, error)
}

// EstadoPaso son los datos y el estado de guardado de un paso
type EstadoPaso struct {
	Numero      int                    `json:"numero"`
	Titulo      string                 `json:"titulo"`
	Descripcion string                 `json:"descripcion"`
	Datos       map[string]interface{} `json:"datos"`
	Completado  bool                   `json:"completado"`
	GrupoID     string                 `json:"grupo_id,omitempty"`
}

// Sesion es el estado del asistente de una historia clínica.
// Los métodos deben llamarse dentro de Store.Con.
type Sesion struct {
	mu        sync.Mutex
	ultimoUso atomic.Int64
	ahora     func() time.Time

	ID                     string
	HistoriaID             string
	Deportista             models.Deportista
	PasoActual             int
	Pasos                  [TotalPasos]EstadoPaso
	AntecedentesPersonales []Antecedente
	AntecedentesFamiliares []AntecedenteFamiliar
	Vacunas                []string
	Diagnosticos           []Diagnostico
	Remisiones             []Remision
	Completada             bool
	CreadaEn               time.Time
}

func nuevaSesion(id string, dep models.Deportista, historiaID string, ahora func() time.Time) *Sesion {
	s := &Sesion{
		ahora:      ahora,
		ID:         id,
		HistoriaID: historiaID,
		Deportista: dep,
		PasoActual: 1,
		CreadaEn:   ahora(),
	}
	for i, def := range Pasos {
		s.Pasos[i] = EstadoPaso{
			Numero:      def.Numero,
			Titulo:      def.Titulo,
			Descripcion: def.Descripcion,
			Datos:       def.valoresIniciales(),
		}
	}
	s.tocar()
	return s
}

func (s *Sesion) tocar() {
	s.ultimoUso.Store(s.ahora().UnixNano())
}

func (s *Sesion) inactivaDesde() time.Time {
	return time.Unix(0, s.ultimoUso.Load())
}

func (s *Sesion) hoy() string {
	return s.ahora().Format(models.FormatoFecha)
}

// editable falla si la historia ya se completó
func (s *Sesion) editable() error {
	if s.Completada {
		return ErrSesionCompletada
	}
	return nil
}

// ActualizarCampos mezcla valores en los datos del paso
func (s *Sesion) ActualizarCampos(paso int, campos map[string]interface{}) error {
	if err := s.editable(); err != nil {
		return err
	}
	def, ok := Definicion(paso)
	if !ok {
		return ErrPasoInvalido
	}
	nuevos := make(map[string]interface{}, len(campos))
	for nombre, valor := range campos {
		c, ok := def.campo(nombre)
		if !ok {
			return &CampoDesconocidoError{Paso: paso, Campo: nombre}
		}
		v, err := normalizarValor(c, valor)
		if err != nil {
			return &ValidacionError{Paso: paso, Campos: map[string]string{nombre: err.Error()}}
		}
		nuevos[nombre] = v
	}
	for k, v := range nuevos {
		s.Pasos[paso-1].Datos[k] = v
	}
	return nil
}

// normalizarValor guarda booleanos como bool y el resto como texto
func normalizarValor(c Campo, valor interface{}) (interface{}, error) {
	if c.Tipo == Booleano {
		switch v := valor.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, errValorBooleano
			}
			return b, nil
		case nil:
			return false, nil
		}
		return nil, errValorBooleano
	}
	switch v := valor.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return nil, errValorNoSoportado
}

// Validar comprueba los campos obligatorios y formatos del paso
func (s *Sesion) Validar(paso int) error {
	def, ok := Definicion(paso)
	if !ok {
		return ErrPasoInvalido
	}
	datos := s.Pasos[paso-1].Datos
	errs := map[string]string{}
	for _, c := range def.Campos {
		valor, _ := datos[c.Nombre].(string)
		valor = strings.TrimSpace(valor)
		requerido := c.Requerido
		if c.RequeridoSi != "" {
			activo, _ := datos[c.RequeridoSi].(bool)
			requerido = requerido || activo
		}
		if c.Tipo == Booleano {
			continue
		}
		if valor == "" {
			if requerido {
				errs[c.Nombre] = "Requerido"
			}
			continue
		}
		switch c.Tipo {
		case Numero:
			if _, err := strconv.ParseFloat(valor, 64); err != nil {
				errs[c.Nombre] = "Debe ser un número"
			}
		case Fecha:
			if _, err := time.Parse(models.FormatoFecha, valor); err != nil {
				errs[c.Nombre] = "Fecha inválida (AAAA-MM-DD)"
			}
		}
	}
	if paso == 6 && len(s.Diagnosticos) == 0 {
		errs["diagnosticos"] = "Por favor agregue al menos un diagnóstico clínico"
	}
	if len(errs) > 0 {
		return &ValidacionError{Paso: paso, Campos: errs}
	}
	return nil
}

// respuestas arma el lote campo/valor del paso; las listas van como JSON
func (s *Sesion) respuestas(paso int) ([]models.RespuestaCampo, error) {
	def, _ := Definicion(paso)
	datos := s.Pasos[paso-1].Datos
	res := make([]models.RespuestaCampo, 0, len(def.Campos)+3)
	for _, c := range def.Campos {
		var valor string
		switch v := datos[c.Nombre].(type) {
		case bool:
			valor = strconv.FormatBool(v)
		case string:
			valor = v
		}
		res = append(res, models.RespuestaCampo{Campo: c.Nombre, Valor: valor})
	}

	var listas []listaPaso
	switch paso {
	case 2:
		listas = []listaPaso{
			{"antecedentes_personales_cie11", noNulo(s.AntecedentesPersonales)},
			{"antecedentes_familiares_cie11", noNulo(s.AntecedentesFamiliares)},
			{"vacunas", noNulo(s.Vacunas)},
		}
	case 6:
		listas = []listaPaso{{"diagnosticos_clinicos", noNulo(s.Diagnosticos)}}
	case 7:
		listas = []listaPaso{{"remisiones", noNulo(s.Remisiones)}}
	}
	for _, l := range listas {
		b, err := json.Marshal(l.valor)
		if err != nil {
			return nil, fmt.Errorf("serializar %s: %w", l.campo, err)
		}
		res = append(res, models.RespuestaCampo{Campo: l.campo, Valor: string(b)})
	}
	return res, nil
}

type listaPaso struct {
	campo string
	valor interface{}
}

func noNulo[T any](lista []T) []T {
	if lista == nil {
		return []T{}
	}
	return lista
}

// GuardarPaso valida el paso, crea su grupo de respuestas y envía los campos en lote
func (s *Sesion) GuardarPaso(ctx context.Context, be Backend, paso int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.HistoriaID == "" {
		return ErrHistoriaNoInicializada
	}
	if err := s.Validar(paso); err != nil {
		return err
	}
	respuestas, err := s.respuestas(paso)
	if err != nil {
		return err
	}

	grupo, err := be.CrearRespuestaGrupo(ctx, models.RespuestaGrupo{
		HistoriaClinicaID: s.HistoriaID,
		FormularioID:      "",
	})
	if err != nil {
		return err
	}
	if grupo == nil || grupo.ID == "" {
		return ErrGrupoSinID
	}

	if _, err := be.CrearRespuestasBatch(ctx, models.RespuestasBatch{
		GrupoID:    grupo.ID,
		Respuestas: respuestas,
	}); err != nil {
		return err
	}

	s.Pasos[paso-1].Completado = true
	s.Pasos[paso-1].GrupoID = grupo.ID
	return nil
}

// Siguiente guarda el paso actual y avanza. En el último paso no hace nada.
func (s *Sesion) Siguiente(ctx context.Context, be Backend) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.PasoActual >= TotalPasos {
		return nil
	}
	if err := s.GuardarPaso(ctx, be, s.PasoActual); err != nil {
		return err
	}
	s.PasoActual++
	return nil
}

// Anterior retrocede un paso sin guardar
func (s *Sesion) Anterior() {
	if s.PasoActual > 1 {
		s.PasoActual--
	}
}

// IrAPaso salta a cualquier paso sin guardar
func (s *Sesion) IrAPaso(n int) error {
	if _, ok := Definicion(n); !ok {
		return ErrPasoInvalido
	}
	s.PasoActual = n
	return nil
}

// Completar guarda el paso actual y cierra la sesión
func (s *Sesion) Completar(ctx context.Context, be Backend) error {
	if err := s.editable(); err != nil {
		return err
	}
	if err := s.GuardarPaso(ctx, be, s.PasoActual); err != nil {
		return err
	}
	s.Completada = true
	return nil
}

// Progreso es el porcentaje de avance según el paso actual
func (s *Sesion) Progreso() int {
	return s.PasoActual * 100 / TotalPasos
}

func antecedenteVerificado(codigo, observaciones string) (Antecedente, error) {
	codigo = cie11.NormalizarCodigo(codigo)
	if codigo == "" {
		return Antecedente{}, ErrCodigoRequerido
	}
	nombre, ok := cie11.BuscarEnfermedadPorCodigo(codigo)
	if !ok {
		return Antecedente{}, ErrCodigoNoVerificado
	}
	return Antecedente{
		CodigoCIE11:      codigo,
		NombreEnfermedad: nombre,
		Observaciones:    strings.TrimSpace(observaciones),
	}, nil
}

// AgregarAntecedente agrega un antecedente personal. El nombre se toma de la tabla CIE-11.
func (s *Sesion) AgregarAntecedente(codigo, observaciones string) (Antecedente, error) {
	if err := s.editable(); err != nil {
		return Antecedente{}, err
	}
	a, err := antecedenteVerificado(codigo, observaciones)
	if err != nil {
		return Antecedente{}, err
	}
	s.AntecedentesPersonales = append(s.AntecedentesPersonales, a)
	return a, nil
}

// AgregarAntecedenteFamiliar agrega un antecedente de un familiar de la lista Familiares
func (s *Sesion) AgregarAntecedenteFamiliar(codigo, familiar, observaciones string) (AntecedenteFamiliar, error) {
	if err := s.editable(); err != nil {
		return AntecedenteFamiliar{}, err
	}
	a, err := antecedenteVerificado(codigo, observaciones)
	if err != nil {
		return AntecedenteFamiliar{}, err
	}
	if !contiene(Familiares, familiar) {
		return AntecedenteFamiliar{}, ErrFamiliarRequerido
	}
	af := AntecedenteFamiliar{Antecedente: a, Familiar: familiar}
	s.AntecedentesFamiliares = append(s.AntecedentesFamiliares, af)
	return af, nil
}

// EliminarAntecedente quita un antecedente personal por índice
func (s *Sesion) EliminarAntecedente(i int) error {
	return eliminar(s, &s.AntecedentesPersonales, i)
}

// EliminarAntecedenteFamiliar quita un antecedente familiar por índice
func (s *Sesion) EliminarAntecedenteFamiliar(i int) error {
	return eliminar(s, &s.AntecedentesFamiliares, i)
}

// ToggleVacuna marca o desmarca una vacuna
func (s *Sesion) ToggleVacuna(vacuna string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if !contiene(Vacunas, vacuna) {
		return ErrVacunaDesconocida
	}
	for i, v := range s.Vacunas {
		if v == vacuna {
			s.Vacunas = append(s.Vacunas[:i], s.Vacunas[i+1:]...)
			return nil
		}
	}
	s.Vacunas = append(s.Vacunas, vacuna)
	return nil
}

// AgregarDiagnostico agrega un diagnóstico. Si trae código debe existir en
// CIE-11; sin nombre se usa el de la tabla.
func (s *Sesion) AgregarDiagnostico(d Diagnostico) (Diagnostico, error) {
	if err := s.editable(); err != nil {
		return Diagnostico{}, err
	}
	d.CodigoCIE11 = cie11.NormalizarCodigo(d.CodigoCIE11)
	d.NombreEnfermedad = strings.TrimSpace(d.NombreEnfermedad)
	d.Observaciones = strings.TrimSpace(d.Observaciones)
	if d.CodigoCIE11 != "" {
		nombre, ok := cie11.BuscarEnfermedadPorCodigo(d.CodigoCIE11)
		if !ok {
			return Diagnostico{}, ErrCodigoNoEncontrado
		}
		if d.NombreEnfermedad == "" {
			d.NombreEnfermedad = nombre
		}
	}
	if d.NombreEnfermedad == "" {
		return Diagnostico{}, ErrDiagnosticoRequerido
	}
	s.Diagnosticos = append(s.Diagnosticos, d)
	return d, nil
}

// EliminarDiagnostico quita un diagnóstico por índice
func (s *Sesion) EliminarDiagnostico(i int) error {
	return eliminar(s, &s.Diagnosticos, i)
}

// AgregarRemision agrega una remisión con fecha de hoy
func (s *Sesion) AgregarRemision(r Remision) (Remision, error) {
	if err := s.editable(); err != nil {
		return Remision{}, err
	}
	if !contiene(Especialistas, r.Especialista) {
		return Remision{}, ErrEspecialistaRequerido
	}
	r.Motivo = strings.TrimSpace(r.Motivo)
	if r.Motivo == "" {
		return Remision{}, ErrMotivoRequerido
	}
	switch r.Prioridad {
	case "":
		r.Prioridad = PrioridadNormal
	case PrioridadNormal, PrioridadUrgente:
	default:
		return Remision{}, ErrPrioridadInvalida
	}
	r.FechaRemision = s.hoy()
	s.Remisiones = append(s.Remisiones, r)
	return r, nil
}

// EliminarRemision quita una remisión por índice
func (s *Sesion) EliminarRemision(i int) error {
	return eliminar(s, &s.Remisiones, i)
}

func eliminar[T any](s *Sesion, lista *[]T, i int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(*lista) {
		return ErrIndiceInvalido
	}
	*lista = append((*lista)[:i], (*lista)[i+1:]...)
	return nil
}

// Vista es la representación JSON de una sesión
type Vista struct {
	ID                     string                `json:"id"`
	HistoriaID             string                `json:"historia_id"`
	Deportista             models.Deportista     `json:"deportista"`
	PasoActual             int                   `json:"paso_actual"`
	TotalPasos             int                   `json:"total_pasos"`
	Progreso               int                   `json:"progreso"`
	Pasos                  []EstadoPaso          `json:"pasos"`
	AntecedentesPersonales []Antecedente         `json:"antecedentes_personales"`
	AntecedentesFamiliares []AntecedenteFamiliar `json:"antecedentes_familiares"`
	Vacunas                []string              `json:"vacunas"`
	Diagnosticos           []Diagnostico         `json:"diagnosticos"`
	Remisiones             []Remision            `json:"remisiones"`
	Completada             bool                  `json:"completada"`
	CreadaEn               time.Time             `json:"creada_en"`
}

// Vista copia el estado de la sesión
func (s *Sesion) Vista() Vista {
	pasos := make([]EstadoPaso, TotalPasos)
	for i, p := range s.Pasos {
		datos := make(map[string]interface{}, len(p.Datos))
		for k, v := range p.Datos {
			datos[k] = v
		}
		p.Datos = datos
		pasos[i] = p
	}
	return Vista{
		ID:                     s.ID,
		HistoriaID:             s.HistoriaID,
		Deportista:             s.Deportista,
		PasoActual:             s.PasoActual,
		TotalPasos:             TotalPasos,
		Progreso:               s.Progreso(),
		Pasos:                  pasos,
		AntecedentesPersonales: append(noNulo[Antecedente](nil), s.AntecedentesPersonales...),
		AntecedentesFamiliares: append(noNulo[AntecedenteFamiliar](nil), s.AntecedentesFamiliares...),
		Vacunas:                append(noNulo[string](nil), s.Vacunas...),
		Diagnosticos:           append(noNulo[Diagnostico](nil), s.Diagnosticos...),
		Remisiones:             append(noNulo[Remision](nil), s.Remisiones...),
		Completada:             s.Completada,
		CreadaEn:               s.CreadaEn,
	}
}
