package historia

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSesionNoEncontrada     = errors.New("Sesión de historia clínica no encontrada")
	ErrHistoriaNoInicializada = errors.New("Historia clínica no inicializada")
	ErrGrupoSinID             = errors.New("No se pudo crear el grupo de respuestas")
	ErrPasoInvalido           = errors.New("Paso inválido")
	ErrSesionCompletada       = errors.New("La historia clínica ya fue completada")
	ErrIndiceInvalido         = errors.New("Índice fuera de rango")
	ErrCodigoRequerido        = errors.New("Ingrese un código CIE-11")
	ErrCodigoNoVerificado     = errors.New("Primero busque el código CIE-11 para verificar la enfermedad")
	ErrCodigoNoEncontrado     = errors.New("Código CIE-11 no encontrado")
	ErrFamiliarRequerido      = errors.New("Seleccione el familiar afectado")
	ErrVacunaDesconocida      = errors.New("Vacuna no reconocida")
	ErrDiagnosticoRequerido   = errors.New("Por favor ingrese o seleccione un diagnóstico")
	ErrEspecialistaRequerido  = errors.New("Por favor seleccione un especialista")
	ErrMotivoRequerido        = errors.New("Por favor indique el motivo de la remisión")
	ErrPrioridadInvalida      = errors.New("La prioridad debe ser Normal o Urgente")

	errValorBooleano    = errors.New("Debe ser verdadero o falso")
	errValorNoSoportado = errors.New("Tipo de valor no soportado")
)

// CampoDesconocidoError indica un campo que no pertenece al paso
type CampoDesconocidoError struct {
	Paso  int
	Campo string
}

func (e *CampoDesconocidoError) Error() string {
	return fmt.Sprintf("el campo %q no pertenece al paso %d", e.Campo, e.Paso)
}

// ValidacionError agrupa los errores por campo de un paso
type ValidacionError struct {
	Paso   int
	Campos map[string]string
}

func (e *ValidacionError) Error() string {
	nombres := make([]string, 0, len(e.Campos))
	for k := range e.Campos {
		nombres = append(nombres, k)
	}
	sort.Strings(nombres)
	return fmt.Sprintf("paso %d: campos inválidos: %s", e.Paso, strings.Join(nombres, ", "))
}
